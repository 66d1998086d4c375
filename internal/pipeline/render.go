package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for template rendering.
var (
	ErrTemplateCompile = errors.New("template compilation failed")
	ErrTemplateData    = errors.New("template data binding failed")
)

// Renderer defines the contract for binding data into markup.
type Renderer interface {
	Render(ctx context.Context, data any) (string, error)
}

// templateFuncs are the helpers available to invoice templates.
var templateFuncs = template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"upper": strings.ToUpper,
	"lines": func(s string) []string { return strings.Split(strings.TrimSpace(s), "\n") },
}

// TemplateRenderer binds data into a parsed html/template.
// Safe for concurrent use once constructed.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses source into a renderer.
// Returns ErrTemplateCompile if source is empty or malformed.
func NewTemplateRenderer(source string) (*TemplateRenderer, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty template", ErrTemplateCompile)
	}

	tmpl, err := template.New("invoice").
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateCompile, err)
	}

	return &TemplateRenderer{tmpl: tmpl}, nil
}

// Render executes the template against data.
// Any field the template references that data does not provide fails with
// ErrTemplateData; no partial output is returned.
func (r *TemplateRenderer) Render(ctx context.Context, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateData, err)
	}
	return buf.String(), nil
}
