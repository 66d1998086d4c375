package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrNotesConversion indicates the notes Markdown could not be rendered.
var ErrNotesConversion = errors.New("notes conversion failed")

// NotesConverter abstracts Markdown to HTML fragment conversion.
type NotesConverter interface {
	ToHTML(ctx context.Context, markdown string) (string, error)
}

// GoldmarkNotes renders the free-form notes block of an invoice
// (payment terms, remarks) from Markdown to an HTML fragment.
type GoldmarkNotes struct {
	md goldmark.Markdown
}

// NewGoldmarkNotes creates a notes converter with GFM extensions.
// Raw HTML in the source is not passed through.
func NewGoldmarkNotes() *GoldmarkNotes {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &GoldmarkNotes{md: md}
}

// ToHTML converts Markdown to an HTML fragment.
// Blank input yields an empty fragment.
func (n *GoldmarkNotes) ToHTML(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	// Goldmark has no context support; notes are small enough to convert inline.
	var buf bytes.Buffer
	if err := n.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotesConversion, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
