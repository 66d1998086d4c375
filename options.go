package invoice2pdf

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/alnah/go-invoice2pdf/internal/pipeline"
)

// DefaultTimeout bounds the wait for a page to settle before printing.
const DefaultTimeout = 30 * time.Second

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds configuration collected from options.
type generatorConfig struct {
	timeout      time.Duration
	catalog      Catalog
	embedder     Embedder
	template     string // Template content
	templatePath string // Template file
	templateName string // Template name resolved by the asset loader
	style        string // Style name resolved by the asset loader; "" disables
	css          string // Extra CSS appended after the style
	assetPath    string
	locale       language.Tag
	dateFormat   string
	logger       *zap.Logger
}

// WithTimeout sets how long a page may take to settle before printing.
// Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("invoice2pdf: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithCatalog sets the service catalog used to resolve line items.
func WithCatalog(c Catalog) Option {
	return func(g *Generator) {
		g.cfg.catalog = c
	}
}

// WithEmbedder replaces the signature image embedder.
func WithEmbedder(e Embedder) Option {
	return func(g *Generator) {
		g.cfg.embedder = e
	}
}

// WithTemplate sets the template content directly.
// Takes precedence over WithTemplateFile and WithTemplateName.
func WithTemplate(content string) Option {
	return func(g *Generator) {
		g.cfg.template = content
	}
}

// WithTemplateFile loads the template from a file path.
func WithTemplateFile(path string) Option {
	return func(g *Generator) {
		g.cfg.templatePath = path
	}
}

// WithTemplateName selects a template by name from the asset loader,
// e.g. "invoice" for templates/invoice.html.
func WithTemplateName(name string) Option {
	return func(g *Generator) {
		g.cfg.templateName = name
	}
}

// WithStyle selects the base stylesheet by name. An empty name disables it.
func WithStyle(name string) Option {
	return func(g *Generator) {
		g.cfg.style = name
	}
}

// WithCSS appends extra CSS after the base stylesheet.
func WithCSS(css string) Option {
	return func(g *Generator) {
		g.cfg.css = css
	}
}

// WithAssetPath overrides embedded templates and styles with files from dir.
// Missing names fall back to the embedded assets.
func WithAssetPath(dir string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = dir
	}
}

// WithLocale sets the locale used to group the invoice total.
func WithLocale(tag language.Tag) Option {
	return func(g *Generator) {
		g.cfg.locale = tag
	}
}

// WithDateFormat sets the display format for dates, e.g. "DD/MM/YYYY" or "long".
func WithDateFormat(format string) Option {
	return func(g *Generator) {
		g.cfg.dateFormat = format
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.cfg.logger = l
	}
}

// ParseLocale parses a BCP 47 tag such as "en-IN".
func ParseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", ErrInvalidLocale, s)
	}
	return tag, nil
}

// Internal options for testing.

func withComposer(c Composer) Option {
	return func(g *Generator) {
		g.composer = c
	}
}

func withRenderer(r pipeline.Renderer) Option {
	return func(g *Generator) {
		g.renderer = r
	}
}

func withNotes(n pipeline.NotesConverter) Option {
	return func(g *Generator) {
		g.notes = n
	}
}
