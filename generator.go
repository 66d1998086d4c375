package invoice2pdf

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Renderer       = (*pipeline.TemplateRenderer)(nil)
	_ pipeline.StyleInjector  = pipeline.HeadStyles{}
	_ pipeline.NotesConverter = (*pipeline.GoldmarkNotes)(nil)
)

// Generator runs the invoice pipeline: normalize, render, compose.
// Create with NewGenerator, call Generate or GenerateAndSave, and Close when done.
// A Generator owns one browser; calls to Generate are serialized on it.
type Generator struct {
	cfg        generatorConfig
	normalizer *Normalizer
	renderer   pipeline.Renderer
	notes      pipeline.NotesConverter
	styler     pipeline.StyleInjector
	composer   Composer
	styles     []string // Stylesheets in cascade order: built-in, then custom
	source     string   // Template origin, reported in render errors
	logger     *zap.Logger
}

// NewGenerator creates a Generator with default configuration.
// Template compilation happens here, so a broken template fails before
// any invoice is processed. The browser is launched on first Generate.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout:      DefaultTimeout,
			templateName: assets.DefaultTemplateName,
			style:        assets.DefaultStyleName,
		},
		styler: pipeline.HeadStyles{},
	}

	for _, opt := range opts {
		opt(g)
	}

	g.logger = g.cfg.logger
	if g.logger == nil {
		g.logger = zap.NewNop()
	}

	if g.cfg.dateFormat != "" {
		if _, err := dateutil.ParseDateFormat(g.cfg.dateFormat); err != nil {
			return nil, err
		}
	}

	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if g.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}

	if g.renderer == nil {
		if err := g.compileTemplate(loader); err != nil {
			return nil, err
		}
	}

	if g.cfg.style != "" {
		css, err := loader.LoadStyle(g.cfg.style)
		if err != nil {
			return nil, fmt.Errorf("loading style %q: %w", g.cfg.style, err)
		}
		g.styles = append(g.styles, css)
	}
	if g.cfg.css != "" {
		g.styles = append(g.styles, g.cfg.css)
	}

	g.normalizer = NewNormalizer(g.cfg.catalog, g.cfg.embedder, NormalizerOptions{
		DateFormat: g.cfg.dateFormat,
		Locale:     g.cfg.locale,
		Notes:      g.notes,
	})

	if g.composer == nil {
		g.composer = newRodComposer(g.cfg.timeout, g.logger)
	}

	return g, nil
}

// compileTemplate resolves the template source and parses it.
func (g *Generator) compileTemplate(loader assets.AssetLoader) error {
	var source string
	switch {
	case g.cfg.template != "":
		g.source = "inline"
		source = g.cfg.template
	case g.cfg.templatePath != "":
		g.source = g.cfg.templatePath
		content, err := assets.ReadTemplateFile(g.cfg.templatePath)
		if err != nil {
			return &StageError{Stage: StageRender, Input: g.source, Err: err}
		}
		source = content
	default:
		g.source = g.cfg.templateName
		content, err := loader.LoadTemplate(g.cfg.templateName)
		if err != nil {
			return &StageError{Stage: StageRender, Input: g.source, Err: err}
		}
		source = content
	}

	renderer, err := pipeline.NewTemplateRenderer(source)
	if err != nil {
		return &StageError{Stage: StageRender, Input: g.source, Err: err}
	}
	g.renderer = renderer
	return nil
}

// RenderHTML runs the pipeline up to the styled markup, without a browser.
func (g *Generator) RenderHTML(ctx context.Context, data *InvoiceData) (string, error) {
	view, err := g.normalizer.Normalize(ctx, data)
	if err != nil {
		return "", err
	}
	g.logger.Debug("invoice normalized",
		zap.String("invoice_no", view.InvoiceNo),
		zap.Int("services", len(view.Services)),
		zap.String("total", view.TotalAmount))

	htmlContent, err := g.renderer.Render(ctx, view)
	if err != nil {
		return "", stageErr(StageRender, g.source, err)
	}

	htmlContent = g.styler.InjectStyles(ctx, htmlContent, g.styles...)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return htmlContent, nil
}

// Generate runs the full pipeline and returns the composed document.
// Nothing is written to disk. Recovers from internal panics to prevent
// crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, data *InvoiceData) (artifact *Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	htmlContent, err := g.RenderHTML(ctx, data)
	if err != nil {
		return nil, err
	}

	pdf, err := g.composer.Compose(ctx, htmlContent)
	if err != nil {
		return nil, stageErr(StageCompose, data.InvoiceNo, err)
	}

	g.logger.Info("invoice composed",
		zap.String("invoice_no", data.InvoiceNo),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))

	return &Artifact{InvoiceNo: data.InvoiceNo, PDF: pdf}, nil
}

// GenerateAndSave generates the invoice and writes it to destDir.
// Returns the written path.
func (g *Generator) GenerateAndSave(ctx context.Context, data *InvoiceData, destDir string) (string, error) {
	artifact, err := g.Generate(ctx, data)
	if err != nil {
		return "", err
	}

	path, err := Save(destDir, artifact)
	if err != nil {
		return "", &StageError{Stage: StageSave, Input: destDir, Err: err}
	}

	g.logger.Info("invoice saved", zap.String("invoice_no", artifact.InvoiceNo), zap.String("path", path))
	return path, nil
}

// Close releases resources (headless Chrome browser).
func (g *Generator) Close() error {
	if g.composer != nil {
		return g.composer.Close()
	}
	return nil
}

// GenerateInvoice is the one-shot pipeline: it builds a Generator, saves
// {destDir}/{invoiceNo}.pdf and releases the browser on every path.
// An empty templatePath selects the embedded template.
func GenerateInvoice(ctx context.Context, data *InvoiceData, destDir, templatePath string, opts ...Option) (path string, err error) {
	if templatePath != "" {
		opts = append(opts[:len(opts):len(opts)], WithTemplateFile(templatePath))
	}

	g, err := NewGenerator(opts...)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := g.Close(); closeErr != nil {
			g.logger.Warn("closing render engine", zap.Error(closeErr))
		}
	}()

	return g.GenerateAndSave(ctx, data, destDir)
}
