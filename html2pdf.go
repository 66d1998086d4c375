package invoice2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/process"
)

// Composer turns rendered markup into PDF bytes.
type Composer interface {
	Compose(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ Composer    = (*rodComposer)(nil)
	_ pdfRenderer = (*rodRenderer)(nil)
)

// PDF page dimensions in inches (A4), printed edge to edge.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0
)

// idleTimeout bounds the wait for the browser's idle callback after load.
const idleTimeout = 2 * time.Second

// rodRenderer implements pdfRenderer using go-rod.
// One page is rendered at a time; the browser is launched on first use
// and relaunched after it dies.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	logger   *zap.Logger
	ops      browserOps
	closed   bool // set by Close; no browser is launched afterwards
}

// browserOps are the calls that need a real Chrome, replaced in tests.
type browserOps struct {
	launch  func() (*launcher.Launcher, string, error) // returns the control URL
	connect func(controlURL string) (*rod.Browser, error)
	open    func(ctx context.Context, b *rod.Browser, url string) (*rod.Page, error)
	shut    func(b *rod.Browser) error
	kill    func(l *launcher.Launcher)
}

// newRodRenderer creates a rodRenderer with the given settle timeout.
func newRodRenderer(timeout time.Duration, logger *zap.Logger) *rodRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &rodRenderer{timeout: timeout, logger: logger}
	r.ops = browserOps{
		launch:  launchChrome,
		connect: connectChrome,
		open: func(ctx context.Context, b *rod.Browser, url string) (*rod.Page, error) {
			return b.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
		},
		shut: func(b *rod.Browser) error { return b.Close() },
		kill: r.terminate,
	}
	return r
}

// launchChrome starts Chrome, honoring ROD_BROWSER_BIN and disabling the
// sandbox in CI and containers.
func launchChrome() (*launcher.Launcher, string, error) {
	l := launcher.New()

	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	return l, u, err
}

func connectChrome(controlURL string) (*rod.Browser, error) {
	b := rod.New().ControlURL(controlURL)
	return b, b.Connect()
}

// ensureBrowser lazily launches and connects to the browser.
// Must be called with r.mu held.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l, u, err := r.ops.launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRenderEngineUnavailable, err)
	}

	browser, err := r.ops.connect(u)
	if err != nil {
		r.ops.kill(l)
		return fmt.Errorf("%w: %v", ErrRenderEngineUnavailable, err)
	}

	r.launcher = l
	r.browser = browser
	r.logger.Debug("browser launched", zap.Int("pid", l.PID()))
	return nil
}

// Close releases browser resources and kills the browser process tree.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.browser == nil {
		return nil
	}
	err := r.shutdown()
	r.logger.Debug("browser closed")
	return err
}

// shutdown closes the browser and kills its process.
// Must be called with r.mu held.
func (r *rodRenderer) shutdown() error {
	if r.browser == nil {
		return nil
	}
	err := r.ops.shut(r.browser)
	if r.launcher != nil {
		r.ops.kill(r.launcher)
	}
	r.browser = nil
	r.launcher = nil
	return err
}

// terminate kills the launched process tree and removes its profile directory.
func (r *rodRenderer) terminate(l *launcher.Launcher) {
	if err := process.KillTree(l.PID()); err != nil {
		r.logger.Debug("killing browser process tree", zap.Int("pid", l.PID()), zap.Error(err))
	}
	l.Kill()
	l.Cleanup()
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it to PDF.
// The page is closed on every path.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmt.Errorf("%w: renderer closed", ErrRenderEngineUnavailable)
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.ops.open(ctx, r.browser, "file://"+filePath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// A browser that cannot open a tab is gone; the next call relaunches.
		if closeErr := r.shutdown(); closeErr != nil {
			r.logger.Debug("closing dead browser", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("%w: opening page: %v", ErrRenderEngineUnavailable, err)
	}
	defer func() { _ = page.Close() }()

	timeout := settleTimeout(ctx, r.timeout)
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	start := time.Now()
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, r.loadError(ctx, err, timeout)
	}
	if err := page.Timeout(timeout).WaitIdle(idleTimeout); err != nil {
		return nil, r.loadError(ctx, err, timeout)
	}
	r.logger.Debug("page settled", zap.Duration("elapsed", time.Since(start)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.Context(ctx).PDF(a4Options())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrExport, err)
	}

	return pdfBuf, nil
}

// loadError classifies a failed wait: the caller's own cancellation wins,
// a deadline is a timeout, anything else means the engine misbehaved.
func (r *rodRenderer) loadError(ctx context.Context, err error, timeout time.Duration) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrRenderTimeout, timeout)
	}
	return fmt.Errorf("%w: loading page: %v", ErrRenderEngineUnavailable, err)
}

// settleTimeout returns the smaller of the configured timeout and the
// time left before ctx's deadline.
func settleTimeout(ctx context.Context, timeout time.Duration) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			return left
		}
	}
	return timeout
}

// a4Options returns the fixed print settings: A4, zero margins, backgrounds on.
func a4Options() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodComposer converts HTML to PDF using headless Chrome via go-rod.
// The markup is staged in a temp file so relative resources resolve
// the same way they would in a browser tab.
type rodComposer struct {
	renderer pdfRenderer
}

// newRodComposer creates a rodComposer with the production renderer.
func newRodComposer(timeout time.Duration, logger *zap.Logger) *rodComposer {
	return &rodComposer{renderer: newRodRenderer(timeout, logger)}
}

// Compose renders htmlContent to PDF bytes.
func (c *rodComposer) Compose(ctx context.Context, htmlContent string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: staging markup: %v", ErrExport, err)
	}
	defer cleanup()

	pdf, err := c.renderer.RenderFromFile(ctx, tmpPath)
	if err != nil {
		return nil, err
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrExport)
	}
	return pdf, nil
}

// Close releases browser resources.
func (c *rodComposer) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
