package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/hints"
)

// dirPermissions is rwxr-x---: owner full, group read+execute.
const dirPermissions = 0o750

// templateFields are the top-level names an invoice template can use.
var templateFields = []string{
	".InvoiceNo", ".Date", ".Vendor", ".Client", ".Services", ".TotalAmount", ".Signature", ".Notes",
}

// result holds the outcome of a single invoice.
type result struct {
	Source     string
	InvoiceNo  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// ResultSummary holds the count of succeeded and failed invoices.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// batchError reports failed invoices after they were printed.
type batchError struct {
	failed int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d invoice(s) failed", e.failed)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// runGenerateCmd parses flags, runs the batch, and maps the outcome to an exit code.
func runGenerateCmd(args []string, env *Environment) int {
	flags, positional, err := parseGenerateFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printGenerateUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		printGenerateUsage(env.Stderr)
		return ExitUsage
	}
	if flags.version {
		printVersion(env)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)
	defer func() { _ = logger.Sync() }()
	setMaxProcs(logger)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	paths := append(flags.configs, positional...)
	if err := runGenerate(ctx, paths, flags, env, logger); err != nil {
		var be *batchError
		if !errors.As(err, &be) {
			fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err, nil))
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runGenerate loads the documents and generates every invoice through one pool.
func runGenerate(ctx context.Context, paths []string, flags *generateFlags, env *Environment, logger *zap.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	jobs, settings, err := loadJobs(paths, flags, env.Now)
	if err != nil {
		return err
	}

	opts, err := settings.options()
	if err != nil {
		return err
	}
	opts = append(opts, invoice2pdf.WithLogger(logger))
	if flags.timeout > 0 {
		opts = append(opts, invoice2pdf.WithTimeout(flags.timeout))
	}

	size := min(invoice2pdf.ResolvePoolSize(flags.workers), len(jobs))
	logger.Debug("starting batch", zap.Int("invoices", len(jobs)), zap.Int("pool_size", size))

	pool := env.NewPool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing generator pool", zap.Error(err))
		}
	}()

	results := generateBatch(ctx, pool, jobs, flags.html)
	return printResults(results, settings.catalog, flags.common, env)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > invoice2pdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, invoice2pdf.MaxPoolSize)
	}
	return nil
}

// generateBatch processes jobs concurrently. Each worker holds one generator
// for the whole batch.
func generateBatch(ctx context.Context, pool Pool, jobs []job, htmlOnly bool) []result {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))
	results := make([]result, len(jobs))
	queue := make(chan int, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			gen, err := pool.Acquire(ctx)
			if err != nil {
				// Generator creation failed, mark remaining jobs as failed
				for idx := range queue {
					results[idx] = result{Source: jobs[idx].source, InvoiceNo: jobs[idx].data.InvoiceNo, Err: err}
				}
				return
			}
			defer pool.Release(gen)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = result{Source: jobs[idx].source, InvoiceNo: jobs[idx].data.InvoiceNo, Err: ctx.Err()}
					continue
				}
				results[idx] = generateOne(ctx, gen, jobs[idx], htmlOnly)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// generateOne produces a single invoice and returns the result.
func generateOne(ctx context.Context, gen InvoiceGenerator, j job, htmlOnly bool) result {
	start := time.Now()
	res := result{Source: j.source, InvoiceNo: j.data.InvoiceNo}

	if err := os.MkdirAll(j.outDir, dirPermissions); err != nil {
		res.Err = fmt.Errorf("%w: creating output directory: %v", invoice2pdf.ErrWrite, err)
		res.Duration = time.Since(start)
		return res
	}

	if htmlOnly {
		html, err := gen.RenderHTML(ctx, j.data)
		if err != nil {
			res.Err = err
			res.Duration = time.Since(start)
			return res
		}
		path := filepath.Join(j.outDir, j.data.InvoiceNo+".html")
		if err := fileutil.WriteFileAtomic(path, []byte(html)); err != nil {
			res.Err = fmt.Errorf("%w: %v", invoice2pdf.ErrWrite, err)
			res.Duration = time.Since(start)
			return res
		}
		res.OutputPath = path
		res.Duration = time.Since(start)
		return res
	}

	path, err := gen.GenerateAndSave(ctx, j.data, j.outDir)
	res.OutputPath = path
	res.Err = err
	res.Duration = time.Since(start)
	return res
}

// countResults tallies succeeded and failed invoices.
func countResults(results []result) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs one line per invoice and returns a *batchError if any failed.
func printResults(results []result, catalog invoice2pdf.MapCatalog, common commonFlags, env *Environment) error {
	summary := countResults(results)
	var first error

	for _, r := range results {
		if r.Err != nil {
			if first == nil {
				first = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s (%s): %v%s\n", r.Source, r.InvoiceNo, r.Err, hintFor(r.Err, catalog))
			continue
		}

		if common.quiet {
			continue
		}

		if common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Source, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if summary.Failed > 0 {
		return &batchError{failed: summary.Failed, first: first}
	}
	return nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, catalog invoice2pdf.MapCatalog) string {
	switch {
	case errors.Is(err, invoice2pdf.ErrRenderEngineUnavailable):
		return hints.ForBrowserConnect()
	case errors.Is(err, invoice2pdf.ErrRenderTimeout):
		return hints.ForTimeout()
	case errors.Is(err, invoice2pdf.ErrUnknownService):
		return hints.ForUnknownService(catalog.IDs())
	case errors.Is(err, invoice2pdf.ErrAssetNotFound):
		return hints.ForSignatureImage()
	case errors.Is(err, invoice2pdf.ErrTemplateData):
		return hints.ForTemplateData(templateFields)
	case errors.Is(err, invoice2pdf.ErrWrite):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	}
	return ""
}
