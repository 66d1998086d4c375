package main

import (
	"context"
	"fmt"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
)

// InvoiceGenerator is the part of *invoice2pdf.Generator the CLI drives.
type InvoiceGenerator interface {
	GenerateAndSave(ctx context.Context, data *invoice2pdf.InvoiceData, destDir string) (string, error)
	RenderHTML(ctx context.Context, data *invoice2pdf.InvoiceData) (string, error)
}

// Pool abstracts generator pooling so batches can run without a browser in tests.
type Pool interface {
	Acquire(ctx context.Context) (InvoiceGenerator, error)
	Release(InvoiceGenerator)
	Size() int
	Close() error
}

// Compile-time interface checks.
var (
	_ InvoiceGenerator = (*invoice2pdf.Generator)(nil)
	_ Pool             = (*poolAdapter)(nil)
)

// poolAdapter exposes an invoice2pdf.GeneratorPool through Pool.
type poolAdapter struct {
	pool *invoice2pdf.GeneratorPool
}

// newGeneratorPool creates the production pool.
func newGeneratorPool(size int, opts ...invoice2pdf.Option) Pool {
	return &poolAdapter{pool: invoice2pdf.NewGeneratorPool(size, opts...)}
}

func (a *poolAdapter) Acquire(ctx context.Context) (InvoiceGenerator, error) {
	g, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Release panics on a generator the pool did not hand out; that is a programming error.
func (a *poolAdapter) Release(g InvoiceGenerator) {
	gen, ok := g.(*invoice2pdf.Generator)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", g))
	}
	a.pool.Release(gen)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
