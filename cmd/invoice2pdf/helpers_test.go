package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock generator and pool
// ---------------------------------------------------------------------------

// mockGenerator records invoices and writes a fake PDF on GenerateAndSave.
type mockGenerator struct {
	mu    sync.Mutex
	html  string
	err   error
	calls []string
}

func (m *mockGenerator) record(invoiceNo string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, invoiceNo)
}

func (m *mockGenerator) invoiceNos() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockGenerator) GenerateAndSave(_ context.Context, data *invoice2pdf.InvoiceData, destDir string) (string, error) {
	m.record(data.InvoiceNo)
	if m.err != nil {
		return "", m.err
	}
	path := filepath.Join(destDir, data.InvoiceNo+".pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7 mock"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (m *mockGenerator) RenderHTML(_ context.Context, data *invoice2pdf.InvoiceData) (string, error) {
	m.record(data.InvoiceNo)
	if m.err != nil {
		return "", m.err
	}
	return m.html, nil
}

// mockPool hands the same generator to every worker.
type mockPool struct {
	gen        *mockGenerator
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
	opts     int
}

func (p *mockPool) Acquire(ctx context.Context) (InvoiceGenerator, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.gen, nil
}

func (p *mockPool) Release(InvoiceGenerator) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int {
	return p.size
}

func (p *mockPool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// testEnv returns an environment whose pool factory yields pool.
func testEnv(pool *mockPool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		NewPool: func(size int, opts ...invoice2pdf.Option) Pool {
			pool.size = size
			pool.opts = len(opts)
			return pool
		},
	}, stdout, stderr
}

// docYAML is a minimal valid invoice document.
const docYAML = `invoiceNo: %s
date: "2024-04-30"
vendor:
  name: Nilgiri Analytics
client:
  name: Coromandel Freight
  gst: 33AAACC1234F1Z5
services:
  - id: consulting
    from: "2024-04-01"
    to: "2024-04-30"
catalog:
  consulting:
    name: Consulting Services
    amount: 65000
    taxCode: "998311"
%s`

// writeDoc writes an invoice document and returns its path.
func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
