package invoice2pdf

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// fakePDF is returned by mock composers; only its prefix matters.
var fakePDF = []byte("%PDF-1.7 fake invoice")

func testCatalog() MapCatalog {
	return MapCatalog{
		"X": {
			Name:    "Widget Service",
			Amount:  decimal.NewFromInt(1000),
			TaxCode: "998314",
		},
		"consulting": {
			Name:    "Consulting Services",
			Amount:  decimal.NewFromInt(65000),
			TaxCode: "998311",
		},
		"hosting": {
			Name:    "Managed Hosting",
			Amount:  decimal.RequireFromString("1250.75"),
			TaxCode: "998315",
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// service returns a one-month line for id in April 2024.
func service(id string) ServiceItem {
	return ServiceItem{
		ServiceID: id,
		From:      day(2024, time.April, 1),
		To:        day(2024, time.April, 30),
	}
}

func testInvoice(services ...ServiceItem) *InvoiceData {
	if len(services) == 0 {
		services = []ServiceItem{service("X")}
	}
	return &InvoiceData{
		InvoiceNo: "INV-001",
		Date:      day(2024, time.April, 1),
		Vendor: VendorDetails{
			Name:    "Nilgiri Analytics",
			Address: "12 Residency Road, Bengaluru",
			PAN:     "ABCDE1234F",
			Mobile:  "+91 98450 00000",
			Email:   "billing@nilgiri.example",
			Bank: BankDetails{
				AccountName:   "Nilgiri Analytics",
				AccountNumber: "001122334455",
				AccountType:   "Current",
				IFSCCode:      "HDFC0000123",
				BankName:      "HDFC Bank",
				BankAddress:   "MG Road, Bengaluru",
			},
		},
		Client: ClientDetails{
			Name:    "Coromandel Freight",
			Address: "4 Harbour Lane, Chennai",
			GST:     "33AAACC1234F1Z5",
		},
		Services: services,
	}
}

// writeSignature creates a small image file and returns its path.
func writeSignature(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nsig"), 0o644); err != nil {
		t.Fatalf("failed to write signature: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// mockComposer implements Composer and records what it was given.
type mockComposer struct {
	mu       sync.Mutex
	result   []byte
	err      error
	panicMsg string
	closeErr error
	calls    int
	lastHTML string
	closed   bool
}

func (m *mockComposer) Compose(ctx context.Context, htmlContent string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	m.calls++
	m.lastHTML = htmlContent
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return fakePDF, nil
	}
	return m.result, nil
}

func (m *mockComposer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.closeErr
}

func (m *mockComposer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockEmbedder implements Embedder and counts calls.
type mockEmbedder struct {
	mu    sync.Mutex
	uri   string
	err   error
	paths []string
}

func (m *mockEmbedder) Embed(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, path)
	return m.uri, m.err
}

// mockNotes implements pipeline.NotesConverter.
type mockNotes struct {
	html string
	err  error
}

func (m *mockNotes) ToHTML(ctx context.Context, markdown string) (string, error) {
	return m.html, m.err
}

// newTestGenerator builds a Generator backed by a mock composer.
func newTestGenerator(t *testing.T, composer *mockComposer, opts ...Option) *Generator {
	t.Helper()
	opts = append([]Option{WithCatalog(testCatalog()), withComposer(composer)}, opts...)
	g, err := NewGenerator(opts...)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}
