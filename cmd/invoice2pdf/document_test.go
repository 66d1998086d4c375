package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
)

var fixedNow = func() time.Time { return time.Date(2024, 5, 1, 23, 45, 0, 0, time.UTC) }

// ---------------------------------------------------------------------------
// TestBuildInvoice - Document to library input
// ---------------------------------------------------------------------------

func TestBuildInvoice(t *testing.T) {
	t.Parallel()

	t.Run("maps every field", func(t *testing.T) {
		t.Parallel()

		doc := demoDocument()
		doc.InvoiceNo = "INV-7"
		doc.Signature = "/srv/sig.png"

		data, err := buildInvoice(doc, "", fixedNow)
		if err != nil {
			t.Fatalf("buildInvoice() error = %v", err)
		}
		if data.InvoiceNo != "INV-7" {
			t.Errorf("InvoiceNo = %q, want INV-7", data.InvoiceNo)
		}
		if want := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC); !data.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", data.Date, want)
		}
		if data.Vendor.Bank.IFSCCode != "HDFC0000123" {
			t.Errorf("IFSCCode = %q, want HDFC0000123", data.Vendor.Bank.IFSCCode)
		}
		if data.Client.GST != "33AAACC1234F1Z5" {
			t.Errorf("GST = %q", data.Client.GST)
		}
		if data.SignaturePath != "/srv/sig.png" || data.Notes == "" {
			t.Errorf("SignaturePath = %q, Notes = %q", data.SignaturePath, data.Notes)
		}
		if len(data.Services) != 2 {
			t.Fatalf("Services = %d, want 2", len(data.Services))
		}
		if data.Services[0].Amount != nil {
			t.Errorf("Services[0].Amount = %v, want nil (catalog default)", data.Services[0].Amount)
		}
		if got := data.Services[1].Amount; got == nil || !got.Equal(decimal.RequireFromString("1250.75")) {
			t.Errorf("Services[1].Amount = %v, want 1250.75", got)
		}
		if want := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC); !data.Services[0].To.Equal(want) {
			t.Errorf("Services[0].To = %v, want %v", data.Services[0].To, want)
		}
	})

	t.Run("empty date means today", func(t *testing.T) {
		t.Parallel()

		doc := demoDocument()
		doc.Date = ""
		data, err := buildInvoice(doc, "", fixedNow)
		if err != nil {
			t.Fatalf("buildInvoice() error = %v", err)
		}
		if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !data.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", data.Date, want)
		}
	})

	t.Run("invoice number generated from prefix", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			flagPrefix string
			want       string
		}{
			{name: "document prefix", flagPrefix: "", want: "DEMO-20240501-"},
			{name: "flag prefix wins", flagPrefix: "ACME", want: "ACME-20240501-"},
		}
		for _, tt := range tests {
			data, err := buildInvoice(demoDocument(), tt.flagPrefix, fixedNow)
			if err != nil {
				t.Fatalf("%s: buildInvoice() error = %v", tt.name, err)
			}
			if !strings.HasPrefix(data.InvoiceNo, tt.want) {
				t.Errorf("%s: InvoiceNo = %q, want prefix %q", tt.name, data.InvoiceNo, tt.want)
			}
		}
	})

	t.Run("invalid service date", func(t *testing.T) {
		t.Parallel()

		doc := demoDocument()
		doc.Services[0].From = "01/04/2024"
		_, err := buildInvoice(doc, "", fixedNow)
		if !errors.Is(err, config.ErrFieldInvalid) {
			t.Fatalf("error = %v, want ErrFieldInvalid", err)
		}
		if !strings.Contains(err.Error(), "services[0]") {
			t.Errorf("error %q does not name the service", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRenderSettings - Catalog merge, equality, and options
// ---------------------------------------------------------------------------

func TestSettingsFor_CatalogMerge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	catalogPath := writeDoc(t, dir, "catalog.yaml", `services:
  consulting:
    name: Old Consulting
    amount: 50000
    taxCode: "998311"
  support:
    name: Support Retainer
    amount: "12000.50"
    taxCode: "998313"
`)

	doc := demoDocument()
	doc.CatalogFile = catalogPath

	s, err := settingsFor(doc, "")
	if err != nil {
		t.Fatalf("settingsFor() error = %v", err)
	}
	if got := s.catalog["consulting"].Name; got != "Consulting Services" {
		t.Errorf("consulting = %q, want inline entry to win", got)
	}
	if got := s.catalog["support"].Amount; !got.Equal(decimal.RequireFromString("12000.50")) {
		t.Errorf("support amount = %v, want 12000.50 from file", got)
	}
	if len(s.catalog) != 3 {
		t.Errorf("catalog has %d entries, want 3", len(s.catalog))
	}

	doc.CatalogFile = filepath.Join(dir, "missing.yaml")
	if _, err := settingsFor(doc, ""); !errors.Is(err, invoice2pdf.ErrCatalogNotFound) {
		t.Errorf("missing catalog error = %v, want ErrCatalogNotFound", err)
	}
}

func TestSettingsFor_TemplateFlagWins(t *testing.T) {
	t.Parallel()

	doc := demoDocument()
	doc.Template = "/srv/doc.html"

	s, _ := settingsFor(doc, "./flag.html")
	if s.template != "./flag.html" {
		t.Errorf("template = %q, want flag value", s.template)
	}
	s, _ = settingsFor(doc, "")
	if s.template != "/srv/doc.html" {
		t.Errorf("template = %q, want document value", s.template)
	}
}

func TestRenderSettings_Equal(t *testing.T) {
	t.Parallel()

	base := func() renderSettings {
		return renderSettings{
			catalog: invoice2pdf.MapCatalog{
				"consulting": {Name: "Consulting", Amount: decimal.RequireFromString("65000"), TaxCode: "998311"},
			},
			locale: "en-IN",
		}
	}

	tests := []struct {
		name   string
		modify func(*renderSettings)
		want   bool
	}{
		{name: "identical", modify: func(*renderSettings) {}, want: true},
		{
			name: "same amount different scale",
			modify: func(s *renderSettings) {
				s.catalog["consulting"] = invoice2pdf.CatalogEntry{Name: "Consulting", Amount: decimal.RequireFromString("65000.00"), TaxCode: "998311"}
			},
			want: true,
		},
		{
			name: "different amount",
			modify: func(s *renderSettings) {
				s.catalog["consulting"] = invoice2pdf.CatalogEntry{Name: "Consulting", Amount: decimal.RequireFromString("60000"), TaxCode: "998311"}
			},
		},
		{name: "extra entry", modify: func(s *renderSettings) { s.catalog["hosting"] = invoice2pdf.CatalogEntry{Name: "Hosting"} }},
		{name: "locale", modify: func(s *renderSettings) { s.locale = "en-US" }},
		{name: "template", modify: func(s *renderSettings) { s.template = "custom" }},
		{name: "css", modify: func(s *renderSettings) { s.css = "/srv/extra.css" }},
		{name: "date format", modify: func(s *renderSettings) { s.dateFormat = "long" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			other := base()
			tt.modify(&other)
			if got := base().equal(other); got != tt.want {
				t.Errorf("equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderSettings_Options(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cssPath := writeDoc(t, dir, "extra.css", "td { color: teal; }")

	tests := []struct {
		name     string
		settings renderSettings
		wantLen  int
		wantErr  error
	}{
		{name: "catalog only", settings: renderSettings{}, wantLen: 1},
		{name: "template name", settings: renderSettings{template: "invoice"}, wantLen: 2},
		{name: "every setting", settings: renderSettings{template: "./custom.html", css: cssPath, locale: "en-US", dateFormat: "long"}, wantLen: 5},
		{name: "missing css", settings: renderSettings{css: filepath.Join(dir, "none.css")}, wantErr: ErrReadCSS},
		{name: "invalid locale", settings: renderSettings{locale: "not a locale!"}, wantErr: invoice2pdf.ErrInvalidLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, err := tt.settings.options()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("options() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("options() error = %v", err)
			}
			if len(opts) != tt.wantLen {
				t.Errorf("options() returned %d options, want %d", len(opts), tt.wantLen)
			}
		})
	}
}

func TestIsTemplatePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"invoice":           false,
		"custom.html":       true,
		"./custom":          true,
		"/srv/invoice.html": true,
		`C:\tpl\inv.html`:   true,
	}
	for in, want := range tests {
		if got := isTemplatePath(in); got != want {
			t.Errorf("isTemplatePath(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestResolveOutputDir(t *testing.T) {
	t.Parallel()

	doc := &config.Document{Output: config.OutputConfig{Dir: "/srv/invoices"}}
	if got := resolveOutputDir("out", doc); got != "out" {
		t.Errorf("flag: got %q, want out", got)
	}
	if got := resolveOutputDir("", doc); got != "/srv/invoices" {
		t.Errorf("document: got %q, want /srv/invoices", got)
	}
	if got := resolveOutputDir("", &config.Document{}); got != "." {
		t.Errorf("default: got %q, want .", got)
	}
}

// ---------------------------------------------------------------------------
// TestLoadJobs - Documents to jobs
// ---------------------------------------------------------------------------

func TestLoadJobs(t *testing.T) {
	t.Parallel()

	t.Run("no paths uses the demonstration invoice", func(t *testing.T) {
		t.Parallel()

		jobs, settings, err := loadJobs(nil, &generateFlags{}, fixedNow)
		if err != nil {
			t.Fatalf("loadJobs() error = %v", err)
		}
		if len(jobs) != 1 || jobs[0].source != demoSource {
			t.Fatalf("jobs = %+v, want one demo job", jobs)
		}
		if jobs[0].outDir != "." {
			t.Errorf("outDir = %q, want .", jobs[0].outDir)
		}
		if _, err := settings.catalog.Lookup("consulting"); err != nil {
			t.Errorf("demo catalog lookup: %v", err)
		}
	})

	t.Run("relative output dir resolves against the document", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeDoc(t, dir, "a.yaml", fmt.Sprintf(docYAML, "INV-1", "output:\n  dir: out\n"))

		jobs, _, err := loadJobs([]string{path}, &generateFlags{}, fixedNow)
		if err != nil {
			t.Fatalf("loadJobs() error = %v", err)
		}
		if want := filepath.Join(dir, "out"); jobs[0].outDir != want {
			t.Errorf("outDir = %q, want %q", jobs[0].outDir, want)
		}
		if jobs[0].data.InvoiceNo != "INV-1" {
			t.Errorf("InvoiceNo = %q, want INV-1", jobs[0].data.InvoiceNo)
		}
	})

	t.Run("mixed settings rejected", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeDoc(t, dir, "a.yaml", fmt.Sprintf(docYAML, "INV-1", ""))
		b := writeDoc(t, dir, "b.yaml", fmt.Sprintf(docYAML, "INV-2", "locale: en-US\n"))

		_, _, err := loadJobs([]string{a, b}, &generateFlags{}, fixedNow)
		if !errors.Is(err, ErrMixedSettings) {
			t.Fatalf("error = %v, want ErrMixedSettings", err)
		}
		if !strings.Contains(err.Error(), b) {
			t.Errorf("error %q does not name %s", err, b)
		}
	})

	t.Run("missing document", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "missing.yaml")
		_, _, err := loadJobs([]string{missing}, &generateFlags{}, fixedNow)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		path := writeDoc(t, t.TempDir(), "a.yaml", fmt.Sprintf(docYAML, "INV-1", "sevices: []\n"))
		_, _, err := loadJobs([]string{path}, &generateFlags{}, fixedNow)
		if !errors.Is(err, config.ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}
