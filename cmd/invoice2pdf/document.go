package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/fileutil"
)

// demoSource names the built-in invoice in results.
const demoSource = "demo"

// Sentinel errors for document handling.
var (
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrMixedSettings      = errors.New("invoices in one run must share catalog, template, css, locale, and dateFormat")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// job is one invoice to generate.
type job struct {
	source string // Document path, or demoSource
	data   *invoice2pdf.InvoiceData
	outDir string
}

// renderSettings are the document fields that configure a Generator.
// A pool shares one configuration, so every job of a run must agree on them.
type renderSettings struct {
	catalog    invoice2pdf.MapCatalog
	template   string
	css        string
	locale     string
	dateFormat string
}

// settingsFor collects the render settings of doc. templateFlag wins over doc.Template.
// Inline catalog entries override entries of the same id from catalogFile.
func settingsFor(doc *config.Document, templateFlag string) (renderSettings, error) {
	catalog := invoice2pdf.MapCatalog{}
	if doc.CatalogFile != "" {
		fromFile, err := invoice2pdf.LoadCatalog(doc.CatalogFile)
		if err != nil {
			return renderSettings{}, err
		}
		maps.Copy(catalog, fromFile)
	}
	for id, e := range doc.Catalog {
		catalog[id] = invoice2pdf.CatalogEntry{
			Name:    e.Name,
			Amount:  e.Amount.Decimal,
			TaxCode: e.TaxCode,
		}
	}

	tmpl := templateFlag
	if tmpl == "" {
		tmpl = doc.Template
	}

	return renderSettings{
		catalog:    catalog,
		template:   tmpl,
		css:        doc.CSS,
		locale:     doc.Locale,
		dateFormat: doc.DateFormat,
	}, nil
}

// equal reports whether two documents can share a pool.
func (s renderSettings) equal(o renderSettings) bool {
	return s.template == o.template &&
		s.css == o.css &&
		s.locale == o.locale &&
		s.dateFormat == o.dateFormat &&
		maps.EqualFunc(s.catalog, o.catalog, func(a, b invoice2pdf.CatalogEntry) bool {
			return a.Name == b.Name && a.TaxCode == b.TaxCode && a.Amount.Equal(b.Amount)
		})
}

// options converts the settings into generator options.
func (s renderSettings) options() ([]invoice2pdf.Option, error) {
	opts := []invoice2pdf.Option{invoice2pdf.WithCatalog(s.catalog)}

	if s.template != "" {
		if isTemplatePath(s.template) {
			opts = append(opts, invoice2pdf.WithTemplateFile(s.template))
		} else {
			opts = append(opts, invoice2pdf.WithTemplateName(s.template))
		}
	}

	if s.css != "" {
		css, err := os.ReadFile(s.css) // #nosec G304 -- user-provided CSS path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		opts = append(opts, invoice2pdf.WithCSS(string(css)))
	}

	if s.locale != "" {
		tag, err := invoice2pdf.ParseLocale(s.locale)
		if err != nil {
			return nil, err
		}
		opts = append(opts, invoice2pdf.WithLocale(tag))
	}

	if s.dateFormat != "" {
		opts = append(opts, invoice2pdf.WithDateFormat(s.dateFormat))
	}

	return opts, nil
}

// isTemplatePath distinguishes "./custom.html" from an embedded name like "invoice".
func isTemplatePath(s string) bool {
	return fileutil.IsFilePath(s) || filepath.Ext(s) == ".html"
}

// buildInvoice converts a document into library input.
// An empty date means today; an empty invoiceNo is generated from prefix.
func buildInvoice(doc *config.Document, prefix string, now func() time.Time) (*invoice2pdf.InvoiceData, error) {
	y, m, d := now().UTC().Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if doc.Date != "" {
		parsed, err := dateutil.Parse(doc.Date, dateutil.InputFormat)
		if err != nil {
			return nil, fmt.Errorf("%w: date: %v", config.ErrFieldInvalid, err)
		}
		date = parsed
	}

	invoiceNo := doc.InvoiceNo
	if invoiceNo == "" {
		if prefix == "" {
			prefix = doc.Prefix
		}
		invoiceNo = invoice2pdf.IDGenerator{Now: now}.Generate(prefix)
	}

	services := make([]invoice2pdf.ServiceItem, 0, len(doc.Services))
	for i, s := range doc.Services {
		item, err := serviceItem(s)
		if err != nil {
			return nil, fmt.Errorf("services[%d]: %w", i, err)
		}
		services = append(services, item)
	}

	v, c := doc.Vendor, doc.Client
	return &invoice2pdf.InvoiceData{
		InvoiceNo: invoiceNo,
		Date:      date,
		Vendor: invoice2pdf.VendorDetails{
			Name:    v.Name,
			Address: v.Address,
			PAN:     v.PAN,
			Mobile:  v.Mobile,
			Email:   v.Email,
			Bank: invoice2pdf.BankDetails{
				AccountName:   v.Bank.AccountName,
				AccountNumber: v.Bank.AccountNumber,
				AccountType:   v.Bank.AccountType,
				IFSCCode:      v.Bank.IFSCCode,
				BankName:      v.Bank.BankName,
				BankAddress:   v.Bank.BankAddress,
			},
		},
		Client: invoice2pdf.ClientDetails{
			Name:    c.Name,
			Address: c.Address,
			GST:     c.GST,
		},
		Services:      services,
		SignaturePath: doc.Signature,
		Notes:         doc.Notes,
	}, nil
}

func serviceItem(s config.ServiceConfig) (invoice2pdf.ServiceItem, error) {
	from, err := dateutil.Parse(s.From, dateutil.InputFormat)
	if err != nil {
		return invoice2pdf.ServiceItem{}, fmt.Errorf("%w: from: %v", config.ErrFieldInvalid, err)
	}
	to, err := dateutil.Parse(s.To, dateutil.InputFormat)
	if err != nil {
		return invoice2pdf.ServiceItem{}, fmt.Errorf("%w: to: %v", config.ErrFieldInvalid, err)
	}

	item := invoice2pdf.ServiceItem{ServiceID: s.ID, From: from, To: to}
	if s.Amount != nil {
		amount := s.Amount.Decimal
		item.Amount = &amount
	}
	return item, nil
}

// resolveOutputDir picks the output directory: flag, then document, then cwd.
func resolveOutputDir(flagOutput string, doc *config.Document) string {
	if flagOutput != "" {
		return flagOutput
	}
	if doc.Output.Dir != "" {
		return doc.Output.Dir
	}
	return "."
}

// loadJobs loads every document and checks they can share one pool.
// With no paths, the built-in demonstration invoice is used.
func loadJobs(paths []string, flags *generateFlags, now func() time.Time) ([]job, renderSettings, error) {
	if len(paths) == 0 {
		doc := demoDocument()
		return jobsFrom([]*config.Document{doc}, []string{demoSource}, flags, now)
	}

	docs := make([]*config.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := config.LoadDocument(p)
		if err != nil {
			return nil, renderSettings{}, fmt.Errorf("loading %s: %w", p, err)
		}
		docs = append(docs, doc)
	}
	return jobsFrom(docs, paths, flags, now)
}

func jobsFrom(docs []*config.Document, sources []string, flags *generateFlags, now func() time.Time) ([]job, renderSettings, error) {
	var settings renderSettings
	jobs := make([]job, 0, len(docs))

	for i, doc := range docs {
		s, err := settingsFor(doc, flags.template)
		if err != nil {
			return nil, renderSettings{}, fmt.Errorf("%s: %w", sources[i], err)
		}
		if i == 0 {
			settings = s
		} else if !settings.equal(s) {
			return nil, renderSettings{}, fmt.Errorf("%w: %s differs from %s", ErrMixedSettings, sources[i], sources[0])
		}

		data, err := buildInvoice(doc, flags.prefix, now)
		if err != nil {
			return nil, renderSettings{}, fmt.Errorf("%s: %w", sources[i], err)
		}
		jobs = append(jobs, job{
			source: sources[i],
			data:   data,
			outDir: resolveOutputDir(flags.output, doc),
		})
	}
	return jobs, settings, nil
}
