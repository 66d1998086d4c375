package invoice2pdf

import (
	"context"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/money"
	"github.com/alnah/go-invoice2pdf/internal/pipeline"
)

// DefaultDateFormat is the display format for invoice and service dates.
const DefaultDateFormat = dateutil.DisplayFormat

// Embedder turns an image file into a self-contained data URL.
type Embedder interface {
	Embed(path string) (string, error)
}

// EmbedderFunc adapts a function to Embedder.
type EmbedderFunc func(path string) (string, error)

// Embed calls f(path).
func (f EmbedderFunc) Embed(path string) (string, error) {
	return f(path)
}

// NormalizerOptions tunes display formatting.
// Zero values select DefaultDateFormat, money.DefaultLocale and Goldmark notes.
type NormalizerOptions struct {
	DateFormat string
	Locale     language.Tag
	Notes      pipeline.NotesConverter
}

// Normalizer resolves InvoiceData against a catalog into an InvoiceView.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	catalog    Catalog
	embedder   Embedder
	notes      pipeline.NotesConverter
	dateFormat string
	locale     language.Tag
}

// NewNormalizer creates a Normalizer. A nil embedder reads files from disk.
func NewNormalizer(catalog Catalog, embedder Embedder, opts NormalizerOptions) *Normalizer {
	n := &Normalizer{
		catalog:    catalog,
		embedder:   embedder,
		notes:      opts.Notes,
		dateFormat: opts.DateFormat,
		locale:     opts.Locale,
	}
	if n.catalog == nil {
		n.catalog = MapCatalog{}
	}
	if n.embedder == nil {
		n.embedder = EmbedderFunc(assets.EmbedImage)
	}
	if n.notes == nil {
		n.notes = pipeline.NewGoldmarkNotes()
	}
	if n.dateFormat == "" {
		n.dateFormat = DefaultDateFormat
	}
	if n.locale == language.Und {
		n.locale = money.DefaultLocale
	}
	return n
}

// Normalize validates data and produces the view bound into the template.
// Every service is resolved and checked before the signature is read, and
// no view is returned on any failure.
func (n *Normalizer) Normalize(ctx context.Context, data *InvoiceData) (*InvoiceView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		input := ""
		if data != nil {
			input = data.InvoiceNo
		}
		return nil, &StageError{Stage: StageValidate, Input: input, Err: err}
	}

	date, err := dateutil.Format(data.Date, n.dateFormat)
	if err != nil {
		return nil, &StageError{Stage: StageNormalize, Input: "date", Err: err}
	}

	items := make([]LineItem, 0, len(data.Services))
	amounts := make([]decimal.Decimal, 0, len(data.Services))
	for _, s := range data.Services {
		item, amount, err := n.normalizeItem(s)
		if err != nil {
			return nil, &StageError{Stage: StageNormalize, Input: s.ServiceID, Err: err}
		}
		items = append(items, item)
		amounts = append(amounts, amount)
	}

	view := &InvoiceView{
		InvoiceNo:   data.InvoiceNo,
		Date:        date,
		Vendor:      data.Vendor,
		Client:      data.Client,
		Services:    items,
		TotalAmount: money.Grouped(money.Sum(amounts...), n.locale),
	}

	if data.SignaturePath != "" {
		uri, err := n.embedder.Embed(data.SignaturePath)
		if err != nil {
			return nil, &StageError{Stage: StageEmbed, Input: data.SignaturePath, Err: err}
		}
		view.Signature = template.URL(uri) // #nosec G203 -- data URL built from a local file
	}

	notes, err := n.notes.ToHTML(ctx, data.Notes)
	if err != nil {
		return nil, &StageError{Stage: StageNotes, Err: err}
	}
	view.Notes = template.HTML(notes) // #nosec G203 -- goldmark output with raw HTML disabled

	return view, nil
}

// normalizeItem resolves one service and returns its line and effective amount.
func (n *Normalizer) normalizeItem(s ServiceItem) (LineItem, decimal.Decimal, error) {
	entry, err := n.catalog.Lookup(s.ServiceID)
	if err != nil {
		return LineItem{}, decimal.Decimal{}, err
	}

	if s.To.Before(s.From) {
		return LineItem{}, decimal.Decimal{}, fmt.Errorf("%w: %s > %s",
			ErrInvalidDateRange, s.From.Format("2006-01-02"), s.To.Format("2006-01-02"))
	}

	amount := entry.Amount
	if s.Amount != nil {
		if s.Amount.IsNegative() {
			return LineItem{}, decimal.Decimal{}, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, s.Amount)
		}
		amount = *s.Amount
	}

	from, err := dateutil.Format(s.From, n.dateFormat)
	if err != nil {
		return LineItem{}, decimal.Decimal{}, err
	}
	to, err := dateutil.Format(s.To, n.dateFormat)
	if err != nil {
		return LineItem{}, decimal.Decimal{}, err
	}

	return LineItem{
		ServiceID:   s.ServiceID,
		ServiceName: entry.Name,
		HSNCode:     entry.TaxCode,
		FromDate:    from,
		ToDate:      to,
		Amount:      money.Fixed(amount),
	}, amount, nil
}
