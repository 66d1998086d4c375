package invoice2pdf

import (
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
)

// BankDetails holds the payee account printed on the invoice.
type BankDetails struct {
	AccountName   string
	AccountNumber string
	AccountType   string
	IFSCCode      string // Branch routing code
	BankName      string
	BankAddress   string
}

// VendorDetails identifies who issues the invoice.
type VendorDetails struct {
	Name    string
	Address string
	PAN     string // Tax identity number
	Mobile  string
	Email   string
	Bank    BankDetails
}

// ClientDetails identifies who is billed.
type ClientDetails struct {
	Name    string
	Address string
	GST     string // Tax registration number
}

// ServiceItem is one billed line, referring to a catalog entry.
// A nil Amount means the catalog default applies.
type ServiceItem struct {
	ServiceID string
	From      time.Time
	To        time.Time
	Amount    *decimal.Decimal
}

// CatalogEntry is the reference data for a billable service.
type CatalogEntry struct {
	Name    string
	Amount  decimal.Decimal
	TaxCode string // HSN/SAC code
}

// InvoiceData is the caller-supplied input of one invoice.
type InvoiceData struct {
	InvoiceNo     string
	Date          time.Time
	Vendor        VendorDetails
	Client        ClientDetails
	Services      []ServiceItem
	SignaturePath string // Image file embedded into the document; empty for none
	Notes         string // Optional Markdown block (payment terms, remarks)
}

// Validate checks the fields every invoice needs before normalization.
func (d *InvoiceData) Validate() error {
	if d == nil {
		return ErrNilInvoice
	}
	if d.InvoiceNo == "" {
		return ErrEmptyInvoiceNo
	}
	if err := fileutil.ValidateFileName(d.InvoiceNo); err != nil {
		return ErrInvalidInvoiceNo
	}
	if len(d.Services) == 0 {
		return ErrNoServices
	}
	return nil
}

// LineItem is a normalized service with display-ready strings.
type LineItem struct {
	ServiceID   string
	ServiceName string
	HSNCode     string
	FromDate    string
	ToDate      string
	Amount      string // Two fraction digits, no grouping
}

// InvoiceView is the normalized form bound into the template.
// Its exported field names are the template's binding contract.
type InvoiceView struct {
	InvoiceNo   string
	Date        string
	Vendor      VendorDetails
	Client      ClientDetails
	Services    []LineItem
	TotalAmount string       // Two fraction digits, locale grouping
	Signature   template.URL // data: URL, empty when no signature
	Notes       template.HTML
}

// Artifact is a composed invoice document.
type Artifact struct {
	InvoiceNo string
	PDF       []byte
}

// FileName returns the file name the artifact is saved under.
func (a *Artifact) FileName() string {
	return a.InvoiceNo + ".pdf"
}
