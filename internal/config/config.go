// Package config loads and validates invoice documents and service catalogs
// written in YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldRequired   = errors.New("required field is missing")
	ErrFieldInvalid    = errors.New("field has an invalid value")
)

// Field length limits.
const (
	MaxPrefixLength     = 20
	MaxInvoiceNoLength  = 64
	MaxNameLength       = 100
	MaxAddressLength    = 300
	MaxTaxIDLength      = 20   // PAN, GSTIN
	MaxPhoneLength      = 20   // E.164 plus separators
	MaxEmailLength      = 254  // RFC 5321
	MaxAccountLength    = 34   // IBAN upper bound
	MaxServiceIDLength  = 64   // Catalog key
	MaxTaxCodeLength    = 10   // HSN/SAC
	MaxPathLength       = 4096 // PATH_MAX
	MaxNotesLength      = 4000 // Markdown notes block
	MaxDateLength       = 30   // "2025-12-31"
	MaxLocaleLength     = 35   // BCP 47 tag
	MaxDateFormatLength = dateutil.MaxDateFormatLength
	MaxServices         = 200
)

// configDirName is the directory searched under os.UserConfigDir.
const configDirName = "go-invoice2pdf"

// Document is one invoice described in YAML.
type Document struct {
	Prefix      string                  `yaml:"prefix,omitempty"`    // Used to generate invoiceNo when empty
	InvoiceNo   string                  `yaml:"invoiceNo,omitempty"` // Empty = generated
	Date        string                  `yaml:"date,omitempty"`      // YYYY-MM-DD, empty = today
	Vendor      VendorConfig            `yaml:"vendor"`
	Client      ClientConfig            `yaml:"client"`
	Services    []ServiceConfig         `yaml:"services"`
	Signature   string                  `yaml:"signature,omitempty"`   // Image path
	Notes       string                  `yaml:"notes,omitempty"`       // Markdown
	Catalog     map[string]CatalogEntry `yaml:"catalog,omitempty"`     // Inline catalog
	CatalogFile string                  `yaml:"catalogFile,omitempty"` // Merged under inline entries
	Template    string                  `yaml:"template,omitempty"`    // Template path, empty = embedded
	CSS         string                  `yaml:"css,omitempty"`         // Extra stylesheet path
	Locale      string                  `yaml:"locale,omitempty"`      // Total grouping, default en-IN
	DateFormat  string                  `yaml:"dateFormat,omitempty"`  // Default DD/MM/YYYY
	Output      OutputConfig            `yaml:"output"`
}

// VendorConfig describes the issuer.
type VendorConfig struct {
	Name    string     `yaml:"name"`
	Address string     `yaml:"address"`
	PAN     string     `yaml:"pan"`
	Mobile  string     `yaml:"mobile"`
	Email   string     `yaml:"email"`
	Bank    BankConfig `yaml:"bank"`
}

// BankConfig describes the payee account.
type BankConfig struct {
	AccountName   string `yaml:"accountName"`
	AccountNumber string `yaml:"accountNumber"`
	AccountType   string `yaml:"accountType"`
	IFSCCode      string `yaml:"ifsc"`
	BankName      string `yaml:"bankName"`
	BankAddress   string `yaml:"bankAddress"`
}

// ClientConfig describes the billed party.
type ClientConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	GST     string `yaml:"gst"`
}

// ServiceConfig is one billed line.
type ServiceConfig struct {
	ID     string  `yaml:"id"`
	From   string  `yaml:"from"` // YYYY-MM-DD
	To     string  `yaml:"to"`   // YYYY-MM-DD
	Amount *Amount `yaml:"amount,omitempty"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = current directory
}

// Validate checks field lengths and required values.
// Called automatically by LoadDocument, but available for consumers
// who construct a Document manually.
func (d *Document) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"prefix", d.Prefix, MaxPrefixLength},
		{"invoiceNo", d.InvoiceNo, MaxInvoiceNoLength},
		{"date", d.Date, MaxDateLength},
		{"vendor.name", d.Vendor.Name, MaxNameLength},
		{"vendor.address", d.Vendor.Address, MaxAddressLength},
		{"vendor.pan", d.Vendor.PAN, MaxTaxIDLength},
		{"vendor.mobile", d.Vendor.Mobile, MaxPhoneLength},
		{"vendor.email", d.Vendor.Email, MaxEmailLength},
		{"vendor.bank.accountName", d.Vendor.Bank.AccountName, MaxNameLength},
		{"vendor.bank.accountNumber", d.Vendor.Bank.AccountNumber, MaxAccountLength},
		{"vendor.bank.accountType", d.Vendor.Bank.AccountType, MaxNameLength},
		{"vendor.bank.ifsc", d.Vendor.Bank.IFSCCode, MaxTaxIDLength},
		{"vendor.bank.bankName", d.Vendor.Bank.BankName, MaxNameLength},
		{"vendor.bank.bankAddress", d.Vendor.Bank.BankAddress, MaxAddressLength},
		{"client.name", d.Client.Name, MaxNameLength},
		{"client.address", d.Client.Address, MaxAddressLength},
		{"client.gst", d.Client.GST, MaxTaxIDLength},
		{"signature", d.Signature, MaxPathLength},
		{"notes", d.Notes, MaxNotesLength},
		{"catalogFile", d.CatalogFile, MaxPathLength},
		{"template", d.Template, MaxPathLength},
		{"css", d.CSS, MaxPathLength},
		{"locale", d.Locale, MaxLocaleLength},
		{"dateFormat", d.DateFormat, MaxDateFormatLength},
		{"output.dir", d.Output.Dir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if d.InvoiceNo != "" {
		if err := fileutil.ValidateFileName(d.InvoiceNo); err != nil {
			return fmt.Errorf("%w: invoiceNo: %v", ErrFieldInvalid, err)
		}
	}
	if d.Date != "" {
		if _, err := dateutil.Parse(d.Date, dateutil.InputFormat); err != nil {
			return fmt.Errorf("%w: date: %v", ErrFieldInvalid, err)
		}
	}
	if d.DateFormat != "" {
		if _, err := dateutil.ParseDateFormat(d.DateFormat); err != nil {
			return fmt.Errorf("%w: dateFormat: %v", ErrFieldInvalid, err)
		}
	}

	if d.Vendor.Name == "" {
		return fmt.Errorf("%w: vendor.name", ErrFieldRequired)
	}
	if d.Client.Name == "" {
		return fmt.Errorf("%w: client.name", ErrFieldRequired)
	}

	if len(d.Services) == 0 {
		return fmt.Errorf("%w: services", ErrFieldRequired)
	}
	if len(d.Services) > MaxServices {
		return fmt.Errorf("%w: services (%d items, max %d)", ErrFieldTooLong, len(d.Services), MaxServices)
	}
	for i, s := range d.Services {
		if err := s.validate(fmt.Sprintf("services[%d]", i)); err != nil {
			return err
		}
	}

	return validateCatalog("catalog", d.Catalog)
}

func (s ServiceConfig) validate(field string) error {
	if s.ID == "" {
		return fmt.Errorf("%w: %s.id", ErrFieldRequired, field)
	}
	if err := validateFieldLength(field+".id", s.ID, MaxServiceIDLength); err != nil {
		return err
	}
	for _, date := range []struct{ name, value string }{{"from", s.From}, {"to", s.To}} {
		if date.value == "" {
			return fmt.Errorf("%w: %s.%s", ErrFieldRequired, field, date.name)
		}
		if _, err := dateutil.Parse(date.value, dateutil.InputFormat); err != nil {
			return fmt.Errorf("%w: %s.%s: %v", ErrFieldInvalid, field, date.name, err)
		}
	}
	if s.Amount != nil && s.Amount.IsNegative() {
		return fmt.Errorf("%w: %s.amount: must not be negative", ErrFieldInvalid, field)
	}
	return nil
}

// ResolvePaths makes relative file references absolute against dir,
// the directory the document was loaded from.
func (d *Document) ResolvePaths(dir string) {
	for _, p := range []*string{&d.Signature, &d.CatalogFile, &d.Template, &d.CSS, &d.Output.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadDocument loads an invoice document from a file path or document name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in the current directory and the user config
// directory. Relative paths inside the document are resolved against the
// document's directory.
func LoadDocument(nameOrPath string) (*Document, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		path, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yamlutil.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc.ResolvePaths(filepath.Dir(path))
	return &doc, nil
}

// SearchPaths returns the locations LoadDocument tries for a bare name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a document by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// readConfigFile reads path, mapping a missing file to ErrConfigNotFound.
func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return data, nil
}
