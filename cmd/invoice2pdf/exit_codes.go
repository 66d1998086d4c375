package main

import (
	"errors"
	"os"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/dateutil"
)

// Exit codes for the invoice2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every invoice generated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, document, or catalog
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, invoice2pdf.ErrRenderEngineUnavailable) ||
		errors.Is(err, invoice2pdf.ErrRenderTimeout) ||
		errors.Is(err, invoice2pdf.ErrExport) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldRequired) ||
		errors.Is(err, config.ErrFieldInvalid) ||
		errors.Is(err, invoice2pdf.ErrNilInvoice) ||
		errors.Is(err, invoice2pdf.ErrEmptyInvoiceNo) ||
		errors.Is(err, invoice2pdf.ErrInvalidInvoiceNo) ||
		errors.Is(err, invoice2pdf.ErrNoServices) ||
		errors.Is(err, invoice2pdf.ErrUnknownService) ||
		errors.Is(err, invoice2pdf.ErrInvalidDateRange) ||
		errors.Is(err, invoice2pdf.ErrInvalidAmount) ||
		errors.Is(err, invoice2pdf.ErrTemplateCompile) ||
		errors.Is(err, invoice2pdf.ErrTemplateData) ||
		errors.Is(err, invoice2pdf.ErrCatalogNotFound) ||
		errors.Is(err, invoice2pdf.ErrCatalogParse) ||
		errors.Is(err, invoice2pdf.ErrInvalidAssetPath) ||
		errors.Is(err, invoice2pdf.ErrInvalidLocale) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrMixedSettings) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, invoice2pdf.ErrWrite) ||
		errors.Is(err, invoice2pdf.ErrAssetNotFound) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, ErrReadCSS) {
		return ExitIO
	}

	return ExitGeneral
}
