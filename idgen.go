package invoice2pdf

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultInvoicePrefix is used when GenerateInvoiceNumber gets an empty prefix.
const DefaultInvoicePrefix = "INV"

// invoiceDateLayout is the date segment of generated invoice numbers.
const invoiceDateLayout = "20060102"

// IDGenerator produces invoice numbers of the form PREFIX-YYYYMMDD-xxxxxxxx,
// where the last segment is the first group of a random UUID.
// The zero value uses the wall clock and uuid.New.
type IDGenerator struct {
	Now   func() time.Time
	NewID func() uuid.UUID
}

// Generate returns a new invoice number. It keeps no state between calls;
// uniqueness rests on the 32 random bits of the UUID segment.
func (g IDGenerator) Generate(prefix string) string {
	now := g.Now
	if now == nil {
		now = time.Now
	}
	newID := g.NewID
	if newID == nil {
		newID = uuid.New
	}

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}

	segment, _, _ := strings.Cut(newID().String(), "-")
	return prefix + "-" + now().Format(invoiceDateLayout) + "-" + segment
}

// GenerateInvoiceNumber returns a fresh invoice number with the given prefix.
func GenerateInvoiceNumber(prefix string) string {
	return IDGenerator{}.Generate(prefix)
}
