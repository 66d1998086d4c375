package invoice2pdf

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alnah/go-invoice2pdf/internal/config"
)

// Catalog resolves service identifiers to their reference data.
// Implementations must be safe for concurrent reads.
type Catalog interface {
	Lookup(serviceID string) (CatalogEntry, error)
}

// MapCatalog is an in-memory Catalog. It must not be mutated once in use.
type MapCatalog map[string]CatalogEntry

// Compile-time interface check.
var _ Catalog = MapCatalog(nil)

// Lookup returns the entry for serviceID, or ErrUnknownService.
func (c MapCatalog) Lookup(serviceID string) (CatalogEntry, error) {
	entry, ok := c[serviceID]
	if !ok {
		return CatalogEntry{}, fmt.Errorf("%w: %q", ErrUnknownService, serviceID)
	}
	return entry, nil
}

// IDs returns the known service identifiers in sorted order.
func (c MapCatalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadCatalog reads a YAML service catalog:
//
//	services:
//	  consulting:
//	    name: Consulting Services
//	    amount: 65000
//	    taxCode: "998311"
//
// Unknown keys and negative amounts are rejected.
func LoadCatalog(path string) (MapCatalog, error) {
	entries, err := config.LoadCatalogFile(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogParse, err)
	}
	return catalogFromConfig(entries), nil
}

// catalogFromConfig converts decoded catalog entries into a MapCatalog.
func catalogFromConfig(entries map[string]config.CatalogEntry) MapCatalog {
	catalog := make(MapCatalog, len(entries))
	for id, e := range entries {
		catalog[id] = CatalogEntry{
			Name:    e.Name,
			Amount:  e.Amount.Decimal,
			TaxCode: e.TaxCode,
		}
	}
	return catalog
}
