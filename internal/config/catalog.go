package config

import (
	"fmt"

	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// CatalogEntry is a billable service as written in YAML.
type CatalogEntry struct {
	Name    string `yaml:"name"`
	Amount  Amount `yaml:"amount"`
	TaxCode string `yaml:"taxCode"`
}

// catalogFile is the top-level shape of a catalog file.
type catalogFile struct {
	Services map[string]CatalogEntry `yaml:"services"`
}

// LoadCatalogFile reads a standalone service catalog.
// Returns ErrConfigNotFound if the file does not exist.
func LoadCatalogFile(path string) (map[string]CatalogEntry, error) {
	if path == "" {
		return nil, ErrEmptyConfigName
	}

	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yamlutil.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if len(file.Services) == 0 {
		return nil, fmt.Errorf("%w: %s: services", ErrFieldRequired, path)
	}
	if err := validateCatalog("services", file.Services); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file.Services, nil
}

func validateCatalog(field string, entries map[string]CatalogEntry) error {
	for id, e := range entries {
		name := fmt.Sprintf("%s.%s", field, id)
		if err := validateFieldLength(name, id, MaxServiceIDLength); err != nil {
			return err
		}
		if e.Name == "" {
			return fmt.Errorf("%w: %s.name", ErrFieldRequired, name)
		}
		if err := validateFieldLength(name+".name", e.Name, MaxNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(name+".taxCode", e.TaxCode, MaxTaxCodeLength); err != nil {
			return err
		}
		if e.Amount.IsNegative() {
			return fmt.Errorf("%w: %s.amount: must not be negative", ErrFieldInvalid, name)
		}
	}
	return nil
}
