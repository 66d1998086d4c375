package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadCatalogFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, entries map[string]CatalogEntry)
	}{
		{
			name: "integer, float and string amounts",
			content: `services:
  consulting:
    name: "Consulting Services"
    amount: 65000
    taxCode: "998311"
  hosting:
    name: "Managed Hosting"
    amount: 1250.75
  audit:
    name: "Security Audit"
    amount: "99999.99"
`,
			check: func(t *testing.T, entries map[string]CatalogEntry) {
				want := map[string]string{
					"consulting": "65000",
					"hosting":    "1250.75",
					"audit":      "99999.99",
				}
				for id, amount := range want {
					got, ok := entries[id]
					if !ok {
						t.Errorf("entry %q missing", id)
						continue
					}
					if got.Amount.String() != amount {
						t.Errorf("%s amount = %s, want %s", id, got.Amount, amount)
					}
				}
				if entries["consulting"].TaxCode != "998311" {
					t.Errorf("consulting taxCode = %q", entries["consulting"].TaxCode)
				}
			},
		},
		{
			name:    "empty services",
			content: "services: {}\n",
			wantErr: ErrFieldRequired,
		},
		{
			name:    "unknown key",
			content: "services:\n  a:\n    name: \"A\"\n    amount: 1\n    rate: 2\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "negative amount",
			content: "services:\n  a:\n    name: \"A\"\n    amount: -1\n",
			wantErr: ErrFieldInvalid,
		},
		{
			name:    "non-numeric amount",
			content: "services:\n  a:\n    name: \"A\"\n    amount: \"lots\"\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "missing name",
			content: "services:\n  a:\n    amount: 10\n",
			wantErr: ErrFieldRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries, err := LoadCatalogFile(writeCatalog(t, tt.content))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadCatalogFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCatalogFile() error = %v", err)
			}
			tt.check(t, entries)
		})
	}
}

func TestLoadCatalogFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadCatalogFile() error = %v, want ErrConfigNotFound", err)
	}

	_, err = LoadCatalogFile("")
	if !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadCatalogFile(\"\") error = %v, want ErrEmptyConfigName", err)
	}
}

func TestAmount_MarshalYAML(t *testing.T) {
	t.Parallel()

	type line struct {
		Amount *Amount `yaml:"amount,omitempty"`
	}

	out, err := yamlutil.Marshal(line{Amount: NewAmount(decimal.RequireFromString("499.50"))})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back line
	if err := yamlutil.UnmarshalStrict(out, &back); err != nil {
		t.Fatalf("UnmarshalStrict(%q) error = %v", out, err)
	}
	if back.Amount == nil || !back.Amount.Equal(decimal.RequireFromString("499.5")) {
		t.Errorf("round trip amount = %v, want 499.5", back.Amount)
	}

	out, err = yamlutil.Marshal(line{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(out), "amount") {
		t.Errorf("nil amount marshalled as %q, want omitted", out)
	}
}
