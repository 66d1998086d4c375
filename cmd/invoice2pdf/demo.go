package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// demoDocument is the invoice generated when no document is given,
// and the starting point printed by the example command.
func demoDocument() *config.Document {
	return &config.Document{
		Prefix: "DEMO",
		Date:   "2024-05-02",
		Vendor: config.VendorConfig{
			Name:    "Nilgiri Analytics",
			Address: "14 Residency Road\nBengaluru 560025",
			PAN:     "AAAPN1234C",
			Mobile:  "+91 98450 12345",
			Email:   "billing@nilgiri.example",
			Bank: config.BankConfig{
				AccountName:   "Nilgiri Analytics",
				AccountNumber: "50200012345678",
				AccountType:   "Current",
				IFSCCode:      "HDFC0000123",
				BankName:      "HDFC Bank",
				BankAddress:   "MG Road Branch, Bengaluru",
			},
		},
		Client: config.ClientConfig{
			Name:    "Coromandel Freight",
			Address: "7 Harbour Lane\nChennai 600001",
			GST:     "33AAACC1234F1Z5",
		},
		Services: []config.ServiceConfig{
			{ID: "consulting", From: "2024-04-01", To: "2024-04-30"},
			{ID: "hosting", From: "2024-04-01", To: "2024-04-30", Amount: config.NewAmount(decimal.RequireFromString("1250.75"))},
		},
		Notes: "Payment due within **15 days**.\n\nPlease quote the invoice number with your transfer.",
		Catalog: map[string]config.CatalogEntry{
			"consulting": {Name: "Consulting Services", Amount: config.Amount{Decimal: decimal.NewFromInt(65000)}, TaxCode: "998311"},
			"hosting":    {Name: "Managed Hosting", Amount: config.Amount{Decimal: decimal.NewFromInt(1500)}, TaxCode: "998315"},
		},
	}
}

// runExampleCmd prints the demonstration document as YAML.
func runExampleCmd(env *Environment) int {
	if err := yamlutil.Encode(env.Stdout, demoDocument()); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}
	return ExitSuccess
}
