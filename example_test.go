package invoice2pdf_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
)

const exampleTemplate = `{{range .Services}}{{.ServiceName}} ({{.HSNCode}}) {{.FromDate}}-{{.ToDate}}: {{.Amount}}
{{end}}Total: {{.TotalAmount}}`

func ExampleGenerator_RenderHTML() {
	catalog := invoice2pdf.MapCatalog{
		"consulting": {Name: "Consulting Services", Amount: decimal.NewFromInt(65000), TaxCode: "998311"},
		"hosting":    {Name: "Managed Hosting", Amount: decimal.RequireFromString("1250.75"), TaxCode: "998315"},
	}

	g, err := invoice2pdf.NewGenerator(
		invoice2pdf.WithCatalog(catalog),
		invoice2pdf.WithTemplate(exampleTemplate),
		invoice2pdf.WithStyle(""),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = g.Close() }()

	april := func(d int) time.Time { return time.Date(2024, time.April, d, 0, 0, 0, 0, time.UTC) }
	discount := decimal.NewFromInt(60000)

	html, err := g.RenderHTML(context.Background(), &invoice2pdf.InvoiceData{
		InvoiceNo: "INV-001",
		Date:      april(30),
		Services: []invoice2pdf.ServiceItem{
			{ServiceID: "consulting", From: april(1), To: april(30), Amount: &discount},
			{ServiceID: "hosting", From: april(1), To: april(30)},
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(html)
	// Output:
	// Consulting Services (998311) 01/04/2024-30/04/2024: 60000.00
	// Managed Hosting (998315) 01/04/2024-30/04/2024: 1250.75
	// Total: 61,250.75
}

func ExampleIDGenerator_Generate() {
	gen := invoice2pdf.IDGenerator{
		Now:   func() time.Time { return time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC) },
		NewID: func() uuid.UUID { return uuid.MustParse("9f86d081-884c-4d63-a2f2-6b3b10b1c0de") },
	}
	fmt.Println(gen.Generate("ACME"))
	// Output: ACME-20240401-9f86d081
}

func ExampleFailedStage() {
	catalog := invoice2pdf.MapCatalog{}
	n := invoice2pdf.NewNormalizer(catalog, nil, invoice2pdf.NormalizerOptions{})

	_, err := n.Normalize(context.Background(), &invoice2pdf.InvoiceData{
		InvoiceNo: "INV-002",
		Services:  []invoice2pdf.ServiceItem{{ServiceID: "audit"}},
	})
	fmt.Println(invoice2pdf.FailedStage(err), errors.Is(err, invoice2pdf.ErrUnknownService))
	// Output: normalize true
}
