// Package invoice2pdf renders invoices to A4 PDF using headless Chrome.
//
// # Quick Start
//
// Build a catalog, describe the invoice, and generate:
//
//	catalog := invoice2pdf.MapCatalog{
//	    "consulting": {Name: "Consulting Services", Amount: decimal.NewFromInt(65000), TaxCode: "998311"},
//	}
//
//	gen, err := invoice2pdf.NewGenerator(invoice2pdf.WithCatalog(catalog))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	path, err := gen.GenerateAndSave(ctx, &invoice2pdf.InvoiceData{
//	    InvoiceNo: invoice2pdf.GenerateInvoiceNumber("INV"),
//	    Date:      time.Now(),
//	    Vendor:    invoice2pdf.VendorDetails{Name: "Nilgiri Analytics"},
//	    Client:    invoice2pdf.ClientDetails{Name: "Coromandel Freight"},
//	    Services: []invoice2pdf.ServiceItem{
//	        {ServiceID: "consulting", From: start, To: end},
//	    },
//	}, "out")
//
// GenerateInvoice does the same in one call and releases the browser
// before returning.
//
// # Pipeline
//
// Stages run strictly in order and each failure is returned at once,
// wrapped in a *StageError naming the stage and the offending input:
//
//  1. Validate: invoice number and services are present
//  2. Normalize: resolve services against the Catalog, check periods,
//     apply override amounts, total in exact decimal arithmetic
//  3. Embed: the signature image becomes a data: URL
//  4. Notes: the optional Markdown notes become an HTML fragment
//  5. Render: html/template binds the InvoiceView; CSS is injected
//  6. Compose: Chrome waits for the page to settle, then prints A4
//     with zero margins and backgrounds
//  7. Save: {destDir}/{invoiceNo}.pdf is written atomically
//
// No artifact is written unless every stage succeeds. There are no retries.
//
// # Templates
//
// Templates are html/template documents executed with missingkey=error,
// so referencing a field the view lacks fails with ErrTemplateData.
// The data is an InvoiceView:
//
//	.InvoiceNo     string
//	.Date          string             formatted with WithDateFormat (default DD/MM/YYYY)
//	.Vendor        VendorDetails      .Name .Address .PAN .Mobile .Email .Bank
//	.Vendor.Bank   BankDetails        .AccountName .AccountNumber .AccountType .IFSCCode .BankName .BankAddress
//	.Client        ClientDetails      .Name .Address .GST
//	.Services      []LineItem         .ServiceID .ServiceName .HSNCode .FromDate .ToDate .Amount
//	.TotalAmount   string             two decimals, grouped per WithLocale (default en-IN)
//	.Signature     template.URL       data: URL, empty without a signature
//	.Notes         template.HTML      rendered Markdown, empty without notes
//
// Helper functions: inc (1-based row numbers), upper, lines (split on newlines).
//
// # Parallel Processing
//
// A Generator owns one browser and serializes its work. For batches use
// GeneratorPool, which hands each Generator to one caller at a time:
//
//	pool := invoice2pdf.NewGeneratorPool(4, invoice2pdf.WithCatalog(catalog))
//	defer pool.Close()
//
//	err := pool.Do(ctx, func(g *invoice2pdf.Generator) error {
//	    _, err := g.GenerateAndSave(ctx, data, "out")
//	    return err
//	})
//
// # Error Handling
//
// Check for specific errors using errors.Is:
//
//	if errors.Is(err, invoice2pdf.ErrUnknownService) {
//	    // fix the catalog or the service id
//	}
//	if errors.Is(err, invoice2pdf.ErrRenderTimeout) {
//	    // raise WithTimeout
//	}
//
// FailedStage(err) reports where the pipeline stopped.
package invoice2pdf
