// Package pipeline implements the markup stages of invoice generation.
//
// This package handles the stages that run before the browser is involved:
//   - Template rendering via html/template with strict field binding
//   - Stylesheet injection into the rendered document
//   - Markdown notes to HTML fragments via Goldmark
//
// PDF generation is handled separately by the root invoice2pdf package using
// headless Chrome (go-rod). This separation keeps the pipeline free of
// browser state, so every stage here is pure and safe for concurrent use.
package pipeline
