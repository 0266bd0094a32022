// Package docfill fills {placeholder} merge fields in Word templates and
// optionally converts the result to PDF.
//
// A Pipeline lists the placeholders of a template and renders it with a
// map of values:
//
//	p := docfill.New(docfill.WithLogger(log))
//	names, err := p.ListTokens(ctx, "templates/invoice.docx")
//	res, err := p.Render(ctx, "templates/invoice.docx", values, docfill.FormatPDF)
//
// Placeholders may span formatting runs; the text of each paragraph is
// joined before matching and the value is written into the run holding the
// opening brace, keeping its formatting. Headers, footers, footnotes and
// endnotes are filled as well. Missing values render as empty text.
//
// PDF output goes through an intermediate HTML rendition printed by a
// headless Chrome started for each conversion and torn down afterwards.
// The browser is found once, in New: an explicit binary, then the newest
// build in a puppeteer-style cache, then go-rod's own lookup.
//
// Errors match one of the Err* sentinels with errors.Is. Malformed
// templates return an *Error whose Fields locate every bad delimiter.
package docfill
