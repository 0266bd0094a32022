// Package docxpkg opens DOCX packages, reads their flattened text and renders
// {name} merge fields into a new package.
//
// A DOCX file is a zip archive of XML parts. Only the WordprocessingML parts
// that carry body text are touched:
//
//	word/document.xml
//	word/header*.xml
//	word/footer*.xml
//	word/footnotes.xml
//	word/endnotes.xml
//
// Every other entry (styles, media, relationships, custom XML) is copied into
// the rendered package byte-for-byte.
//
// Word frequently splits what the author typed as "{name}" across several runs
// (spell-check marks, formatting changes, revision ids). Both Text and Render
// work on the concatenated text of a paragraph, so a tag split as
// "{na" + "me}" is still found. Render writes the value into the text element
// where the tag starts and strips the rest of the tag from the following
// elements, preserving the formatting of the first run.
package docxpkg
