package docxpkg

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// Well-known part names.
const (
	ContentTypesPart = "[Content_Types].xml"
	DocumentPart     = "word/document.xml"
	StylesPart       = "word/styles.xml"
	NumberingPart    = "word/numbering.xml"
	FootnotesPart    = "word/footnotes.xml"
	EndnotesPart     = "word/endnotes.xml"
)

// Package is an opened, read-only DOCX archive.
// Text and Render parse parts afresh on each call, so a Package can be
// rendered several times and is never mutated.
type Package struct {
	zr    *zip.Reader
	index map[string]*zip.File
}

// Open reads a package from memory.
func Open(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}

	p := &Package{
		zr:    zr,
		index: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		p.index[f.Name] = f
	}

	for _, name := range []string{ContentTypesPart, DocumentPart} {
		if _, ok := p.index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}
	return p, nil
}

// OpenFile reads a package from disk.
func OpenFile(filePath string) (*Package, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 -- caller-supplied template path
	if err != nil {
		return nil, fmt.Errorf("reading package: %w", err)
	}
	return Open(data)
}

// HasPart reports whether the archive contains the named entry.
func (p *Package) HasPart(name string) bool {
	_, ok := p.index[name]
	return ok
}

// ReadPart returns the raw bytes of an entry.
func (p *Package) ReadPart(name string) ([]byte, error) {
	f, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrInvalidPackage, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidPackage, name, err)
	}
	return data, nil
}

// ParsePart parses an XML entry into a new etree document.
func (p *Package) ParsePart(name string) (*etree.Document, error) {
	data, err := p.ReadPart(name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPartParse, name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: %s: no root element", ErrPartParse, name)
	}
	return doc, nil
}

// TextParts lists the entries that carry merge fields, in reading order:
// body first, then headers, footers, footnotes and endnotes.
func (p *Package) TextParts() []string {
	var headers, footers []string
	for _, f := range p.zr.File {
		dir, file := path.Split(f.Name)
		if dir != "word/" || !strings.HasSuffix(file, ".xml") {
			continue
		}
		switch {
		case strings.HasPrefix(file, "header"):
			headers = append(headers, f.Name)
		case strings.HasPrefix(file, "footer"):
			footers = append(footers, f.Name)
		}
	}
	sort.Strings(headers)
	sort.Strings(footers)

	parts := []string{DocumentPart}
	parts = append(parts, headers...)
	parts = append(parts, footers...)
	for _, name := range []string{FootnotesPart, EndnotesPart} {
		if p.HasPart(name) {
			parts = append(parts, name)
		}
	}
	return parts
}

// write re-serializes the archive, swapping in replaced entries.
// Entry order, names and timestamps are preserved; untouched entries are
// copied raw, without recompression.
func (p *Package) write(replaced map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range p.zr.File {
		data, ok := replaced[f.Name]
		if !ok {
			if err := copyRaw(zw, f); err != nil {
				return nil, err
			}
			continue
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing package: %w", err)
	}
	return buf.Bytes(), nil
}

func copyRaw(zw *zip.Writer, f *zip.File) error {
	hdr := f.FileHeader
	w, err := zw.CreateRaw(&hdr)
	if err != nil {
		return fmt.Errorf("copying %s: %w", f.Name, err)
	}
	r, err := f.OpenRaw()
	if err != nil {
		return fmt.Errorf("%w: copying %s: %v", ErrInvalidPackage, f.Name, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying %s: %w", f.Name, err)
	}
	return nil
}
