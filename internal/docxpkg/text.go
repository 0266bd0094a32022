package docxpkg

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/alnah/go-docfill/internal/placeholder"
)

// WordprocessingML main namespace.
const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// paragraph groups the w:t elements whose text belongs to one w:p.
// Text inside nested paragraphs (text boxes) belongs to the nested one.
type paragraph struct {
	el    *etree.Element
	texts []*etree.Element
}

// text returns the concatenated run text and the start offset of each w:t.
func (p *paragraph) text() (string, []int) {
	var b strings.Builder
	starts := make([]int, len(p.texts))
	for i, t := range p.texts {
		starts[i] = b.Len()
		b.WriteString(t.Text())
	}
	return b.String(), starts
}

func isWord(e *etree.Element, tag string) bool {
	if e.Tag != tag {
		return false
	}
	if ns := e.NamespaceURI(); ns != "" {
		return ns == nsW
	}
	return e.Space == "w"
}

// paragraphs lists every w:p below root in document order.
// w:delText and w:instrText are not w:t and are never collected.
func paragraphs(root *etree.Element) []*paragraph {
	var out []*paragraph
	var walk func(e *etree.Element, current *paragraph)
	walk = func(e *etree.Element, current *paragraph) {
		for _, child := range e.ChildElements() {
			switch {
			case isWord(child, "p"):
				para := &paragraph{el: child}
				out = append(out, para)
				walk(child, para)
			case isWord(child, "t"):
				if current != nil {
					current.texts = append(current.texts, child)
				}
			default:
				walk(child, current)
			}
		}
	}
	walk(root, nil)
	return out
}

// Text returns the flattened text of every text part, one line per paragraph.
// Run boundaries are ignored, so a field split across runs reads whole.
func (p *Package) Text() (string, error) {
	var lines []string
	for _, name := range p.TextParts() {
		doc, err := p.ParsePart(name)
		if err != nil {
			return "", err
		}
		for _, para := range paragraphs(doc.Root()) {
			s, _ := para.text()
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Tokens returns the distinct merge field names in first-seen order.
func (p *Package) Tokens() ([]string, error) {
	text, err := p.Text()
	if err != nil {
		return nil, fmt.Errorf("extracting tokens: %w", err)
	}
	return placeholder.Extract(text), nil
}
