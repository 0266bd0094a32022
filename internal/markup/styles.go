package markup

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/alnah/go-docfill/internal/docxpkg"
)

const maxHeading = 6

// headingFromStyleID recognizes built-in style ids when styles.xml is absent.
func headingFromStyleID(id string) int {
	if id == "Title" {
		return 1
	}
	if n, ok := strings.CutPrefix(id, "Heading"); ok {
		if lvl, err := strconv.Atoi(n); err == nil && lvl >= 1 && lvl <= maxHeading {
			return lvl
		}
	}
	return 0
}

// loadHeadingStyles maps paragraph style ids to heading levels 1..6.
// Localized ids ("Kop1", "Überschrift1") resolve through the style name or
// the style's outline level.
func loadHeadingStyles(pkg *docxpkg.Package) map[string]int {
	levels := make(map[string]int)
	if !pkg.HasPart(docxpkg.StylesPart) {
		return levels
	}
	doc, err := pkg.ParsePart(docxpkg.StylesPart)
	if err != nil {
		return levels
	}

	for _, s := range doc.FindElements("//style") {
		if attr(s, "type") != "paragraph" {
			continue
		}
		id := attr(s, "styleId")
		if id == "" {
			continue
		}
		if lvl := styleLevel(s); lvl > 0 {
			levels[id] = lvl
		}
	}
	return levels
}

func styleLevel(s *etree.Element) int {
	if name := s.FindElement("name"); name != nil {
		v := strings.ToLower(attr(name, "val"))
		if v == "title" {
			return 1
		}
		if n, ok := strings.CutPrefix(v, "heading "); ok {
			if lvl, err := strconv.Atoi(n); err == nil && lvl >= 1 && lvl <= maxHeading {
				return lvl
			}
		}
	}
	if ol := s.FindElement("pPr/outlineLvl"); ol != nil {
		return outlineToHeading(attr(ol, "val"))
	}
	return 0
}

// outlineToHeading maps a 0-based outline level to a heading level.
// Level 9 is body text.
func outlineToHeading(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n >= maxHeading {
		return 0
	}
	return n + 1
}

// numbering resolves (numId, ilvl) to an ordered/unordered list kind.
type numbering struct {
	formats map[string]map[int]string // numId -> ilvl -> numFmt
}

func loadNumbering(pkg *docxpkg.Package) numbering {
	nb := numbering{formats: make(map[string]map[int]string)}
	if !pkg.HasPart(docxpkg.NumberingPart) {
		return nb
	}
	doc, err := pkg.ParsePart(docxpkg.NumberingPart)
	if err != nil {
		return nb
	}

	abstract := make(map[string]map[int]string)
	for _, an := range doc.FindElements("//abstractNum") {
		lvls := make(map[int]string)
		for _, lvl := range an.FindElements("lvl") {
			ilvl, err := strconv.Atoi(attr(lvl, "ilvl"))
			if err != nil {
				continue
			}
			if f := lvl.FindElement("numFmt"); f != nil {
				lvls[ilvl] = attr(f, "val")
			}
		}
		abstract[attr(an, "abstractNumId")] = lvls
	}
	for _, num := range doc.FindElements("//num") {
		ref := num.FindElement("abstractNumId")
		if ref == nil {
			continue
		}
		if lvls, ok := abstract[attr(ref, "val")]; ok {
			nb.formats[attr(num, "numId")] = lvls
		}
	}
	return nb
}

// ordered reports whether the level renders as <ol>. Unknown numbering and
// bullet or none formats render as <ul>.
func (nb numbering) ordered(numID string, ilvl int) bool {
	switch nb.formats[numID][ilvl] {
	case "", "bullet", "none":
		return false
	default:
		return true
	}
}

// attr reads a w:-prefixed attribute, falling back to the bare key.
func attr(e *etree.Element, key string) string {
	if a := e.SelectAttr("w:" + key); a != nil {
		return a.Value
	}
	return e.SelectAttrValue(key, "")
}
