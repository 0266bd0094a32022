package markup

import (
	"strconv"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type converter struct {
	headings map[string]int
	lists    numbering
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// openList is one level of the list nesting stack.
type openList struct {
	node    *html.Node
	level   int
	ordered bool
}

// blocks converts the block-level children of a body, table cell or
// content control.
func (c *converter) blocks(parent *etree.Element) []*html.Node {
	var (
		out   []*html.Node
		stack []openList
	)

	var visit func(e *etree.Element)
	visit = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			switch child.Tag {
			case "p":
				if numID, ilvl, ok := numbered(child); ok {
					ordered := c.lists.ordered(numID, ilvl)
					li := element(atom.Li, c.inline(child)...)
					stack = pushItem(stack, &out, li, ilvl, ordered)
					continue
				}
				stack = nil
				if n := c.paragraph(child); n != nil {
					out = append(out, n)
				}
			case "tbl":
				stack = nil
				out = append(out, c.table(child))
			case "sdt":
				if content := child.SelectElement("sdtContent"); content != nil {
					visit(content)
				}
			}
		}
	}
	visit(parent)
	return out
}

// pushItem places li in the list at level ilvl, opening or closing nested
// lists as needed, and returns the updated stack.
func pushItem(stack []openList, out *[]*html.Node, li *html.Node, ilvl int, ordered bool) []openList {
	for len(stack) > 0 && stack[len(stack)-1].level > ilvl {
		stack = stack[:len(stack)-1]
	}
	if n := len(stack); n > 0 && stack[n-1].level == ilvl && stack[n-1].ordered != ordered {
		stack = stack[:n-1]
	}

	if n := len(stack); n == 0 || stack[n-1].level < ilvl {
		a := atom.Ul
		if ordered {
			a = atom.Ol
		}
		list := element(a)
		if n == 0 {
			*out = append(*out, list)
		} else if parentItem := stack[n-1].node.LastChild; parentItem != nil {
			parentItem.AppendChild(list)
		} else {
			stack[n-1].node.AppendChild(list)
		}
		stack = append(stack, openList{node: list, level: ilvl, ordered: ordered})
	}

	stack[len(stack)-1].node.AppendChild(li)
	return stack
}

func numbered(p *etree.Element) (numID string, ilvl int, ok bool) {
	numPr := p.FindElement("pPr/numPr")
	if numPr == nil {
		return "", 0, false
	}
	id := numPr.SelectElement("numId")
	if id == nil {
		return "", 0, false
	}
	numID = attr(id, "val")
	// numId 0 removes numbering inherited from the style.
	if numID == "" || numID == "0" {
		return "", 0, false
	}
	if lvl := numPr.SelectElement("ilvl"); lvl != nil {
		ilvl, _ = strconv.Atoi(attr(lvl, "val"))
	}
	return numID, ilvl, true
}

func (c *converter) headingLevel(p *etree.Element) int {
	if style := p.FindElement("pPr/pStyle"); style != nil {
		id := attr(style, "val")
		if lvl, ok := c.headings[id]; ok {
			return lvl
		}
		if lvl := headingFromStyleID(id); lvl > 0 {
			return lvl
		}
	}
	if ol := p.FindElement("pPr/outlineLvl"); ol != nil {
		return outlineToHeading(attr(ol, "val"))
	}
	return 0
}

// paragraph returns nil for paragraphs without content.
func (c *converter) paragraph(p *etree.Element) *html.Node {
	children := c.inline(p)
	if len(children) == 0 {
		return nil
	}
	if lvl := c.headingLevel(p); lvl > 0 {
		return element(headingAtoms[lvl-1], children...)
	}
	return element(atom.P, children...)
}

func (c *converter) table(tbl *etree.Element) *html.Node {
	table := element(atom.Table)
	for _, tr := range tbl.SelectElements("tr") {
		row := element(atom.Tr)
		for _, tc := range tr.SelectElements("tc") {
			row.AppendChild(element(atom.Td, c.blocks(tc)...))
		}
		table.AppendChild(row)
	}
	return table
}

// inline converts the runs of a paragraph. Hyperlinks keep their text only;
// deletions are dropped.
func (c *converter) inline(parent *etree.Element) []*html.Node {
	var out []*html.Node
	for _, child := range parent.ChildElements() {
		switch child.Tag {
		case "r":
			out = append(out, run(child)...)
		case "hyperlink", "ins", "smartTag", "fldSimple", "customXml":
			out = append(out, c.inline(child)...)
		case "sdt":
			if content := child.SelectElement("sdtContent"); content != nil {
				out = append(out, c.inline(content)...)
			}
		}
	}
	return out
}

// toggle reports whether a run property is switched on.
func toggle(rPr *etree.Element, tag string) bool {
	if rPr == nil {
		return false
	}
	e := rPr.SelectElement(tag)
	if e == nil {
		return false
	}
	switch attr(e, "val") {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

func run(r *etree.Element) []*html.Node {
	var content []*html.Node
	for _, child := range r.ChildElements() {
		switch child.Tag {
		case "t":
			if s := child.Text(); s != "" {
				content = append(content, text(s))
			}
		case "tab":
			content = append(content, text(" "))
		case "br":
			if attr(child, "type") == "" || attr(child, "type") == "textWrapping" {
				content = append(content, element(atom.Br))
			}
		case "cr":
			content = append(content, element(atom.Br))
		case "noBreakHyphen":
			content = append(content, text("-"))
		}
	}
	if len(content) == 0 {
		return nil
	}

	rPr := r.SelectElement("rPr")
	wrap := func(a atom.Atom) {
		content = []*html.Node{element(a, content...)}
	}
	if toggle(rPr, "strike") || toggle(rPr, "dstrike") {
		wrap(atom.S)
	}
	if toggle(rPr, "u") {
		wrap(atom.U)
	}
	if toggle(rPr, "i") {
		wrap(atom.Em)
	}
	if toggle(rPr, "b") {
		wrap(atom.Strong)
	}
	return content
}
