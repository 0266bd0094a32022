package docxpkg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// tag is one well-formed {name} occurrence in a paragraph's text.
// start and end are byte offsets, end is exclusive and includes the '}'.
type tag struct {
	start, end int
	name       string
}

// locateTags finds every tag in s. Malformed delimiters are returned as
// problems without part or paragraph set.
func locateTags(s string) ([]tag, []FieldError) {
	var (
		tags     []tag
		problems []FieldError
		open     = -1
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if open >= 0 {
				problems = append(problems, FieldError{
					Offset: open,
					Tag:    s[open : i+1],
					Reason: ReasonNested,
				})
			}
			open = i
		case '}':
			if open < 0 {
				problems = append(problems, FieldError{
					Offset: i,
					Tag:    "}",
					Reason: ReasonUnopened,
				})
				continue
			}
			tags = append(tags, tag{start: open, end: i + 1, name: s[open+1 : i]})
			open = -1
		}
	}
	if open >= 0 {
		problems = append(problems, FieldError{
			Offset: open,
			Tag:    s[open:],
			Reason: ReasonUnclosed,
		})
	}
	return tags, problems
}

// Render substitutes values into every merge field of every text part and
// returns the re-serialized package. Fields absent from values render empty;
// extra keys are ignored. All malformed fields are reported together in a
// *RenderError.
func (p *Package) Render(values map[string]string) ([]byte, error) {
	replaced := make(map[string][]byte)
	var problems []FieldError

	for _, name := range p.TextParts() {
		doc, err := p.ParsePart(name)
		if err != nil {
			return nil, err
		}

		changed := false
		for i, para := range paragraphs(doc.Root()) {
			text, starts := para.text()
			tags, bad := locateTags(text)
			for _, b := range bad {
				b.Part = name
				b.Paragraph = i
				problems = append(problems, b)
			}
			if len(bad) > 0 || len(tags) == 0 {
				continue
			}
			para.substitute(text, starts, tags, values)
			changed = true
		}

		if !changed {
			continue
		}
		data, err := doc.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}
		replaced[name] = data
	}

	if len(problems) > 0 {
		return nil, &RenderError{Fields: problems}
	}
	return p.write(replaced)
}

func lookup(values map[string]string, name string) string {
	v, ok := values[name]
	if !ok {
		return ""
	}
	return strings.ReplaceAll(v, "\r\n", "\n")
}

// substitute rewrites the paragraph's w:t elements. Each value lands in the
// element holding its tag's '{'; the remaining tag characters are removed
// from whichever elements held them.
func (p *paragraph) substitute(text string, starts []int, tags []tag, values map[string]string) {
	out := make([]strings.Builder, len(p.texts))

	// owner returns the index of the w:t holding byte offset pos.
	owner := func(pos int) int {
		return sort.Search(len(starts), func(i int) bool {
			return i+1 == len(starts) || starts[i+1] > pos
		})
	}
	copyRange := func(from, to int) {
		for i := range p.texts {
			lo, hi := starts[i], len(text)
			if i+1 < len(starts) {
				hi = starts[i+1]
			}
			lo, hi = max(lo, from), min(hi, to)
			if lo < hi {
				out[i].WriteString(text[lo:hi])
			}
		}
	}

	pos := 0
	for _, tg := range tags {
		copyRange(pos, tg.start)
		out[owner(tg.start)].WriteString(lookup(values, tg.name))
		pos = tg.end
	}
	copyRange(pos, len(text))

	for i, t := range p.texts {
		s := out[i].String()
		if s == t.Text() {
			continue
		}
		setText(t, s)
	}
}

// setText writes s into t, turning newlines into w:br siblings inside the
// same run.
func setText(t *etree.Element, s string) {
	lines := strings.Split(s, "\n")
	t.SetText(lines[0])
	t.CreateAttr("xml:space", "preserve")
	if len(lines) == 1 {
		return
	}

	parent := t.Parent()
	if parent == nil {
		t.SetText(strings.Join(lines, " "))
		return
	}
	at := t.Index() + 1
	prefix := t.Space
	if prefix == "" {
		prefix = "w"
	}
	for _, line := range lines[1:] {
		br := etree.NewElement(prefix + ":br")
		parent.InsertChildAt(at, br)
		at++

		next := etree.NewElement(prefix + ":t")
		next.CreateAttr("xml:space", "preserve")
		next.SetText(line)
		parent.InsertChildAt(at, next)
		at++
	}
}
