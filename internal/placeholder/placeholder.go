// Package placeholder finds {name} merge-field tokens in flattened document text.
//
// A token is the text between an opening brace and the next closing brace.
// There is no nesting and no escaping: "{a{b}" yields the single token "a{b".
// Matching never crosses a newline, so callers that separate paragraphs with
// "\n" get paragraph-scoped tokens.
package placeholder

import "regexp"

// tokenPattern is non-greedy so each match ends at the first closing brace.
var tokenPattern = regexp.MustCompile(`\{(.*?)\}`)

// Match is a single token occurrence in the scanned text.
type Match struct {
	Name  string // text between the braces
	Start int    // byte offset of the opening brace
	End   int    // byte offset just past the closing brace
}

// Extract returns the distinct token names in order of first appearance.
// Returns an empty, non-nil slice when text holds no tokens.
// The empty token "{}" is reported as "".
func Extract(text string) []string {
	matches := tokenPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))

	for _, m := range matches {
		name := m[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Scan returns every token occurrence, duplicates included, with byte offsets.
func Scan(text string) []Match {
	idx := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]Match, 0, len(idx))
	for _, loc := range idx {
		out = append(out, Match{
			Name:  text[loc[2]:loc[3]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return out
}
