package browser

import (
	"strconv"
	"strings"
)

// isVersion accepts dot-separated decimal segments such as "140.0.7339.82".
func isVersion(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return false
		}
		if _, err := strconv.ParseUint(seg, 10, 64); err != nil {
			return false
		}
	}
	return true
}

// CompareVersions orders dot-separated numeric versions segment by segment,
// so "140.0.7339.82" > "99.0.1.1" and "1.10" > "1.9". Missing trailing
// segments count as zero. Non-numeric segments compare as zero.
func CompareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < max(len(as), len(bs)); i++ {
		x, y := segment(as, i), segment(bs, i)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

func segment(segs []string, i int) uint64 {
	if i >= len(segs) {
		return 0
	}
	n, err := strconv.ParseUint(segs[i], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
