package typeans

import (
	"regexp"
	"strconv"
	"strings"
)

// clozePattern builds a matcher for one cloze index. The index is part
// of the pattern text, so a fresh matcher is compiled per call.
func clozePattern(index int) *regexp.Regexp {
	return regexp.MustCompile(`\{\{c` + strconv.Itoa(index) + `::(.+?)\}\}`)
}

// ClozeAlternatives extracts the answer text for one cloze index from a
// field's raw value. A display hint after "::" inside a deletion is
// dropped. When every deletion for the index holds the same text, that
// text is returned alone; otherwise every capture is joined with ", "
// in match order, duplicates included. No matches yields an empty
// string, which callers treat like an empty field.
func ClozeAlternatives(fieldText string, index int) string {
	matches := clozePattern(index).FindAllStringSubmatch(fieldText, -1)
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		v := m[1]
		if i := strings.Index(v, "::"); i >= 0 {
			v = v[:i]
		}
		values = append(values, v)
	}

	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	if len(distinct) == 1 {
		return values[0]
	}
	return strings.Join(values, ", ")
}
