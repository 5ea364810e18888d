package parse

import (
	"regexp"
	"strings"
)

// groupedNumberRE matches Indonesian thousand-separated numbers: grouped
// 3-digit blocks joined by periods (100.000, 1.500.000).
var groupedNumberRE = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+`)

// unitWordRE matches a multiplier unit word immediately following a number.
// When present, the period in the number is a decimal point (2.5 juta), not a
// thousand separator, and must be kept.
var unitWordRE = regexp.MustCompile(`(?i)^\s*(?:ribu|juta|jt|rb|k)\b`)

// PreprocessNumbers strips thousand-separator periods from grouped numbers
// unless the number is followed by a unit word. The disambiguation is per
// occurrence: the same glyph means different things in "100.000" and
// "2.5 juta". RE2 has no lookahead, so the unit word is checked by inspecting
// the text after each match.
func PreprocessNumbers(text string) string {
	locs := groupedNumberRE.FindAllStringIndex(text, -1)
	if locs == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		// reject matches that begin inside a longer word or number
		if start > 0 && isWordByte(text[start-1]) {
			continue
		}
		b.WriteString(text[last:start])
		num := text[start:end]
		if unitWordRE.MatchString(text[end:]) {
			b.WriteString(num) // decimal multiplier, keep the period
		} else {
			b.WriteString(strings.ReplaceAll(num, ".", ""))
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
