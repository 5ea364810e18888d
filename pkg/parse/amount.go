package parse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Slang tokens mapping to fixed rupiah values. Order matters: the scan stops
// at the first hit, so earlier entries win when a text contains several.
var slangTable = []struct {
	Word  string
	Value int64
	re    *regexp.Regexp
}{
	{Word: "goceng", Value: 5_000},
	{Word: "ceban", Value: 10_000},
	{Word: "noban", Value: 20_000},
	{Word: "goban", Value: 50_000},
	{Word: "gocap", Value: 50_000},
	{Word: "gopek", Value: 500},
	{Word: "seceng", Value: 1_000},
	{Word: "cepek", Value: 100},
	{Word: "sejut", Value: 1_000_000},
	{Word: "jigo", Value: 25_000},
}

func init() {
	for i := range slangTable {
		slangTable[i].re = regexp.MustCompile(`(?i)\b` + slangTable[i].Word + `\b`)
	}
}

var (
	// the head is \d+ rather than \d{1,3} so the pattern still captures the
	// whole number after separator preprocessing has already run
	rpAmountRE   = regexp.MustCompile(`(?i)rp\.?\s*(\d+(?:[.,]\d{3})*(?:[.,]\d{2})?)`)
	ribuAmountRE = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:ribu|rb|k)\b`)
	jutaAmountRE = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:juta|jt)\b`)
	bareNumberRE = regexp.MustCompile(`(?i)(?:rp\.?\s*)?(\d+(?:\.\d+)?)`)
	centsRE      = regexp.MustCompile(`[.,]\d{2}$`)
)

// Keywords for small everyday purchases. A bare number under 1000 next to one
// of these means the speaker dropped the "ribu": "beli kopi 15" is 15.000.
var smallItemRE = regexp.MustCompile(`(?i)\b(makan|nasi|kopi|parkir|bensin|ojek|angkot|geprek|es)\b`)

// ExtractAmount runs the amount passes in strict priority order over already
// preprocessed text and returns the rupiah amount plus the raw substring that
// matched (used by callers to excise it from the description). Passes:
// slang token, Rp-prefixed grouped number, ribu/rb/k suffix, juta/jt suffix,
// bare number with the small-item multiplier gate.
func ExtractAmount(text string) (int64, string, error) {
	for _, s := range slangTable {
		if m := s.re.FindString(text); m != "" {
			return s.Value, m, nil
		}
	}

	if m := rpAmountRE.FindStringSubmatch(text); m != nil {
		amt, err := parseGroupedAmount(m[1])
		if err == nil && amt > 0 {
			return amt, m[0], nil
		}
	}

	if m := ribuAmountRE.FindStringSubmatch(text); m != nil {
		if amt := scaleDecimal(m[1], 1_000); amt > 0 {
			return amt, m[0], nil
		}
	}

	if m := jutaAmountRE.FindStringSubmatch(text); m != nil {
		if amt := scaleDecimal(m[1], 1_000_000); amt > 0 {
			return amt, m[0], nil
		}
	}

	if m := bareNumberRE.FindStringSubmatch(text); m != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			if f < 1000 && smallItemRE.MatchString(text) {
				f *= 1000
			}
			if amt := int64(math.Round(f)); amt > 0 {
				return amt, m[0], nil
			}
		}
	}

	return 0, "", ErrNoAmount
}

// parseGroupedAmount normalizes a grouped number ("1.500.000", "10.000,00")
// to whole rupiah. A trailing two-digit decimal part is dropped, then the
// remaining separators are stripped.
func parseGroupedAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if centsRE.MatchString(s) {
		cut := strings.LastIndexAny(s, ".,")
		s = s[:cut]
	}
	digits := onlyDigits(s)
	if digits == "" {
		return 0, fmt.Errorf("no digits in %q", s)
	}
	return strconv.ParseInt(digits, 10, 64)
}

// scaleDecimal parses a decimal number that may use either "." or "," as the
// decimal mark and multiplies it by factor, rounding to whole rupiah.
func scaleDecimal(num string, factor int64) int64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * float64(factor)))
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
