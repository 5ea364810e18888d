package parse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultDescription fills in when cleanup leaves nothing behind.
const DefaultDescription = "Transaksi"

// Filler and action words stripped from descriptions; they carry no meaning
// once amount, type, and date are extracted.
var fillerWords = []string{
	"beli", "bayar", "untuk", "dapat", "terima",
	"rp", "rupiah", "seharga", "habis", "keluar",
}

// Date-indicator words, removed because the date resolver already consumed
// their meaning.
var dateWords = []string{"kemarin", "hari ini", "lusa", "minggu lalu", "tanggal"}

var (
	removeWordREs = compileWordList(append(append([]string{}, fillerWords...), dateWords...))
	digitTokenRE  = regexp.MustCompile(`\b\d+\b`)
)

func compileWordList(words []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return res
}

// CleanDescription removes the matched amount substring, filler and
// date-indicator words, and any standalone digit tokens, then collapses
// whitespace and capitalizes the first letter. An empty result falls back to
// DefaultDescription.
func CleanDescription(text, amountRaw string) string {
	out := text
	if amountRaw != "" {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(amountRaw))
		if err == nil {
			out = re.ReplaceAllString(out, " ")
		}
	}
	for _, re := range removeWordREs {
		out = re.ReplaceAllString(out, " ")
	}
	out = digitTokenRE.ReplaceAllString(out, " ")
	out = strings.Join(strings.Fields(out), " ")
	out = capitalize(out)
	if out == "" {
		return DefaultDescription
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
