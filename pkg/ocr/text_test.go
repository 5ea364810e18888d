package ocr

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"INDOMARET\nTOTAL\tRp 25.000\n", "INDOMARET TOTAL Rp 25.000"},
		{"  a   b  \n c ", "a b c"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizeText(c.in); got != c.want {
			t.Errorf("normalizeText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLooksLikeNonReceipt(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"LOGO", true},
		{"warung makan", true},
		{"", false}, // empty is an OCR failure, not a logo
		{"TOTAL Rp 25.000", false},
		{"a long run of words that clearly came from a dense receipt body", false},
	}
	for _, c := range cases {
		if got := LooksLikeNonReceipt(c.in); got != c.want {
			t.Errorf("LooksLikeNonReceipt(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
