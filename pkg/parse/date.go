package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	daysAgoRE   = regexp.MustCompile(`(\d+)\s*hari\s*(?:yang\s*)?lalu`)
	daysAheadRE = regexp.MustCompile(`(\d+)\s*hari\s*(?:lagi|ke\s*depan)`)
	tanggalRE   = regexp.MustCompile(`tanggal\s*(\d{1,2})`)
)

// ResolveDate scans for relative-date phrases in priority order and resolves
// them against ref. "tanggal <D>" picks the most recent occurrence of that
// day-of-month: a day greater than today's rolls back one month. No phrase
// means today. Only the date portion is meaningful; the caller assigns the
// wall-clock time at persist.
func ResolveDate(text string, ref time.Time) time.Time {
	low := strings.ToLower(text)

	switch {
	case strings.Contains(low, "kemarin lusa") || strings.Contains(low, "dua hari lalu"):
		return ref.AddDate(0, 0, -2)
	case strings.Contains(low, "kemarin"):
		return ref.AddDate(0, 0, -1)
	case strings.Contains(low, "besok"):
		return ref.AddDate(0, 0, 1)
	case strings.Contains(low, "lusa"):
		return ref.AddDate(0, 0, 2)
	}

	if m := daysAgoRE.FindStringSubmatch(low); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return ref.AddDate(0, 0, -n)
		}
	}
	if m := daysAheadRE.FindStringSubmatch(low); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return ref.AddDate(0, 0, n)
		}
	}

	if m := tanggalRE.FindStringSubmatch(low); m != nil {
		if day, err := strconv.Atoi(m[1]); err == nil && day >= 1 && day <= 31 {
			base := ref
			if day > ref.Day() {
				base = base.AddDate(0, -1, 0)
			}
			return time.Date(base.Year(), base.Month(), day,
				ref.Hour(), ref.Minute(), ref.Second(), 0, ref.Location())
		}
	}

	return ref
}
