package parser

import (
	"regexp"
	"strings"
	"time"
)

var (
	isoDate       = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	numericDate   = regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{4}|\d{2})\b`)
	monthNameDate = regexp.MustCompile(`(?i)\b(\d{1,2})[- ]?(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?(?:[- ,]+(\d{4}|\d{2}))?\b`)
)

// findDate returns the first date found in text. Numeric dates are read
// day first. Dates without a year are placed in the most recent year that
// does not put them in the future.
func findDate(text string, now time.Time) (time.Time, bool) {
	loc := now.Location()

	if m := isoDate.FindStringSubmatch(text); m != nil {
		if t, err := time.ParseInLocation("2006-01-02", m[1], loc); err == nil {
			return t, true
		}
	}

	if m := numericDate.FindStringSubmatch(text); m != nil {
		layout := "2-1-2006"
		if len(m[3]) == 2 {
			layout = "2-1-06"
		}

		if t, err := time.ParseInLocation(layout, m[1]+"-"+m[2]+"-"+m[3], loc); err == nil {
			return t, true
		}
	}

	if m := monthNameDate.FindStringSubmatch(text); m != nil {
		month := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:])

		switch len(m[3]) {
		case 4:
			if t, err := time.ParseInLocation("2-Jan-2006", m[1]+"-"+month+"-"+m[3], loc); err == nil {
				return t, true
			}
		case 2:
			if t, err := time.ParseInLocation("2-Jan-06", m[1]+"-"+month+"-"+m[3], loc); err == nil {
				return t, true
			}
		default:
			t, err := time.ParseInLocation("2-Jan-2006", m[1]+"-"+month+"-"+now.Format("2006"), loc)
			if err != nil {
				break
			}

			if t.After(now) {
				t = t.AddDate(-1, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}
