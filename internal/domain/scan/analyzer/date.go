package analyzer

import (
	"regexp"
	"strconv"
	"time"
)

type dateKind int

const (
	kindDMY dateKind = iota
	kindYMD
	kindDMY2
)

type datePattern struct {
	re   *regexp.Regexp
	kind dateKind
}

// datePatterns in precedence order. The four-digit-year forms go first so a
// two-digit-year pattern never bites off part of a full date. The verbal form
// accepts both accented and OCR-stripped spellings and needs an explicit year,
// either "năm YYYY" or ", YYYY"; a year-less "5 tháng 2" is not a date hit and
// the caller falls back to today.
var datePatterns = []datePattern{
	{regexp.MustCompile(`(\d{4})[/\-.](\d{1,2})[/\-.](\d{1,2})`), kindYMD},
	{regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`), kindDMY},
	{regexp.MustCompile(`(?:ngày|ngay)?\s*(\d{1,2})\s*(?:tháng|thang)\s*(\d{1,2})\s*(?:(?:năm|nam)\s*|[,.]\s*)(\d{4})`), kindDMY},
	{regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2})\b`), kindDMY2},
}

// extractDate finds the first calendar-valid date in the text and returns it
// as YYYY-MM-DD. The boolean reports whether a date was actually present.
func (a *Analyzer) extractDate(normalized string) (string, bool) {
	for _, p := range datePatterns {
		for _, sub := range p.re.FindAllStringSubmatch(normalized, -1) {
			var day, month, year int
			switch p.kind {
			case kindYMD:
				year = atoi(sub[1])
				month = atoi(sub[2])
				day = atoi(sub[3])
			case kindDMY:
				day = atoi(sub[1])
				month = atoi(sub[2])
				year = atoi(sub[3])
			case kindDMY2:
				day = atoi(sub[1])
				month = atoi(sub[2])
				yy := atoi(sub[3])
				if yy < 50 {
					year = 2000 + yy
				} else {
					year = 1900 + yy
				}
			}
			if t, ok := a.validDate(year, month, day); ok {
				return t.Format("2006-01-02"), true
			}
		}
	}
	return "", false
}

// validDate checks ranges, calendar validity (time.Date normalizes Feb 30
// into March, which a round-trip comparison catches) and rejects dates more
// than a year ahead.
func (a *Analyzer) validDate(year, month, day int) (time.Time, bool) {
	now := a.cfg.Now()
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	if year < 2000 || year > now.Year()+1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	if t.After(now.AddDate(1, 0, 0)) {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
