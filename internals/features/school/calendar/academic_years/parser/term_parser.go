// file: internals/features/school/calendar/academic_years/parser/term_parser.go
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// TermRecord is one parsed "Term N: ... to ... — W weeks" line. Dates are
// ISO strings (or nil when the line carried no parseable date) so the
// record round-trips through the staging JSON unchanged.
type TermRecord struct {
	Number    int     `json:"number"`
	Name      string  `json:"name,omitempty"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Weeks     *int    `json:"weeks"`
	Raw       string  `json:"raw,omitempty"`
}

// Dated reports whether both dates are populated.
func (t TermRecord) Dated() bool { return t.StartDate != nil && t.EndDate != nil }

var months = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// Term line shape, e.g.
//
//	Term 1: Tuesday 28 January to Friday 4 April — 10 weeks
//
// Weekday tokens are optional and ignored. The separator before the week
// count may be an em-dash, en-dash, hyphen, or missing. An explicit 4-digit
// year after a date overrides the caller's year (cross-year Term 4 lines).
var termLineRe = regexp.MustCompile(`(?is)` +
	`Term\s*([1-4])\s*:\s*` +
	`(?:(?:Mon|Tue|Wed|Thu|Thur|Fri|Sat|Sun)[a-z]*\s+)?(\d{1,2})\s+([A-Za-z]+)(?:\s+(\d{4}))?` +
	`\s+to\s+` +
	`(?:(?:Mon|Tue|Wed|Thu|Thur|Fri|Sat|Sun)[a-z]*\s+)?(\d{1,2})\s+([A-Za-z]+)(?:\s+(\d{4}))?` +
	`\s*[—–-]?\s*(\d+)\s*weeks?`)

var (
	nbspRe      = regexp.MustCompile(`\x{00A0}`)
	zeroWidthRe = regexp.MustCompile(`[\x{200B}\x{200C}\x{200D}\x{2060}\x{FEFF}]`)
	// "Term 2: Term 2:" repeats caused by nested markup
	dupTermRe = regexp.MustCompile(`(?i)(Term\s+[1-4]\s*:\s*)(?:Term\s+[1-4]\s*:\s*)+`)
)

// CleanText normalizes scraped text before matching: NBSP and zero-width
// characters go away, "--" becomes an em-dash, and stuttered "Term N:"
// prefixes collapse to one.
func CleanText(text string) string {
	text = nbspRe.ReplaceAllString(text, " ")
	text = zeroWidthRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "--", "—")
	text = dupTermRe.ReplaceAllString(text, "$1")
	return text
}

// ParseTerms extracts every term line from raw text for the given calendar
// year. A match whose month name is unknown is dropped silently and parsing
// continues; zero matches yields an empty slice, which callers must treat
// as "year not configured", not as an error. Pure function.
func ParseTerms(raw string, year int) []TermRecord {
	hay := CleanText(raw)

	var out []TermRecord
	for _, m := range termLineRe.FindAllStringSubmatch(hay, -1) {
		num, _ := strconv.Atoi(m[1])

		start, ok := isoDate(year, m[2], m[3], m[4])
		if !ok {
			continue
		}
		end, ok := isoDate(year, m[5], m[6], m[7])
		if !ok {
			continue
		}
		weeks, _ := strconv.Atoi(m[8])

		out = append(out, TermRecord{
			Number:    num,
			Name:      fmt.Sprintf("Term %d", num),
			StartDate: &start,
			EndDate:   &end,
			Weeks:     &weeks,
			Raw:       strings.TrimSpace(m[0]),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// NormalizeTerms repairs records coming from an upstream source: an entry
// whose raw text holds several concatenated "Term N:" lines, or which lacks
// a start date, is re-split by re-running extraction on its raw field. The
// result is then deduplicated by term number — a fully dated record wins
// over one missing either date — sorted by number, and given default names.
func NormalizeTerms(records []TermRecord, year int) []TermRecord {
	var normalized []TermRecord
	for _, t := range records {
		raw := strings.TrimSpace(t.Raw)
		needsSplit := t.StartDate == nil || strings.Count(strings.ToLower(raw), "term ") > 1
		if needsSplit && raw != "" {
			if found := ParseTerms(raw, year); len(found) > 0 {
				normalized = append(normalized, found...)
				continue
			}
		}
		normalized = append(normalized, t)
	}

	byNum := make(map[int]TermRecord, 4)
	for _, t := range normalized {
		if t.Number == 0 {
			continue
		}
		cur, seen := byNum[t.Number]
		if !seen || (t.Dated() && !cur.Dated()) {
			byNum[t.Number] = t
		}
	}

	out := make([]TermRecord, 0, len(byNum))
	for _, t := range byNum {
		if t.Name == "" {
			t.Name = fmt.Sprintf("Term %d", t.Number)
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// isoDate combines day/month tokens with the context year into YYYY-MM-DD.
// An explicit year token in the text wins. Unknown month ⇒ ok=false.
func isoDate(year int, dayStr, monthStr, yearStr string) (string, bool) {
	month, ok := months[strings.ToLower(strings.TrimSpace(monthStr))]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return "", false
	}
	if yearStr != "" {
		if y, err := strconv.Atoi(yearStr); err == nil {
			year = y
		}
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
