// file: internals/features/school/calendar/academic_years/parser/term_parser_test.go
package parser

import (
	"strings"
	"testing"
)

const qldSample = `
Term 1: Tuesday 28 January to Friday 4 April — 10 weeks
Term 2: Tuesday 22 April to Friday 27 June — 10 weeks
Term 3: Monday 14 July to Friday 19 September — 10 weeks
Term 4: Tuesday 7 October to Friday 12 December — 10 weeks
`

func TestParseTermsFullYear(t *testing.T) {
	got := ParseTerms(qldSample, 2025)
	if len(got) != 4 {
		t.Fatalf("expected 4 terms, got %d", len(got))
	}
	for i, tr := range got {
		if tr.Number != i+1 {
			t.Fatalf("term %d: number = %d", i, tr.Number)
		}
		if !tr.Dated() {
			t.Fatalf("term %d: missing dates", tr.Number)
		}
		if tr.Weeks == nil || *tr.Weeks != 10 {
			t.Fatalf("term %d: weeks = %v", tr.Number, tr.Weeks)
		}
	}
	if *got[0].StartDate != "2025-01-28" {
		t.Fatalf("term 1 start = %s", *got[0].StartDate)
	}
	if *got[3].EndDate != "2025-12-12" {
		t.Fatalf("term 4 end = %s", *got[3].EndDate)
	}
}

func TestParseTermsDashVariants(t *testing.T) {
	cases := []string{
		"Term 1: 28 January to 4 April — 10 weeks",
		"Term 1: 28 January to 4 April – 10 weeks",
		"Term 1: 28 January to 4 April - 10 weeks",
		"Term 1: 28 January to 4 April 10 weeks",
		"Term 1: 28 January to 4 April -- 10 weeks",
	}
	for _, src := range cases {
		got := ParseTerms(src, 2025)
		if len(got) != 1 {
			t.Fatalf("%q: expected 1 term, got %d", src, len(got))
		}
		if *got[0].StartDate != "2025-01-28" || *got[0].EndDate != "2025-04-04" {
			t.Fatalf("%q: dates %s..%s", src, *got[0].StartDate, *got[0].EndDate)
		}
	}
}

func TestParseTermsWithoutWeekdays(t *testing.T) {
	got := ParseTerms("Term 2: 22 April to 27 June — 10 weeks", 2025)
	if len(got) != 1 || got[0].Number != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseTermsCaseInsensitive(t *testing.T) {
	got := ParseTerms("TERM 3: monday 14 JULY to friday 19 september — 10 WEEKS", 2025)
	if len(got) != 1 {
		t.Fatalf("expected 1 term, got %d", len(got))
	}
	if *got[0].StartDate != "2025-07-14" {
		t.Fatalf("start = %s", *got[0].StartDate)
	}
}

func TestParseTermsUnknownMonthDropped(t *testing.T) {
	src := `
Term 1: 28 Januerry to 4 April — 10 weeks
Term 2: 22 April to 27 June — 10 weeks
`
	got := ParseTerms(src, 2025)
	if len(got) != 1 {
		t.Fatalf("expected malformed term dropped, got %d records", len(got))
	}
	if got[0].Number != 2 {
		t.Fatalf("surviving term = %d", got[0].Number)
	}
}

func TestParseTermsExplicitYearOverrides(t *testing.T) {
	got := ParseTerms("Term 4: 7 October 2025 to 12 December 2025 — 10 weeks", 2026)
	if len(got) != 1 {
		t.Fatalf("expected 1 term, got %d", len(got))
	}
	if *got[0].StartDate != "2025-10-07" || *got[0].EndDate != "2025-12-12" {
		t.Fatalf("dates %s..%s", *got[0].StartDate, *got[0].EndDate)
	}
}

func TestParseTermsNoMatches(t *testing.T) {
	got := ParseTerms("School holidays run all year round.", 2025)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestCleanTextNormalization(t *testing.T) {
	dirty := "Term 1:\u200b Term\u00a01: 28 January to 4 April -- 10 weeks"
	cleaned := CleanText(dirty)
	if strings.Contains(cleaned, "\u00a0") || strings.Contains(cleaned, "\u200b") {
		t.Fatalf("control characters survived: %q", cleaned)
	}
	if strings.Count(cleaned, "Term 1:") != 1 {
		t.Fatalf("stuttered prefix not collapsed: %q", cleaned)
	}
	got := ParseTerms(dirty, 2025)
	if len(got) != 1 {
		t.Fatalf("dirty input: expected 1 term, got %d", len(got))
	}
}

func TestNormalizeTermsSplitsConcatenatedRaw(t *testing.T) {
	in := []TermRecord{{
		Number: 1,
		Raw:    "Term 1: 28 January to 4 April — 10 weeks Term 2: 22 April to 27 June — 10 weeks",
	}}
	got := NormalizeTerms(in, 2025)
	if len(got) != 2 {
		t.Fatalf("expected split into 2 terms, got %d", len(got))
	}
	if got[0].Number != 1 || got[1].Number != 2 {
		t.Fatalf("numbers %d,%d", got[0].Number, got[1].Number)
	}
	if !got[0].Dated() || !got[1].Dated() {
		t.Fatalf("split records missing dates: %+v", got)
	}
}

func TestNormalizeTermsDedupPrefersDated(t *testing.T) {
	start, end := "2025-04-22", "2025-06-27"
	weeks := 10
	in := []TermRecord{
		{Number: 2, Raw: "Term 2: dates to be advised"},
		{Number: 2, StartDate: &start, EndDate: &end, Weeks: &weeks, Raw: "Term 2: 22 April to 27 June — 10 weeks"},
	}
	got := NormalizeTerms(in, 2025)
	if len(got) != 1 {
		t.Fatalf("expected 1 deduplicated term, got %d", len(got))
	}
	if !got[0].Dated() {
		t.Fatalf("dedup kept the undated record: %+v", got[0])
	}
}

func TestNormalizeTermsDedupKeepsFirstWhenEqual(t *testing.T) {
	s1, e1 := "2025-01-28", "2025-04-04"
	s2, e2 := "2025-01-29", "2025-04-05"
	in := []TermRecord{
		{Number: 1, StartDate: &s1, EndDate: &e1, Raw: "Term 1: 28 January to 4 April — 10 weeks"},
		{Number: 1, StartDate: &s2, EndDate: &e2, Raw: "Term 1: 29 January to 5 April — 10 weeks"},
	}
	got := NormalizeTerms(in, 2025)
	if len(got) != 1 {
		t.Fatalf("expected 1 term, got %d", len(got))
	}
	if *got[0].StartDate != s1 {
		t.Fatalf("expected first record kept, got start %s", *got[0].StartDate)
	}
}

func TestNormalizeTermsFillsDefaultName(t *testing.T) {
	start, end := "2025-01-28", "2025-04-04"
	in := []TermRecord{{Number: 1, StartDate: &start, EndDate: &end, Raw: "Term 1: 28 January to 4 April — 10 weeks"}}
	got := NormalizeTerms(in, 2025)
	if len(got) != 1 || got[0].Name != "Term 1" {
		t.Fatalf("got %+v", got)
	}
}

func TestNormalizeTermsSkipsZeroNumber(t *testing.T) {
	in := []TermRecord{{Number: 0, Raw: "holiday block"}}
	if got := NormalizeTerms(in, 2025); len(got) != 0 {
		t.Fatalf("expected zero-number record dropped, got %d", len(got))
	}
}
