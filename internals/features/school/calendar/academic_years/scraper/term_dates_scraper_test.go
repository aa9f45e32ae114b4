// file: internals/features/school/calendar/academic_years/scraper/term_dates_scraper_test.go
package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const mainPage = `<!doctype html>
<html><body>
<main>
<h1>Term dates</h1>
<p>Last updated 12 July 2025</p>
<h2>2025 Queensland term dates</h2>
<p>Term 1: Tuesday 28 January to Friday 4 April — 10 weeks</p>
<p>Term 2: Tuesday 22 April to Friday 27 June — 10 weeks</p>
<p>Term 3: Monday 14 July to Friday 19 September — 10 weeks</p>
<p>Term 4: Tuesday 7 October to Friday 12 December — 10 weeks</p>
<h2>School holidays</h2>
<p>Term 1 holidays: 5 April to 21 April</p>
<a href="/future">Future school dates</a>
</main>
</body></html>`

const futurePage = `<!doctype html>
<html><body>
<h1>Future school dates</h1>
<p>Last updated 1 August 2025</p>
<h2>2026 Queensland term dates</h2>
<p>Term 1: Tuesday 27 January to Thursday 2 April — 10 weeks</p>
<p>Term 2: Monday 20 April to Friday 26 June — 10 weeks</p>
</body></html>`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mainPage))
	})
	mux.HandleFunc("/future", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(futurePage))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScrapeExtractsYearsAndFollowsFutureLink(t *testing.T) {
	srv := newFixtureServer(t)

	s := New(srv.URL, 5*time.Second)
	res, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}

	if res.Source != srv.URL {
		t.Fatalf("source = %s", res.Source)
	}
	if len(res.Years) != 2 {
		t.Fatalf("expected years [2025 2026], got %+v", res.Years)
	}
	if res.Years[0].Year != 2025 || res.Years[1].Year != 2026 {
		t.Fatalf("year order %d,%d", res.Years[0].Year, res.Years[1].Year)
	}

	terms25 := res.TermsFor(2025)
	if len(terms25) != 4 {
		t.Fatalf("2025: expected 4 terms, got %d", len(terms25))
	}
	if *terms25[0].StartDate != "2025-01-28" {
		t.Fatalf("2025 term 1 start = %s", *terms25[0].StartDate)
	}
	if *terms25[3].EndDate != "2025-12-12" {
		t.Fatalf("2025 term 4 end = %s", *terms25[3].EndDate)
	}

	terms26 := res.TermsFor(2026)
	if len(terms26) != 2 {
		t.Fatalf("2026: expected 2 terms, got %d", len(terms26))
	}
	if *terms26[0].StartDate != "2026-01-27" {
		t.Fatalf("2026 term 1 start = %s", *terms26[0].StartDate)
	}
}

func TestScrapeHolidayLinesExcluded(t *testing.T) {
	srv := newFixtureServer(t)

	s := New(srv.URL, 5*time.Second)
	res, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	for _, term := range res.TermsFor(2025) {
		if term.Raw == "" {
			continue
		}
		if strings.Contains(strings.ToLower(term.Raw), "holiday") {
			t.Fatalf("holiday line leaked into terms: %q", term.Raw)
		}
	}
}

func TestScrapeTakesLatestLastUpdated(t *testing.T) {
	srv := newFixtureServer(t)

	s := New(srv.URL, 5*time.Second)
	res, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if res.LastUpdated == nil || *res.LastUpdated != "2025-08-01" {
		t.Fatalf("last updated = %v", res.LastUpdated)
	}
}

func TestScrapeNoTermLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h2>2025</h2><p>Nothing here yet.</p></body></html>`))
	}))
	defer srv.Close()

	s := New(srv.URL, 5*time.Second)
	res, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if len(res.Years) != 0 {
		t.Fatalf("expected no years, got %+v", res.Years)
	}
}

func TestScrapeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := New(srv.URL, 5*time.Second)
	if _, err := s.Scrape(context.Background()); err == nil {
		t.Fatal("expected error on HTTP 503")
	}
}

func TestResultTermsForUnknownYear(t *testing.T) {
	res := &Result{}
	if got := res.TermsFor(2030); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
