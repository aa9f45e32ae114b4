// file: internals/features/school/calendar/academic_years/scraper/term_dates_scraper.go
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofiber/fiber/v2"

	"classtrack_backend/internals/features/school/calendar/academic_years/parser"
)

// YearTerms is one calendar year's worth of parsed term lines.
type YearTerms struct {
	Year  int                 `json:"year"`
	Terms []parser.TermRecord `json:"terms"`
}

// Result is the full scrape output. Years are sorted ascending; LastUpdated
// is the page's own "Last updated" stamp when one could be read.
type Result struct {
	Source      string      `json:"source"`
	LastUpdated *string     `json:"last_updated"`
	Years       []YearTerms `json:"years"`
}

// TermsFor returns the terms for one year, or nil when the scrape did not
// cover it.
func (r *Result) TermsFor(year int) []parser.TermRecord {
	for _, y := range r.Years {
		if y.Year == year {
			return y.Terms
		}
	}
	return nil
}

const userAgent = "Mozilla/5.0 (compatible; ClassTrackTermDatesBot/1.0)"

const headingSel = "h1, h2, h3, h4, h5, h6"

var (
	yearRe        = regexp.MustCompile(`\b(20[0-9]{2})\b`)
	lastUpdatedRe = regexp.MustCompile(`(?i)Last updated\s+([0-9]{1,2}\s+[A-Za-z]+\s+[0-9]{4})`)
)

// Section titles that end a term-dates block even mid-page.
var stopSectionTitles = []string{
	"staff professional development days",
	"school holidays",
}

// TermDatesScraper fetches the public term-dates page, follows the "Future
// school dates" and "Past school dates" links when present, and extracts
// the Terms 1-4 lines per year heading.
type TermDatesScraper struct {
	client  *http.Client
	baseURL string
}

func New(baseURL string, timeout time.Duration) *TermDatesScraper {
	return &TermDatesScraper{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Scrape walks the main page plus its related future/past pages and merges
// everything into one Result. A page that loads but contains no recognizable
// term lines yields an empty Years slice, not an error; transport and HTTP
// status failures come back as 502-coded fiber errors.
func (s *TermDatesScraper) Scrape(ctx context.Context) (*Result, error) {
	mainDoc, err := s.fetch(ctx, s.baseURL)
	if err != nil {
		return nil, err
	}

	lastUpdated := extractLastUpdated(mainDoc)
	yearsAll := extractYears(mainDoc)

	for _, link := range relatedLinks(mainDoc, s.baseURL) {
		doc, err := s.fetch(ctx, link)
		if err != nil {
			// Related pages are best-effort; the main page already loaded.
			continue
		}
		if lu := extractLastUpdated(doc); lu != nil && (lastUpdated == nil || *lu > *lastUpdated) {
			lastUpdated = lu
		}
		for year, terms := range extractYears(doc) {
			yearsAll[year] = terms
		}
	}

	res := &Result{Source: s.baseURL, LastUpdated: lastUpdated}
	for year, terms := range yearsAll {
		res.Years = append(res.Years, YearTerms{Year: year, Terms: terms})
	}
	sort.Slice(res.Years, func(i, j int) bool { return res.Years[i].Year < res.Years[j].Year })
	return res, nil
}

func (s *TermDatesScraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "term dates source unreachable: "+err.Error())
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "term dates source unreachable: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fiber.NewError(fiber.StatusBadGateway,
			fmt.Sprintf("term dates source returned HTTP %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "term dates page unreadable: "+err.Error())
	}
	return doc, nil
}

// extractYears finds every heading carrying a 20xx year and parses the
// block of content that follows it. Falls back to a whole-page parse with
// the first year on the page when no heading yields terms.
func extractYears(doc *goquery.Document) map[int][]parser.TermRecord {
	years := make(map[int][]parser.TermRecord)

	doc.Find(headingSel).Each(func(_ int, h *goquery.Selection) {
		year, ok := headingYear(h.Text())
		if !ok {
			return
		}
		block := sectionText(anchorFor(h))
		terms := parser.NormalizeTerms(parser.ParseTerms(block, year), year)
		if len(terms) > 0 {
			years[year] = terms
		}
	})

	if len(years) == 0 {
		full := doc.Text()
		if m := yearRe.FindStringSubmatch(full); m != nil {
			year, _ := strconv.Atoi(m[1])
			if terms := parser.NormalizeTerms(parser.ParseTerms(full, year), year); len(terms) > 0 {
				years[year] = terms
			}
		}
	}
	return years
}

// anchorFor prefers the "Queensland term dates" subheading inside a year's
// section over the year heading itself, when one exists before the next
// year heading.
func anchorFor(yearHeading *goquery.Selection) *goquery.Selection {
	for sib := yearHeading.Next(); sib.Length() > 0; sib = sib.Next() {
		if !sib.Is(headingSel) {
			continue
		}
		title := strings.ToLower(strings.TrimSpace(sib.Text()))
		if yearRe.MatchString(title) {
			break
		}
		if strings.Contains(title, "queensland term dates") {
			return sib
		}
	}
	return yearHeading
}

// sectionText gathers sibling text after the anchor, stopping at the next
// heading that is not itself a term-dates heading or that opens a stop
// section (holidays, PD days).
func sectionText(anchor *goquery.Selection) string {
	var b strings.Builder
	for sib := anchor.Next(); sib.Length() > 0; sib = sib.Next() {
		if sib.Is(headingSel) {
			title := strings.ToLower(strings.TrimSpace(sib.Text()))
			if isStopSection(title) || !strings.Contains(title, "queensland term dates") {
				break
			}
			continue
		}
		if t := strings.TrimSpace(sib.Text()); t != "" {
			b.WriteString(t)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func isStopSection(title string) bool {
	for _, stop := range stopSectionTitles {
		if strings.Contains(title, stop) {
			return true
		}
	}
	return false
}

func headingYear(text string) (int, bool) {
	m := yearRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// extractLastUpdated reads the page's "Last updated 12 July 2025" stamp as
// an ISO date.
func extractLastUpdated(doc *goquery.Document) *string {
	m := lastUpdatedRe.FindStringSubmatch(doc.Text())
	if m == nil {
		return nil
	}
	parsed, err := time.Parse("2 January 2006", m[1])
	if err != nil {
		return nil
	}
	iso := parsed.Format("2006-01-02")
	return &iso
}

// relatedLinks collects the future/past school dates links off the main
// page, resolved against it.
func relatedLinks(doc *goquery.Document, base string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		if !strings.Contains(text, "future school dates") &&
			!strings.Contains(text, "past school dates") &&
			!strings.Contains(text, "previous school dates") {
			return
		}
		href, _ := a.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := baseURL.ResolveReference(ref).String()
		if !seen[resolved] && resolved != base {
			seen[resolved] = true
			out = append(out, resolved)
		}
	})
	return out
}
