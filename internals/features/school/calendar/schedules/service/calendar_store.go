// file: internals/features/school/calendar/schedules/service/calendar_store.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearModel "classtrack_backend/internals/features/school/calendar/academic_years/model"
	courseModel "classtrack_backend/internals/features/school/courses/model"
)

// ErrTermDatesMissing signals that a required term exists but carries no
// usable dates, or is absent entirely. Callers route the user back to the
// year configuration workflow on it.
var ErrTermDatesMissing = fiber.NewError(fiber.StatusConflict,
	"term dates for the requested span are not configured")

// CalendarStore is the read side of the academic calendar: which terms a
// year has, which term a date falls into, and the date span a semester
// covers. It never mutates calendar rows.
type CalendarStore interface {
	// YearFor loads the year with its terms ordered by number. Not-found
	// comes back as a 404-coded error.
	YearFor(ctx context.Context, year int) (*yearModel.AcademicYearModel, error)

	// TermsFor returns the year's terms restricted to the given numbers,
	// ordered ascending. Missing numbers are simply absent from the result.
	TermsFor(ctx context.Context, year int, numbers []int) ([]yearModel.AcademicTermModel, error)

	// EnsureYearHasTerms reports whether every needed term number exists
	// for the year. A missing year yields false, not an error.
	EnsureYearHasTerms(ctx context.Context, year int, needed []int) (bool, error)
}

type calendarStore struct {
	db *gorm.DB
}

func NewCalendarStore(db *gorm.DB) CalendarStore {
	return &calendarStore{db: db}
}

func (s *calendarStore) YearFor(ctx context.Context, year int) (*yearModel.AcademicYearModel, error) {
	var ay yearModel.AcademicYearModel
	err := s.db.WithContext(ctx).
		Preload("Terms", func(db *gorm.DB) *gorm.DB {
			return db.Order("academic_term_number ASC")
		}).
		Where("academic_year_year = ?", year).
		Take(&ay).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("academic year %d not configured", year))
	}
	if err != nil {
		return nil, err
	}
	return &ay, nil
}

func (s *calendarStore) TermsFor(ctx context.Context, year int, numbers []int) ([]yearModel.AcademicTermModel, error) {
	var terms []yearModel.AcademicTermModel
	err := s.db.WithContext(ctx).
		Joins("JOIN academic_years ON academic_years.academic_year_id = academic_terms.academic_term_year_id").
		Where("academic_years.academic_year_year = ? AND academic_terms.academic_term_number IN ?", year, numbers).
		Order("academic_terms.academic_term_number ASC").
		Find(&terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func (s *calendarStore) EnsureYearHasTerms(ctx context.Context, year int, needed []int) (bool, error) {
	terms, err := s.TermsFor(ctx, year, needed)
	if err != nil {
		return false, err
	}
	have := make(map[int]bool, len(terms))
	for _, t := range terms {
		have[t.AcademicTermNumber] = true
	}
	for _, n := range needed {
		if !have[n] {
			return false, nil
		}
	}
	return true, nil
}

// ---- pure calendar math ----

// SemesterSpan returns the inclusive date range a semester covers: S1 runs
// term 1 start to term 2 end, S2 term 3 to term 4, FULL term 1 to term 4.
// Undated or missing boundary terms yield ErrTermDatesMissing.
func SemesterSpan(ay *yearModel.AcademicYearModel, semester courseModel.CourseSemester) (time.Time, time.Time, error) {
	byNum := make(map[int]yearModel.AcademicTermModel, len(ay.Terms))
	for _, t := range ay.Terms {
		byNum[t.AcademicTermNumber] = t
	}

	var startNum, endNum int
	switch semester {
	case courseModel.SemesterS1:
		startNum, endNum = 1, 2
	case courseModel.SemesterS2:
		startNum, endNum = 3, 4
	default:
		startNum, endNum = 1, 4
	}

	first, okA := byNum[startNum]
	last, okB := byNum[endNum]
	if !okA || !okB || first.AcademicTermStartDate == nil || last.AcademicTermEndDate == nil {
		return time.Time{}, time.Time{}, ErrTermDatesMissing
	}
	return *first.AcademicTermStartDate, *last.AcademicTermEndDate, nil
}

// WhichTermForDate returns the term whose inclusive range covers d, or nil.
// Undated terms never match.
func WhichTermForDate(ay *yearModel.AcademicYearModel, d time.Time) *yearModel.AcademicTermModel {
	for i := range ay.Terms {
		if ay.Terms[i].Covers(d) {
			return &ay.Terms[i]
		}
	}
	return nil
}

// WeekOfTerm is the 1-based week number of d within the term: days 0-6 are
// week 1, days 7-13 week 2, and so on.
func WeekOfTerm(term *yearModel.AcademicTermModel, d time.Time) int {
	if term.AcademicTermStartDate == nil {
		return 0
	}
	days := int(d.Sub(*term.AcademicTermStartDate).Hours() / 24)
	return days/7 + 1
}

// SchoolDay converts Go's Sunday-first weekday to the Monday=0..Sunday=6
// convention used by weekly patterns.
func SchoolDay(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
