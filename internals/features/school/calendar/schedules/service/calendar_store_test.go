// file: internals/features/school/calendar/schedules/service/calendar_store_test.go
package service

import (
	"context"
	"errors"
	"testing"

	yearModel "classtrack_backend/internals/features/school/calendar/academic_years/model"
	courseModel "classtrack_backend/internals/features/school/courses/model"
)

func datedTerm(t *testing.T, number int, start, end string) yearModel.AcademicTermModel {
	t.Helper()
	s := mustDate(t, start)
	e := mustDate(t, end)
	return yearModel.AcademicTermModel{
		AcademicTermNumber:    number,
		AcademicTermStartDate: &s,
		AcademicTermEndDate:   &e,
	}
}

func year2025(t *testing.T) *yearModel.AcademicYearModel {
	t.Helper()
	return &yearModel.AcademicYearModel{
		AcademicYearYear: 2025,
		Terms: []yearModel.AcademicTermModel{
			datedTerm(t, 1, "2025-01-28", "2025-04-04"),
			datedTerm(t, 2, "2025-04-22", "2025-06-27"),
			datedTerm(t, 3, "2025-07-14", "2025-09-19"),
			datedTerm(t, 4, "2025-10-07", "2025-12-12"),
		},
	}
}

func TestSemesterSpan(t *testing.T) {
	ay := year2025(t)

	cases := []struct {
		semester   courseModel.CourseSemester
		start, end string
	}{
		{courseModel.SemesterS1, "2025-01-28", "2025-06-27"},
		{courseModel.SemesterS2, "2025-07-14", "2025-12-12"},
		{courseModel.SemesterFull, "2025-01-28", "2025-12-12"},
	}
	for _, tc := range cases {
		start, end, err := SemesterSpan(ay, tc.semester)
		if err != nil {
			t.Fatalf("%s: %v", tc.semester, err)
		}
		if start.Format("2006-01-02") != tc.start || end.Format("2006-01-02") != tc.end {
			t.Fatalf("%s: span %s..%s", tc.semester,
				start.Format("2006-01-02"), end.Format("2006-01-02"))
		}
	}
}

func TestSemesterSpanMissingTerm(t *testing.T) {
	ay := &yearModel.AcademicYearModel{
		Terms: []yearModel.AcademicTermModel{
			datedTerm(t, 1, "2025-01-28", "2025-04-04"),
		},
	}
	if _, _, err := SemesterSpan(ay, courseModel.SemesterS1); !errors.Is(err, ErrTermDatesMissing) {
		t.Fatalf("expected ErrTermDatesMissing, got %v", err)
	}
}

func TestSemesterSpanUndatedBoundary(t *testing.T) {
	undated := yearModel.AcademicTermModel{AcademicTermNumber: 4}
	ay := &yearModel.AcademicYearModel{
		Terms: []yearModel.AcademicTermModel{
			datedTerm(t, 3, "2025-07-14", "2025-09-19"),
			undated,
		},
	}
	if _, _, err := SemesterSpan(ay, courseModel.SemesterS2); !errors.Is(err, ErrTermDatesMissing) {
		t.Fatalf("expected ErrTermDatesMissing, got %v", err)
	}
}

func TestWhichTermForDate(t *testing.T) {
	ay := year2025(t)

	if term := WhichTermForDate(ay, mustDate(t, "2025-02-10")); term == nil || term.AcademicTermNumber != 1 {
		t.Fatalf("2025-02-10 → %+v", term)
	}
	// Inclusive boundaries.
	if term := WhichTermForDate(ay, mustDate(t, "2025-04-22")); term == nil || term.AcademicTermNumber != 2 {
		t.Fatalf("term 2 start day → %+v", term)
	}
	if term := WhichTermForDate(ay, mustDate(t, "2025-12-12")); term == nil || term.AcademicTermNumber != 4 {
		t.Fatalf("term 4 end day → %+v", term)
	}
	// Holiday gap.
	if term := WhichTermForDate(ay, mustDate(t, "2025-04-10")); term != nil {
		t.Fatalf("holiday date matched term %d", term.AcademicTermNumber)
	}
}

func TestWeekOfTerm(t *testing.T) {
	term := datedTerm(t, 1, "2025-01-28", "2025-04-04")

	cases := []struct {
		date string
		week int
	}{
		{"2025-01-28", 1}, // day 0
		{"2025-02-03", 1}, // day 6
		{"2025-02-04", 2}, // day 7
		{"2025-02-11", 3},
		{"2025-04-04", 10},
	}
	for _, tc := range cases {
		if got := WeekOfTerm(&term, mustDate(t, tc.date)); got != tc.week {
			t.Fatalf("%s: week = %d, want %d", tc.date, got, tc.week)
		}
	}
}

func TestSchoolDay(t *testing.T) {
	// 2025-01-27 is a Monday.
	monday := mustDate(t, "2025-01-27")
	for i := 0; i < 7; i++ {
		if got := SchoolDay(monday.AddDate(0, 0, i)); got != i {
			t.Fatalf("offset %d: day = %d", i, got)
		}
	}
}

func TestEnsureYearHasTerms(t *testing.T) {
	db := newTestDB(t)
	seedYear(t, db, 2025, [][2]string{
		{"2025-01-28", "2025-04-04"},
		{"2025-04-22", "2025-06-27"},
	})

	store := NewCalendarStore(db)
	ctx := context.Background()

	ok, err := store.EnsureYearHasTerms(ctx, 2025, []int{1, 2})
	if err != nil || !ok {
		t.Fatalf("ok=%t err=%v", ok, err)
	}
	ok, err = store.EnsureYearHasTerms(ctx, 2025, []int{1, 2, 3})
	if err != nil || ok {
		t.Fatalf("missing term 3 reported present (err=%v)", err)
	}
	ok, err = store.EnsureYearHasTerms(ctx, 2030, []int{1})
	if err != nil || ok {
		t.Fatalf("missing year reported present (err=%v)", err)
	}
}

func TestYearForOrdersTerms(t *testing.T) {
	db := newTestDB(t)
	ay := yearModel.AcademicYearModel{AcademicYearYear: 2025}
	if err := db.Create(&ay).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Insert out of order.
	for _, n := range []int{3, 1, 4, 2} {
		s := mustDate(t, "2025-01-01").AddDate(0, n, 0)
		e := s.AddDate(0, 1, 0)
		term := yearModel.AcademicTermModel{
			AcademicTermYearID:    ay.AcademicYearID,
			AcademicTermNumber:    n,
			AcademicTermStartDate: &s,
			AcademicTermEndDate:   &e,
		}
		if err := db.Create(&term).Error; err != nil {
			t.Fatalf("seed term %d: %v", n, err)
		}
	}

	store := NewCalendarStore(db)
	got, err := store.YearFor(context.Background(), 2025)
	if err != nil {
		t.Fatalf("year for: %v", err)
	}
	for i, term := range got.Terms {
		if term.AcademicTermNumber != i+1 {
			t.Fatalf("terms out of order: %+v", got.Terms)
		}
	}
}
