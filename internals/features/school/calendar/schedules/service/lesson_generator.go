// file: internals/features/school/calendar/schedules/service/lesson_generator.go
package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	yearModel "classtrack_backend/internals/features/school/calendar/academic_years/model"
	"classtrack_backend/internals/features/school/calendar/schedules/model"
	courseModel "classtrack_backend/internals/features/school/courses/model"
	"classtrack_backend/internals/helpers/dbtime"
)

// LessonGenerator owns weekly pattern persistence and lesson materialization.
// Generation is idempotent: a (course, date) that already has a lesson is
// skipped, whatever its status, so cancelled days are never resurrected.
type LessonGenerator interface {
	// UpsertPatterns writes one active pattern per selected weekday for the
	// course, updating times on existing rows, and deactivates patterns for
	// days no longer selected.
	UpsertPatterns(ctx context.Context, courseID uuid.UUID, days []int, start, end *dbtime.Tod) ([]model.WeeklyPatternModel, error)

	// Generate creates lessons for the course across the given term numbers.
	// An empty termNumbers falls back to the course's semester terms. Returns
	// the number of lessons actually created.
	Generate(ctx context.Context, courseID uuid.UUID, termNumbers []int) (int, error)
}

type lessonGenerator struct {
	db    *gorm.DB
	store CalendarStore
}

func NewLessonGenerator(db *gorm.DB, store CalendarStore) LessonGenerator {
	return &lessonGenerator{db: db, store: store}
}

func (s *lessonGenerator) UpsertPatterns(ctx context.Context, courseID uuid.UUID, days []int, start, end *dbtime.Tod) ([]model.WeeklyPatternModel, error) {
	if len(days) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "choose at least one day of the week")
	}
	selected := make(map[int]bool, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "day_of_week must be between 0 and 6")
		}
		selected[d] = true
	}

	var out []model.WeeklyPatternModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.WeeklyPatternModel
		if err := tx.Where("weekly_pattern_course_id = ?", courseID).
			Find(&existing).Error; err != nil {
			return err
		}
		byDay := make(map[int]*model.WeeklyPatternModel, len(existing))
		for i := range existing {
			byDay[existing[i].WeeklyPatternDayOfWeek] = &existing[i]
		}

		for day := 0; day <= 6; day++ {
			wp, has := byDay[day]
			switch {
			case selected[day]:
				if !has {
					wp = &model.WeeklyPatternModel{
						WeeklyPatternCourseID:  courseID,
						WeeklyPatternDayOfWeek: day,
					}
				}
				wp.WeeklyPatternStartTime = start
				wp.WeeklyPatternEndTime = end
				wp.WeeklyPatternIsActive = true
				if err := tx.Save(wp).Error; err != nil {
					return err
				}
				out = append(out, *wp)
			case has && wp.WeeklyPatternIsActive:
				wp.WeeklyPatternIsActive = false
				if err := tx.Save(wp).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeeklyPatternDayOfWeek < out[j].WeeklyPatternDayOfWeek
	})
	return out, nil
}

func (s *lessonGenerator) Generate(ctx context.Context, courseID uuid.UUID, termNumbers []int) (int, error) {
	var course courseModel.CourseModel
	if err := s.db.WithContext(ctx).Take(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fiber.NewError(fiber.StatusNotFound, "course not found")
		}
		return 0, err
	}

	if len(termNumbers) == 0 {
		termNumbers = course.CourseSemester.TermNumbers()
	}

	ay, err := s.store.YearFor(ctx, course.CourseYear)
	if err != nil {
		return 0, err
	}

	terms, err := requiredTerms(ay, termNumbers)
	if err != nil {
		return 0, err
	}

	var patterns []model.WeeklyPatternModel
	if err := s.db.WithContext(ctx).
		Where("weekly_pattern_course_id = ? AND weekly_pattern_is_active = ?", courseID, true).
		Order("weekly_pattern_day_of_week ASC").
		Find(&patterns).Error; err != nil {
		return 0, err
	}
	if len(patterns) == 0 {
		return 0, nil
	}
	byDay := make(map[int]model.WeeklyPatternModel, len(patterns))
	for _, p := range patterns {
		byDay[p.WeeklyPatternDayOfWeek] = p
	}

	created := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := existingLessonDates(tx, courseID)
		if err != nil {
			return err
		}

		var batch []model.LessonModel
		for _, term := range terms {
			for d := *term.AcademicTermStartDate; !d.After(*term.AcademicTermEndDate); d = d.AddDate(0, 0, 1) {
				wp, active := byDay[SchoolDay(d)]
				if !active {
					continue
				}
				key := d.Format("2006-01-02")
				if existing[key] {
					continue
				}
				existing[key] = true
				batch = append(batch, model.LessonModel{
					LessonCourseID:   courseID,
					LessonTermID:     term.AcademicTermID,
					LessonDate:       d,
					LessonWeekOfTerm: WeekOfTerm(&term, d),
					LessonStatus:     model.LessonScheduled,
					LessonStartTime:  wp.WeeklyPatternStartTime,
					LessonEndTime:    wp.WeeklyPatternEndTime,
				})
			}
		}

		if len(batch) > 0 {
			if err := tx.CreateInBatches(&batch, 200).Error; err != nil {
				return err
			}
		}
		created = len(batch)

		run := model.LessonGenerationRunModel{
			LessonGenerationRunCourseID:  courseID,
			LessonGenerationRunSpanStart: *terms[0].AcademicTermStartDate,
			LessonGenerationRunSpanEnd:   *terms[len(terms)-1].AcademicTermEndDate,
			LessonGenerationRunWeekdays:  activeDays(patterns),
			LessonGenerationRunCreated:   created,
		}
		return tx.Create(&run).Error
	})
	if err != nil {
		return 0, err
	}

	log.Printf("[GENERATE] course=%s terms=%v created=%d", courseID, termNumbers, created)
	return created, nil
}

// requiredTerms resolves the needed term numbers against the year; a term
// that is absent or undated fails the whole request.
func requiredTerms(ay *yearModel.AcademicYearModel, numbers []int) ([]yearModel.AcademicTermModel, error) {
	byNum := make(map[int]yearModel.AcademicTermModel, len(ay.Terms))
	for _, t := range ay.Terms {
		byNum[t.AcademicTermNumber] = t
	}

	sorted := append([]int(nil), numbers...)
	sort.Ints(sorted)

	out := make([]yearModel.AcademicTermModel, 0, len(sorted))
	for _, n := range sorted {
		t, ok := byNum[n]
		if !ok || !t.Dated() {
			return nil, ErrTermDatesMissing
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "select at least one term")
	}
	return out, nil
}

func existingLessonDates(tx *gorm.DB, courseID uuid.UUID) (map[string]bool, error) {
	var dates []time.Time
	if err := tx.Model(&model.LessonModel{}).
		Where("lesson_course_id = ?", courseID).
		Pluck("lesson_date", &dates).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(dates))
	for _, d := range dates {
		out[d.Format("2006-01-02")] = true
	}
	return out, nil
}

func activeDays(patterns []model.WeeklyPatternModel) pq.Int64Array {
	days := make(pq.Int64Array, 0, len(patterns))
	for _, p := range patterns {
		days = append(days, int64(p.WeeklyPatternDayOfWeek))
	}
	return days
}
