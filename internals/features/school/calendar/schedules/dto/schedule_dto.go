// file: internals/features/school/calendar/schedules/dto/schedule_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	yearDto "classtrack_backend/internals/features/school/calendar/academic_years/dto"
	"classtrack_backend/internals/features/school/calendar/schedules/model"
	courseModel "classtrack_backend/internals/features/school/courses/model"
	"classtrack_backend/internals/helpers/dbtime"
)

// =======================
// Request DTO
// =======================

// ScheduleSetupRequest configures a course's weekly pattern and generates
// its lessons in one call. term_mode "use_semester" derives the terms from
// the course's semester; "pick_terms" uses the explicit terms list.
type ScheduleSetupRequest struct {
	TermMode  string `json:"term_mode" validate:"omitempty,oneof=use_semester pick_terms"`
	Terms     []int  `json:"terms" validate:"omitempty,dive,min=1,max=4"`
	StartTime string `json:"start_time" validate:"omitempty,len=5"`
	EndTime   string `json:"end_time" validate:"omitempty,len=5"`
	Days      []int  `json:"days" validate:"required,min=1,dive,min=0,max=6"`
}

func (r *ScheduleSetupRequest) PickedTerms(semester courseModel.CourseSemester) []int {
	if r.TermMode == "pick_terms" && len(r.Terms) > 0 {
		return r.Terms
	}
	return semester.TermNumbers()
}

type NoClassToggleRequest struct {
	On *bool `json:"on" validate:"required"`
}

// =======================
// Response DTO
// =======================

type WeeklyPatternResponse struct {
	WeeklyPatternID        uuid.UUID   `json:"weekly_pattern_id"`
	WeeklyPatternDayOfWeek int         `json:"weekly_pattern_day_of_week"`
	WeeklyPatternStartTime *dbtime.Tod `json:"weekly_pattern_start_time,omitempty"`
	WeeklyPatternEndTime   *dbtime.Tod `json:"weekly_pattern_end_time,omitempty"`
	WeeklyPatternRoom      *string     `json:"weekly_pattern_room,omitempty"`
	WeeklyPatternIsActive  bool        `json:"weekly_pattern_is_active"`
}

type LessonResponse struct {
	LessonID         uuid.UUID          `json:"lesson_id"`
	LessonCourseID   uuid.UUID          `json:"lesson_course_id"`
	LessonTermID     uuid.UUID          `json:"lesson_term_id"`
	LessonDate       string             `json:"lesson_date"`
	LessonWeekOfTerm int                `json:"lesson_week_of_term"`
	LessonStatus     model.LessonStatus `json:"lesson_status"`
	LessonStartTime  *dbtime.Tod        `json:"lesson_start_time,omitempty"`
	LessonEndTime    *dbtime.Tod        `json:"lesson_end_time,omitempty"`
	LessonNotes      *string            `json:"lesson_notes,omitempty"`
}

type ScheduleSetupResponse struct {
	CourseID uuid.UUID               `json:"course_id"`
	Patterns []WeeklyPatternResponse `json:"patterns"`
	Created  int                     `json:"created"`
}

type CourseSummary struct {
	CourseID       uuid.UUID                  `json:"course_id"`
	CourseName     string                     `json:"course_name"`
	CourseSemester courseModel.CourseSemester `json:"course_semester"`
	CourseYear     int                        `json:"course_year"`
}

// CourseScheduleResponse is the read-only schedule view: the course, its
// year's terms (when configured), every lesson, and the next few upcoming
// ones. YearConfigured false is the cue to show the configure-year CTA.
type CourseScheduleResponse struct {
	Course         CourseSummary                  `json:"course"`
	Year           int                            `json:"year"`
	YearConfigured bool                           `json:"year_configured"`
	Terms          []yearDto.AcademicTermResponse `json:"terms"`
	Lessons        []LessonResponse               `json:"lessons"`
	Upcoming       []LessonResponse               `json:"upcoming"`
}

// =======================
// Mappers
// =======================

func FromPatternModel(ent model.WeeklyPatternModel) WeeklyPatternResponse {
	return WeeklyPatternResponse{
		WeeklyPatternID:        ent.WeeklyPatternID,
		WeeklyPatternDayOfWeek: ent.WeeklyPatternDayOfWeek,
		WeeklyPatternStartTime: ent.WeeklyPatternStartTime,
		WeeklyPatternEndTime:   ent.WeeklyPatternEndTime,
		WeeklyPatternRoom:      ent.WeeklyPatternRoom,
		WeeklyPatternIsActive:  ent.WeeklyPatternIsActive,
	}
}

func FromLessonModel(ent model.LessonModel) LessonResponse {
	return LessonResponse{
		LessonID:         ent.LessonID,
		LessonCourseID:   ent.LessonCourseID,
		LessonTermID:     ent.LessonTermID,
		LessonDate:       ent.LessonDate.Format("2006-01-02"),
		LessonWeekOfTerm: ent.LessonWeekOfTerm,
		LessonStatus:     ent.LessonStatus,
		LessonStartTime:  ent.LessonStartTime,
		LessonEndTime:    ent.LessonEndTime,
		LessonNotes:      ent.LessonNotes,
	}
}

func FromCourseModel(ent courseModel.CourseModel) CourseSummary {
	return CourseSummary{
		CourseID:       ent.CourseID,
		CourseName:     ent.CourseName,
		CourseSemester: ent.CourseSemester,
		CourseYear:     ent.CourseYear,
	}
}

// UpcomingLessons picks the first n lessons dated today or later, assuming
// lessons is already date-ordered.
func UpcomingLessons(lessons []LessonResponse, today time.Time, n int) []LessonResponse {
	cutoff := today.Format("2006-01-02")
	out := make([]LessonResponse, 0, n)
	for _, l := range lessons {
		if l.LessonDate >= cutoff {
			out = append(out, l)
			if len(out) == n {
				break
			}
		}
	}
	return out
}
