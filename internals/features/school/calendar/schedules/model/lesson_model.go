// file: internals/features/school/calendar/schedules/model/lesson_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"classtrack_backend/internals/helpers/dbtime"
)

// LessonStatus mirrors the lesson_status enum.
type LessonStatus string

const (
	LessonScheduled  LessonStatus = "SCHEDULED"
	LessonNoClassToday LessonStatus = "NO_CLASS_TODAY"
)

// LessonModel is one concrete dated class occurrence. Lessons are created
// by the generator and never auto-deleted; cancellation is a status flip,
// not a removal. Unique (course_id, date) is the idempotence backstop.
type LessonModel struct {
	LessonID uuid.UUID `gorm:"type:uuid;primaryKey;column:lesson_id" json:"lesson_id"`

	LessonCourseID uuid.UUID `gorm:"type:uuid;not null;column:lesson_course_id;uniqueIndex:uq_course_lesson_date" json:"lesson_course_id"`
	LessonTermID   uuid.UUID `gorm:"type:uuid;not null;column:lesson_term_id" json:"lesson_term_id"`

	LessonDate       time.Time `gorm:"type:date;not null;column:lesson_date;uniqueIndex:uq_course_lesson_date" json:"lesson_date"`
	LessonWeekOfTerm int       `gorm:"not null;column:lesson_week_of_term" json:"lesson_week_of_term"`

	LessonStatus LessonStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';column:lesson_status" json:"lesson_status"`

	LessonStartTime *dbtime.Tod `gorm:"type:time;column:lesson_start_time" json:"lesson_start_time,omitempty"`
	LessonEndTime   *dbtime.Tod `gorm:"type:time;column:lesson_end_time" json:"lesson_end_time,omitempty"`

	LessonNotes *string `gorm:"type:text;column:lesson_notes" json:"lesson_notes,omitempty"`

	LessonCreatedAt time.Time `gorm:"column:lesson_created_at;not null;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time `gorm:"column:lesson_updated_at;not null;autoUpdateTime" json:"lesson_updated_at"`
}

func (LessonModel) TableName() string { return "lessons" }

func (m *LessonModel) BeforeCreate(tx *gorm.DB) error {
	if m.LessonID == uuid.Nil {
		m.LessonID = uuid.New()
	}
	return nil
}

// LessonGenerationRunModel is an audit row written once per generate call:
// which span was walked, which weekdays were active, how many lessons came out.
type LessonGenerationRunModel struct {
	LessonGenerationRunID uuid.UUID `gorm:"type:uuid;primaryKey;column:lesson_generation_run_id" json:"lesson_generation_run_id"`

	LessonGenerationRunCourseID  uuid.UUID     `gorm:"type:uuid;not null;column:lesson_generation_run_course_id;index" json:"lesson_generation_run_course_id"`
	LessonGenerationRunSpanStart time.Time     `gorm:"type:date;not null;column:lesson_generation_run_span_start" json:"lesson_generation_run_span_start"`
	LessonGenerationRunSpanEnd   time.Time     `gorm:"type:date;not null;column:lesson_generation_run_span_end" json:"lesson_generation_run_span_end"`
	LessonGenerationRunWeekdays  pq.Int64Array `gorm:"type:int[];column:lesson_generation_run_weekdays" json:"lesson_generation_run_weekdays"`
	LessonGenerationRunCreated   int           `gorm:"not null;default:0;column:lesson_generation_run_created" json:"lesson_generation_run_created"`

	LessonGenerationRunCreatedAt time.Time `gorm:"column:lesson_generation_run_created_at;not null;autoCreateTime" json:"lesson_generation_run_created_at"`
}

func (LessonGenerationRunModel) TableName() string { return "lesson_generation_runs" }

func (m *LessonGenerationRunModel) BeforeCreate(tx *gorm.DB) error {
	if m.LessonGenerationRunID == uuid.Nil {
		m.LessonGenerationRunID = uuid.New()
	}
	return nil
}
