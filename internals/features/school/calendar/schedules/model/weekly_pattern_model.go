// file: internals/features/school/calendar/schedules/model/weekly_pattern_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"classtrack_backend/internals/helpers/dbtime"
)

// WeeklyPatternModel is a recurring weekly meeting slot for a course.
// At most one pattern per weekday per course; removing a day from the
// schedule deactivates the pattern instead of deleting it, so lessons
// already generated from it keep their provenance.
type WeeklyPatternModel struct {
	WeeklyPatternID uuid.UUID `gorm:"type:uuid;primaryKey;column:weekly_pattern_id" json:"weekly_pattern_id"`

	WeeklyPatternCourseID uuid.UUID `gorm:"type:uuid;not null;column:weekly_pattern_course_id;uniqueIndex:uq_course_day" json:"weekly_pattern_course_id"`

	// 0=Monday .. 6=Sunday
	WeeklyPatternDayOfWeek int `gorm:"not null;column:weekly_pattern_day_of_week;uniqueIndex:uq_course_day" json:"weekly_pattern_day_of_week"`

	WeeklyPatternStartTime *dbtime.Tod `gorm:"type:time;column:weekly_pattern_start_time" json:"weekly_pattern_start_time,omitempty"`
	WeeklyPatternEndTime   *dbtime.Tod `gorm:"type:time;column:weekly_pattern_end_time" json:"weekly_pattern_end_time,omitempty"`

	WeeklyPatternRoom     *string `gorm:"type:varchar(64);column:weekly_pattern_room" json:"weekly_pattern_room,omitempty"`
	WeeklyPatternIsActive bool    `gorm:"not null;default:true;column:weekly_pattern_is_active" json:"weekly_pattern_is_active"`

	WeeklyPatternCreatedAt time.Time `gorm:"column:weekly_pattern_created_at;not null;autoCreateTime" json:"weekly_pattern_created_at"`
	WeeklyPatternUpdatedAt time.Time `gorm:"column:weekly_pattern_updated_at;not null;autoUpdateTime" json:"weekly_pattern_updated_at"`
}

func (WeeklyPatternModel) TableName() string { return "weekly_patterns" }

func (m *WeeklyPatternModel) BeforeCreate(tx *gorm.DB) error {
	if m.WeeklyPatternID == uuid.Nil {
		m.WeeklyPatternID = uuid.New()
	}
	return nil
}

func (m *WeeklyPatternModel) BeforeSave(tx *gorm.DB) error {
	// Mirror CHECK: day_of_week BETWEEN 0 AND 6
	if m.WeeklyPatternDayOfWeek < 0 || m.WeeklyPatternDayOfWeek > 6 {
		return errors.New("weekly_pattern_day_of_week must be between 0 and 6")
	}
	return nil
}
