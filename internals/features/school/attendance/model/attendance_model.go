// file: internals/features/school/attendance/model/attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceStatus mirrors the attendance_status enum.
type AttendanceStatus string

const (
	AttendancePresent              AttendanceStatus = "PRESENT"
	AttendanceAbsent               AttendanceStatus = "ABSENT"
	AttendanceLate                 AttendanceStatus = "LATE"
	AttendanceSchoolApprovedAbsent AttendanceStatus = "SCHOOL_APPROVED_ABSENT"
	AttendanceNoClassToday         AttendanceStatus = "NO_CLASS_TODAY"
)

// AttendanceModel is one student's roll entry for one lesson. Roll-marking
// itself is owned elsewhere; the calendar core only ensures rows exist and
// propagates NO_CLASS_TODAY onto them.
type AttendanceModel struct {
	AttendanceID uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_id" json:"attendance_id"`

	AttendanceLessonID  uuid.UUID `gorm:"type:uuid;not null;column:attendance_lesson_id;uniqueIndex:uq_lesson_student" json:"attendance_lesson_id"`
	AttendanceStudentID uuid.UUID `gorm:"type:uuid;not null;column:attendance_student_id;uniqueIndex:uq_lesson_student" json:"attendance_student_id"`

	AttendanceStatus AttendanceStatus `gorm:"type:varchar(30);not null;default:'PRESENT';column:attendance_status" json:"attendance_status"`

	AttendanceMarkedByUserID *uuid.UUID `gorm:"type:uuid;column:attendance_marked_by_user_id" json:"attendance_marked_by_user_id,omitempty"`
	AttendanceComment        *string    `gorm:"type:varchar(255);column:attendance_comment" json:"attendance_comment,omitempty"`

	AttendanceMarkedAt time.Time `gorm:"column:attendance_marked_at;not null;autoCreateTime" json:"attendance_marked_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;not null;autoUpdateTime" json:"attendance_updated_at"`
}

func (AttendanceModel) TableName() string { return "attendance" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
