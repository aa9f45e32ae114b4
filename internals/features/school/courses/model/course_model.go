// file: internals/features/school/courses/model/course_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseSemester scopes a course's teaching period within the year.
type CourseSemester string

const (
	SemesterS1   CourseSemester = "S1"   // terms 1-2
	SemesterS2   CourseSemester = "S2"   // terms 3-4
	SemesterFull CourseSemester = "FULL" // terms 1-4
)

// TermNumbers returns the term numbers covered by the semester.
func (s CourseSemester) TermNumbers() []int {
	switch s {
	case SemesterS1:
		return []int{1, 2}
	case SemesterS2:
		return []int{3, 4}
	default:
		return []int{1, 2, 3, 4}
	}
}

func (s CourseSemester) Valid() bool {
	return s == SemesterS1 || s == SemesterS2 || s == SemesterFull
}

type CourseModel struct {
	CourseID uuid.UUID `gorm:"type:uuid;primaryKey;column:course_id" json:"course_id"`

	CourseName     string         `gorm:"type:varchar(200);not null;column:course_name;uniqueIndex:uq_course_term" json:"course_name"`
	CourseSemester CourseSemester `gorm:"type:varchar(20);not null;column:course_semester;uniqueIndex:uq_course_term" json:"course_semester"`
	CourseYear     int            `gorm:"not null;column:course_year;uniqueIndex:uq_course_term;index:ix_course_year" json:"course_year"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;not null;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;not null;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}

func (m *CourseModel) BeforeSave(tx *gorm.DB) error {
	m.CourseName = strings.TrimSpace(m.CourseName)
	if m.CourseName == "" {
		return errors.New("course_name must not be empty")
	}
	if !m.CourseSemester.Valid() {
		return errors.New("course_semester must be S1, S2 or FULL")
	}
	return nil
}

// EnrollmentModel links a student to a course (association table).
type EnrollmentModel struct {
	EnrollmentCourseID  uuid.UUID `gorm:"type:uuid;primaryKey;column:enrollment_course_id" json:"enrollment_course_id"`
	EnrollmentStudentID uuid.UUID `gorm:"type:uuid;primaryKey;column:enrollment_student_id" json:"enrollment_student_id"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;not null;autoCreateTime" json:"enrollment_created_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
