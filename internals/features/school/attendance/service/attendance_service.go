// file: internals/features/school/attendance/service/attendance_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"classtrack_backend/internals/features/school/attendance/model"
	courseModel "classtrack_backend/internals/features/school/courses/model"
)

// AttendanceService owns the roll rows the calendar core touches: ensuring
// every enrolled student has one per lesson, and propagating a lesson
// cancellation onto them. Actual roll-marking lives elsewhere.
type AttendanceService interface {
	// EnsureRows guarantees one attendance row per enrolled student for the
	// lesson, defaulting new rows to PRESENT. Existing rows are untouched.
	EnsureRows(ctx context.Context, courseID, lessonID uuid.UUID) ([]model.AttendanceModel, error)

	// MarkNoClass sets every attendance row of the lesson to NO_CLASS_TODAY.
	MarkNoClass(tx *gorm.DB, lessonID uuid.UUID) error
}

type attendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) AttendanceService {
	return &attendanceService{db: db}
}

func (s *attendanceService) EnsureRows(ctx context.Context, courseID, lessonID uuid.UUID) ([]model.AttendanceModel, error) {
	var rows []model.AttendanceModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enrollments []courseModel.EnrollmentModel
		if err := tx.Where("enrollment_course_id = ?", courseID).
			Find(&enrollments).Error; err != nil {
			return err
		}

		if err := tx.Where("attendance_lesson_id = ?", lessonID).
			Find(&rows).Error; err != nil {
			return err
		}
		seen := make(map[uuid.UUID]bool, len(rows))
		for _, r := range rows {
			seen[r.AttendanceStudentID] = true
		}

		var missing []model.AttendanceModel
		for _, e := range enrollments {
			if seen[e.EnrollmentStudentID] {
				continue
			}
			missing = append(missing, model.AttendanceModel{
				AttendanceLessonID:  lessonID,
				AttendanceStudentID: e.EnrollmentStudentID,
				AttendanceStatus:    model.AttendancePresent,
			})
		}
		if len(missing) > 0 {
			if err := tx.Create(&missing).Error; err != nil {
				return err
			}
			rows = append(rows, missing...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *attendanceService) MarkNoClass(tx *gorm.DB, lessonID uuid.UUID) error {
	return tx.Model(&model.AttendanceModel{}).
		Where("attendance_lesson_id = ?", lessonID).
		Update("attendance_status", model.AttendanceNoClassToday).Error
}
