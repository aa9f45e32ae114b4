// file: internals/features/school/calendar/schedules/service/no_class_service.go
package service

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"classtrack_backend/internals/features/school/calendar/schedules/model"
)

// AttendanceSink receives the no-class propagation. The attendance feature
// implements it; schedules only knows the contract.
type AttendanceSink interface {
	MarkNoClass(tx *gorm.DB, lessonID uuid.UUID) error
}

// NoClassService flips a lesson's cancelled state. Turning the flag on
// pushes NO_CLASS_TODAY onto every attendance row of the lesson; turning
// it off restores only the lesson status and leaves attendance untouched,
// so the roll must be re-marked by hand after an accidental cancel.
type NoClassService interface {
	SetNoClass(ctx context.Context, lessonID uuid.UUID, on bool) (*model.LessonModel, error)
}

type noClassService struct {
	db   *gorm.DB
	sink AttendanceSink
}

func NewNoClassService(db *gorm.DB, sink AttendanceSink) NoClassService {
	return &noClassService{db: db, sink: sink}
}

func (s *noClassService) SetNoClass(ctx context.Context, lessonID uuid.UUID, on bool) (*model.LessonModel, error) {
	var lesson model.LessonModel
	if err := s.db.WithContext(ctx).Take(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "lesson not found")
		}
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if on {
			lesson.LessonStatus = model.LessonNoClassToday
			if err := tx.Save(&lesson).Error; err != nil {
				return err
			}
			return s.sink.MarkNoClass(tx, lesson.LessonID)
		}
		lesson.LessonStatus = model.LessonScheduled
		return tx.Save(&lesson).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[NO_CLASS] lesson=%s on=%t", lessonID, on)
	return &lesson, nil
}
