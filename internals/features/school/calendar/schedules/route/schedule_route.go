// file: internals/features/school/calendar/schedules/route/schedule_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleCtl "classtrack_backend/internals/features/school/calendar/schedules/controller"
)

// ================================
// Course scheduling + lesson toggles
// Base: /api/courses, /api/lessons
// ================================
func ScheduleRoutes(api fiber.Router, db *gorm.DB) {
	ctl := scheduleCtl.NewScheduleController(db, nil)

	courses := api.Group("/courses")
	courses.Post("/:course_id/schedule/setup", ctl.ScheduleSetup)
	courses.Get("/:course_id/schedule", ctl.CourseSchedule)
	courses.Get("/:course_id/lessons", ctl.LessonsList)

	lessons := api.Group("/lessons")
	lessons.Post("/:lesson_id/no-class", ctl.NoClassToggle)
}
