// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearRoute "classtrack_backend/internals/features/school/calendar/academic_years/route"
	scheduleRoute "classtrack_backend/internals/features/school/calendar/schedules/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api")

	log.Println("[INFO] Setting up AcademicYearRoutes...")
	yearRoute.AcademicYearRoutes(api, db)

	log.Println("[INFO] Setting up ScheduleRoutes...")
	scheduleRoute.ScheduleRoutes(api, db)
}
