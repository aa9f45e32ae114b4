// file: internals/features/school/calendar/academic_years/route/year_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearCtl "classtrack_backend/internals/features/school/calendar/academic_years/controller"
	"classtrack_backend/internals/middlewares"
)

// ================================
// Year configuration workflow
// Base: /api/years
// ================================
func AcademicYearRoutes(api fiber.Router, db *gorm.DB) {
	ctl := yearCtl.NewAcademicYearController(db, nil)

	r := api.Group("/years")
	r.Get("/setup", ctl.YearSetup)
	// Scrapes hit an external site, keep them on a tight limiter.
	r.Post("/scrape", middlewares.ScrapeRateLimiter(), ctl.YearScrape)
	r.Post("/confirm", ctl.YearConfirm)
}
