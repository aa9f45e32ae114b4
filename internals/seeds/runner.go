// file: internals/seeds/runner.go
package seeds

import (
	"gorm.io/gorm"

	courses "classtrack_backend/internals/seeds/courses"
)

func RunAllSeeds(db *gorm.DB) {
	courses.SeedCoursesFromJSON(db, "internals/seeds/courses/data_courses.json")
}
