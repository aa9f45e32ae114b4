// file: internals/seeds/courses/seed_courses.go
package courses

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"classtrack_backend/internals/features/school/courses/model"
)

type CourseSeed struct {
	CourseName     string `json:"course_name"`
	CourseSemester string `json:"course_semester"`
	CourseYear     int    `json:"course_year"`
}

// SeedCoursesFromJSON loads demo courses, skipping any (name, semester,
// year) combination that already exists.
func SeedCoursesFromJSON(db *gorm.DB, filePath string) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("[SEED] cannot read %s: %v", filePath, err)
		return
	}

	var seeds []CourseSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		log.Printf("[SEED] cannot decode %s: %v", filePath, err)
		return
	}

	for _, s := range seeds {
		var existing model.CourseModel
		err := db.Where(
			"course_name = ? AND course_semester = ? AND course_year = ?",
			s.CourseName, s.CourseSemester, s.CourseYear,
		).First(&existing).Error
		if err == nil {
			continue
		}

		course := model.CourseModel{
			CourseName:     s.CourseName,
			CourseSemester: model.CourseSemester(s.CourseSemester),
			CourseYear:     s.CourseYear,
		}
		if err := db.Create(&course).Error; err != nil {
			log.Printf("[SEED] course %q failed: %v", s.CourseName, err)
			continue
		}
		log.Printf("[SEED] course %q (%s %d) created", s.CourseName, s.CourseSemester, s.CourseYear)
	}
}
