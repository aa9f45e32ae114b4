package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"classtrack_backend/internals/configs"
	yearModel "classtrack_backend/internals/features/school/calendar/academic_years/model"
	scheduleModel "classtrack_backend/internals/features/school/calendar/schedules/model"
	attendanceModel "classtrack_backend/internals/features/school/attendance/model"
	courseModel "classtrack_backend/internals/features/school/courses/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	// Full DSN + statement_timeout; keep PreferSimpleProtocol=true for PgBouncer
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=classtrack&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates/updates the calendar tables. Constraint backstops
// (unique course_id+date, year_id+number) live in the model tags.
func Migrate() {
	if err := DB.AutoMigrate(
		&courseModel.CourseModel{},
		&courseModel.EnrollmentModel{},
		&yearModel.AcademicYearModel{},
		&yearModel.AcademicTermModel{},
		&yearModel.TermDateStagingModel{},
		&scheduleModel.WeeklyPatternModel{},
		&scheduleModel.LessonModel{},
		&scheduleModel.LessonGenerationRunModel{},
		&attendanceModel.AttendanceModel{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Migration done.")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
