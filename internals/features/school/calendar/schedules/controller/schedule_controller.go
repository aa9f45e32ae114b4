// file: internals/features/school/calendar/schedules/controller/schedule_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceSvc "classtrack_backend/internals/features/school/attendance/service"
	yearDto "classtrack_backend/internals/features/school/calendar/academic_years/dto"
	yearModel "classtrack_backend/internals/features/school/calendar/academic_years/model"
	"classtrack_backend/internals/features/school/calendar/schedules/dto"
	"classtrack_backend/internals/features/school/calendar/schedules/model"
	"classtrack_backend/internals/features/school/calendar/schedules/service"
	courseModel "classtrack_backend/internals/features/school/courses/model"
	helper "classtrack_backend/internals/helpers"
	"classtrack_backend/internals/helpers/dbtime"
)

/* ============================================
   Controller
============================================ */

type ScheduleController struct {
	DB        *gorm.DB
	Validator *validator.Validate

	Store      service.CalendarStore
	Generator  service.LessonGenerator
	NoClass    service.NoClassService
	Attendance attendanceSvc.AttendanceService
}

func NewScheduleController(db *gorm.DB, v *validator.Validate) *ScheduleController {
	if v == nil {
		v = validator.New()
	}
	store := service.NewCalendarStore(db)
	attendance := attendanceSvc.NewAttendanceService(db)
	return &ScheduleController{
		DB:         db,
		Validator:  v,
		Store:      store,
		Generator:  service.NewLessonGenerator(db, store),
		NoClass:    service.NewNoClassService(db, attendance),
		Attendance: attendance,
	}
}

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

func yearResponse(ay *yearModel.AcademicYearModel) []yearDto.AcademicTermResponse {
	out := make([]yearDto.AcademicTermResponse, 0, len(ay.Terms))
	for _, t := range ay.Terms {
		out = append(out, yearDto.FromTermModel(t))
	}
	return out
}

func (ctl *ScheduleController) loadCourse(c *fiber.Ctx) (*courseModel.CourseModel, error) {
	id, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "course_id must be a UUID")
	}
	var course courseModel.CourseModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Take(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "course not found")
		}
		return nil, err
	}
	return &course, nil
}

/* ============================================
   POST /courses/:course_id/schedule/setup
============================================ */

func (ctl *ScheduleController) ScheduleSetup(c *fiber.Ctx) error {
	course, err := ctl.loadCourse(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ScheduleSetupRequest
	if err := bindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromFiberError(c, err)
	}

	start, err := dbtime.ParsePtr(req.StartTime)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "start_time must be HH:MM")
	}
	end, err := dbtime.ParsePtr(req.EndTime)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_time must be HH:MM")
	}
	if start == nil {
		v, _ := dbtime.Parse("09:00")
		start = &v
	}
	if end == nil {
		v, _ := dbtime.Parse("10:00")
		end = &v
	}
	if !end.After(start.Time) {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_time must be after start_time")
	}

	termNumbers := req.PickedTerms(course.CourseSemester)
	ok, err := ctl.Store.EnsureYearHasTerms(c.UserContext(), course.CourseYear, termNumbers)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusConflict,
			fmt.Sprintf("year %d / terms %v not configured yet", course.CourseYear, termNumbers))
	}

	patterns, err := ctl.Generator.UpsertPatterns(c.UserContext(), course.CourseID, req.Days, start, end)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	created, err := ctl.Generator.Generate(c.UserContext(), course.CourseID, termNumbers)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := dto.ScheduleSetupResponse{
		CourseID: course.CourseID,
		Patterns: make([]dto.WeeklyPatternResponse, 0, len(patterns)),
		Created:  created,
	}
	for _, p := range patterns {
		resp.Patterns = append(resp.Patterns, dto.FromPatternModel(p))
	}
	return helper.JsonCreated(c,
		fmt.Sprintf("Created %d lesson(s) for %s.", created, course.CourseName), resp)
}

/* ============================================
   GET /courses/:course_id/schedule
============================================ */

func (ctl *ScheduleController) CourseSchedule(c *fiber.Ctx) error {
	course, err := ctl.loadCourse(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := dto.CourseScheduleResponse{
		Course: dto.FromCourseModel(*course),
		Year:   course.CourseYear,
	}

	ay, err := ctl.Store.YearFor(c.UserContext(), course.CourseYear)
	if err != nil {
		var fe *fiber.Error
		if !errors.As(err, &fe) || fe.Code != fiber.StatusNotFound {
			return helper.FromFiberError(c, err)
		}
		// Year not configured: still show lessons plus the CTA flag.
	} else {
		resp.YearConfigured = true
		yr := yearResponse(ay)
		resp.Terms = yr
	}

	var lessons []model.LessonModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("lesson_course_id = ?", course.CourseID).
		Order("lesson_date ASC, lesson_start_time ASC").
		Find(&lessons).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	resp.Lessons = make([]dto.LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		resp.Lessons = append(resp.Lessons, dto.FromLessonModel(l))
	}
	resp.Upcoming = dto.UpcomingLessons(resp.Lessons, time.Now(), 10)

	return helper.JsonOK(c, "OK", resp)
}

/* ============================================
   GET /courses/:course_id/lessons
============================================ */

var lessonSortColumns = map[string]string{
	"date":       "lesson_date",
	"week":       "lesson_week_of_term",
	"status":     "lesson_status",
	"created_at": "lesson_created_at",
}

func (ctl *ScheduleController) LessonsList(c *fiber.Ctx) error {
	course, err := ctl.loadCourse(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 25, 200)

	col, ok := lessonSortColumns[c.Query("sort_by", "date")]
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "sort_by is not sortable")
	}
	dir := strings.ToLower(c.Query("sort_dir", "asc"))
	if dir != "asc" && dir != "desc" {
		return helper.JsonError(c, fiber.StatusBadRequest, "sort_dir must be asc or desc")
	}

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&model.LessonModel{}).
		Where("lesson_course_id = ?", course.CourseID)
	if status := c.Query("status"); status != "" {
		q = q.Where("lesson_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var lessons []model.LessonModel
	if err := q.Order(col + " " + dir).
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&lessons).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	items := make([]dto.LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		items = append(items, dto.FromLessonModel(l))
	}
	return helper.JsonList(c, "OK", items,
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

/* ============================================
   POST /lessons/:lesson_id/no-class
============================================ */

func (ctl *ScheduleController) NoClassToggle(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lesson_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lesson_id must be a UUID")
	}

	var req dto.NoClassToggleRequest
	if err := bindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromFiberError(c, err)
	}

	// Cancelling must hit the whole roster, so make sure it exists first.
	if *req.On {
		var lesson model.LessonModel
		if err := ctl.DB.WithContext(c.UserContext()).
			Take(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "lesson not found")
			}
			return helper.FromFiberError(c, err)
		}
		if _, err := ctl.Attendance.EnsureRows(c.UserContext(), lesson.LessonCourseID, lessonID); err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	updated, err := ctl.NoClass.SetNoClass(c.UserContext(), lessonID, *req.On)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "OK", dto.FromLessonModel(*updated))
}
