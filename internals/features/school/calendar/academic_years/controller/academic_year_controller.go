// file: internals/features/school/calendar/academic_years/controller/academic_year_controller.go
package controller

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"classtrack_backend/internals/configs"
	"classtrack_backend/internals/features/school/calendar/academic_years/dto"
	"classtrack_backend/internals/features/school/calendar/academic_years/scraper"
	"classtrack_backend/internals/features/school/calendar/academic_years/service"
	helper "classtrack_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type AcademicYearController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   service.YearConfigService
}

func NewAcademicYearController(db *gorm.DB, v *validator.Validate) *AcademicYearController {
	if v == nil {
		v = validator.New()
	}
	timeout := configs.ScrapeTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	url := configs.TermDatesURL
	if url == "" {
		url = configs.DefaultTermDatesURL
	}
	src := scraper.New(url, timeout)
	return &AcademicYearController{
		DB:        db,
		Validator: v,
		Service:   service.NewYearConfigService(db, src),
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

/* ============================================
   GET /years/setup?year=2025
============================================ */

func (ctl *AcademicYearController) YearSetup(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		return helper.JsonError(c, fiber.StatusBadRequest, "year is required")
	}

	resp, err := ctl.Service.Setup(c.UserContext(), year)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", resp)
}

/* ============================================
   POST /years/scrape
============================================ */

func (ctl *AcademicYearController) YearScrape(c *fiber.Ctx) error {
	var req dto.YearScrapeRequest
	if err := bindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromFiberError(c, err)
	}

	payload, err := ctl.Service.Scrape(c.UserContext(), req.Year)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Scraped and staged term dates. Review before confirming.", payload)
}

/* ============================================
   POST /years/confirm
============================================ */

func (ctl *AcademicYearController) YearConfirm(c *fiber.Ctx) error {
	var req dto.YearConfirmRequest
	if err := bindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := ctl.Service.Confirm(c.UserContext(), req.Year, req.Payload)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Academic year configured.", resp)
}
