// file: internals/features/school/calendar/academic_years/service/year_config_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"classtrack_backend/internals/features/school/calendar/academic_years/dto"
	"classtrack_backend/internals/features/school/calendar/academic_years/model"
	"classtrack_backend/internals/features/school/calendar/academic_years/parser"
	"classtrack_backend/internals/features/school/calendar/academic_years/scraper"
)

// TermSource produces scraped term-date data. The production implementation
// is the goquery scraper; tests swap in a stub.
type TermSource interface {
	Scrape(ctx context.Context) (*scraper.Result, error)
}

// YearConfigService drives the scrape → stage → confirm workflow. Scrape
// never touches academic_years/academic_terms; Confirm never talks to the
// network.
type YearConfigService interface {
	// Setup returns the preview for a year: committed state + staged state.
	Setup(ctx context.Context, year int) (*dto.YearSetupResponse, error)

	// Scrape runs the term source and stages the requested year's terms.
	Scrape(ctx context.Context, year int) (*dto.StagedPayload, error)

	// Confirm commits the staged payload (or the override, when given) into
	// academic_years + academic_terms, replacing any previous term set.
	Confirm(ctx context.Context, year int, override *dto.StagedPayload) (*dto.AcademicYearResponse, error)
}

type yearConfigService struct {
	db     *gorm.DB
	source TermSource
}

func NewYearConfigService(db *gorm.DB, source TermSource) YearConfigService {
	return &yearConfigService{db: db, source: source}
}

func (s *yearConfigService) Setup(ctx context.Context, year int) (*dto.YearSetupResponse, error) {
	resp := &dto.YearSetupResponse{Year: year}

	var ay model.AcademicYearModel
	err := s.db.WithContext(ctx).
		Preload("Terms", func(db *gorm.DB) *gorm.DB {
			return db.Order("academic_term_number ASC")
		}).
		Where("academic_year_year = ?", year).
		Take(&ay).Error
	switch {
	case err == nil:
		r := dto.FromYearModel(ay)
		resp.Existing = &r
	case errors.Is(err, gorm.ErrRecordNotFound):
		// not configured yet
	default:
		return nil, err
	}

	staged, err := s.loadStage(ctx, year)
	if err != nil {
		return nil, err
	}
	resp.Staged = staged
	return resp, nil
}

func (s *yearConfigService) Scrape(ctx context.Context, year int) (*dto.StagedPayload, error) {
	res, err := s.source.Scrape(ctx)
	if err != nil {
		log.Printf("[YEAR_CONFIG] scrape failed for %d: %v", year, err)
		return nil, err
	}

	terms := res.TermsFor(year)
	if len(terms) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("scraped data did not include %d", year))
	}

	payload := &dto.StagedPayload{
		Source:      strPtrOrNil(res.Source),
		LastUpdated: res.LastUpdated,
		Year:        year,
		Terms:       parser.NormalizeTerms(terms, year),
	}
	if err := s.saveStage(ctx, payload); err != nil {
		return nil, err
	}
	log.Printf("[YEAR_CONFIG] staged %d term(s) for %d", len(payload.Terms), year)
	return payload, nil
}

func (s *yearConfigService) Confirm(ctx context.Context, year int, override *dto.StagedPayload) (*dto.AcademicYearResponse, error) {
	payload := override
	if payload != nil {
		payload.Year = year
		// Persist the upload so a later preview shows what was committed.
		if err := s.saveStage(ctx, payload); err != nil {
			return nil, err
		}
	} else {
		staged, err := s.loadStage(ctx, year)
		if err != nil {
			return nil, err
		}
		payload = staged
	}
	if payload == nil || len(payload.Terms) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound,
			"no staged term dates to confirm; run the scraper first")
	}

	var ay model.AcademicYearModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("academic_year_year = ?", year).Take(&ay).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			ay = model.AcademicYearModel{AcademicYearYear: year}
		}

		if payload.Source != nil && *payload.Source != "" {
			ay.AcademicYearSource = payload.Source
		}
		if payload.LastUpdated != nil && *payload.LastUpdated != "" {
			ay.AcademicYearLastUpdated = parseISOPtr(payload.LastUpdated)
		}

		if err := tx.Save(&ay).Error; err != nil {
			return err
		}

		// Replace, never merge: the staged set is the whole truth for the year.
		if err := tx.Where("academic_term_year_id = ?", ay.AcademicYearID).
			Delete(&model.AcademicTermModel{}).Error; err != nil {
			return err
		}

		terms := make([]model.AcademicTermModel, 0, len(payload.Terms))
		for _, t := range payload.Terms {
			name := t.Name
			if name == "" {
				name = fmt.Sprintf("Term %d", t.Number)
			}
			terms = append(terms, model.AcademicTermModel{
				AcademicTermYearID:    ay.AcademicYearID,
				AcademicTermNumber:    t.Number,
				AcademicTermName:      name,
				AcademicTermStartDate: parseISOPtr(t.StartDate),
				AcademicTermEndDate:   parseISOPtr(t.EndDate),
				AcademicTermWeeks:     t.Weeks,
				AcademicTermRaw:       strPtrOrNil(t.Raw),
			})
		}
		if err := tx.Create(&terms).Error; err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				"staged terms rejected: "+err.Error())
		}
		ay.Terms = terms
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[YEAR_CONFIG] confirmed %d with %d term(s)", year, len(ay.Terms))
	resp := dto.FromYearModel(ay)
	return &resp, nil
}

// ---- staging ----

func (s *yearConfigService) loadStage(ctx context.Context, year int) (*dto.StagedPayload, error) {
	var row model.TermDateStagingModel
	err := s.db.WithContext(ctx).
		Where("term_date_staging_year = ?", year).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var payload dto.StagedPayload
	if err := sonic.Unmarshal(row.TermDateStagingPayload, &payload); err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			"staged payload unreadable: "+err.Error())
	}
	return &payload, nil
}

func (s *yearConfigService) saveStage(ctx context.Context, payload *dto.StagedPayload) error {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return err
	}

	var row model.TermDateStagingModel
	err = s.db.WithContext(ctx).
		Where("term_date_staging_year = ?", payload.Year).
		Take(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	row.TermDateStagingYear = payload.Year
	row.TermDateStagingSource = payload.Source
	row.TermDateStagingPayload = datatypes.JSON(raw)
	return s.db.WithContext(ctx).Save(&row).Error
}

// ---- small helpers ----

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseISOPtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
