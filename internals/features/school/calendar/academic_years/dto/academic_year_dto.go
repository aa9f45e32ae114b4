// file: internals/features/school/calendar/academic_years/dto/academic_year_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"classtrack_backend/internals/features/school/calendar/academic_years/model"
	"classtrack_backend/internals/features/school/calendar/academic_years/parser"
)

// =======================
// Request DTO
// =======================

type YearScrapeRequest struct {
	Year int `json:"year" validate:"required,min=2000,max=2100"`
}

// YearConfirmRequest commits the staged payload for a year. Payload, when
// set, replaces whatever stage exists (manual upload path); otherwise the
// previously staged scrape is committed.
type YearConfirmRequest struct {
	Year    int            `json:"year" validate:"required,min=2000,max=2100"`
	Payload *StagedPayload `json:"payload,omitempty"`
}

// =======================
// Staged payload
// =======================

// StagedPayload is the JSON shape stored in term_date_stagings and accepted
// on manual confirm. Terms hold ISO date strings, not time.Time, so raw
// scraper output round-trips byte-for-byte.
type StagedPayload struct {
	Source      *string             `json:"source,omitempty"`
	LastUpdated *string             `json:"last_updated,omitempty"`
	Year        int                 `json:"year"`
	Terms       []parser.TermRecord `json:"terms"`
}

// =======================
// Response DTO
// =======================

type AcademicTermResponse struct {
	AcademicTermID        uuid.UUID `json:"academic_term_id"`
	AcademicTermNumber    int       `json:"academic_term_number"`
	AcademicTermName      string    `json:"academic_term_name"`
	AcademicTermStartDate *string   `json:"academic_term_start_date,omitempty"`
	AcademicTermEndDate   *string   `json:"academic_term_end_date,omitempty"`
	AcademicTermWeeks     *int      `json:"academic_term_weeks,omitempty"`
	AcademicTermRaw       *string   `json:"academic_term_raw,omitempty"`
}

type AcademicYearResponse struct {
	AcademicYearID          uuid.UUID  `json:"academic_year_id"`
	AcademicYearYear        int        `json:"academic_year_year"`
	AcademicYearSource      *string    `json:"academic_year_source,omitempty"`
	AcademicYearLastUpdated *string    `json:"academic_year_last_updated,omitempty"`
	AcademicYearCreatedAt   time.Time  `json:"academic_year_created_at"`
	AcademicYearUpdatedAt   time.Time  `json:"academic_year_updated_at"`

	Terms []AcademicTermResponse `json:"terms"`
}

// YearSetupResponse is the year-configuration preview: the committed year
// (when one exists) next to the staged-but-unconfirmed payload (when one
// exists). Either side may be null.
type YearSetupResponse struct {
	Year     int                   `json:"year"`
	Existing *AcademicYearResponse `json:"existing"`
	Staged   *StagedPayload        `json:"staged"`
}

// =======================
// Mappers
// =======================

func isoDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func FromTermModel(ent model.AcademicTermModel) AcademicTermResponse {
	return AcademicTermResponse{
		AcademicTermID:        ent.AcademicTermID,
		AcademicTermNumber:    ent.AcademicTermNumber,
		AcademicTermName:      ent.AcademicTermName,
		AcademicTermStartDate: isoDatePtr(ent.AcademicTermStartDate),
		AcademicTermEndDate:   isoDatePtr(ent.AcademicTermEndDate),
		AcademicTermWeeks:     ent.AcademicTermWeeks,
		AcademicTermRaw:       ent.AcademicTermRaw,
	}
}

func FromYearModel(ent model.AcademicYearModel) AcademicYearResponse {
	resp := AcademicYearResponse{
		AcademicYearID:          ent.AcademicYearID,
		AcademicYearYear:        ent.AcademicYearYear,
		AcademicYearSource:      ent.AcademicYearSource,
		AcademicYearLastUpdated: isoDatePtr(ent.AcademicYearLastUpdated),
		AcademicYearCreatedAt:   ent.AcademicYearCreatedAt,
		AcademicYearUpdatedAt:   ent.AcademicYearUpdatedAt,
		Terms:                   make([]AcademicTermResponse, 0, len(ent.Terms)),
	}
	for _, t := range ent.Terms {
		resp.Terms = append(resp.Terms, FromTermModel(t))
	}
	return resp
}
