// file: internals/features/school/calendar/academic_years/model/academic_year_model.go
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicYearModel is the top-level calendar container for one school year.
// Terms are owned exclusively by their year: on re-confirmation the whole
// term set is replaced, never merged.
type AcademicYearModel struct {
	AcademicYearID uuid.UUID `gorm:"type:uuid;primaryKey;column:academic_year_id" json:"academic_year_id"`

	// Calendar year, e.g. 2025
	AcademicYearYear int `gorm:"not null;column:academic_year_year;uniqueIndex:uq_academic_year_year" json:"academic_year_year"`

	// Provenance, e.g. the scrape URL
	AcademicYearSource      *string    `gorm:"type:varchar(255);column:academic_year_source" json:"academic_year_source,omitempty"`
	AcademicYearLastUpdated *time.Time `gorm:"type:date;column:academic_year_last_updated" json:"academic_year_last_updated,omitempty"`

	AcademicYearCreatedAt time.Time `gorm:"column:academic_year_created_at;not null;autoCreateTime" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time `gorm:"column:academic_year_updated_at;not null;autoUpdateTime" json:"academic_year_updated_at"`

	Terms []AcademicTermModel `gorm:"foreignKey:AcademicTermYearID;references:AcademicYearID;constraint:OnDelete:CASCADE" json:"terms,omitempty"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

func (m *AcademicYearModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicYearID == uuid.Nil {
		m.AcademicYearID = uuid.New()
	}
	return nil
}

// AcademicTermModel is one of the four teaching periods within a year.
// Dates may be null when the source line could not be parsed; generation
// refuses to run off undated terms.
type AcademicTermModel struct {
	AcademicTermID uuid.UUID `gorm:"type:uuid;primaryKey;column:academic_term_id" json:"academic_term_id"`

	AcademicTermYearID uuid.UUID `gorm:"type:uuid;not null;column:academic_term_year_id;uniqueIndex:uq_year_term_number" json:"academic_term_year_id"`
	AcademicTermNumber int       `gorm:"not null;column:academic_term_number;uniqueIndex:uq_year_term_number" json:"academic_term_number"`

	AcademicTermName      string     `gorm:"type:varchar(50);not null;column:academic_term_name" json:"academic_term_name"`
	AcademicTermStartDate *time.Time `gorm:"type:date;column:academic_term_start_date" json:"academic_term_start_date,omitempty"`
	AcademicTermEndDate   *time.Time `gorm:"type:date;column:academic_term_end_date" json:"academic_term_end_date,omitempty"`
	AcademicTermWeeks     *int       `gorm:"column:academic_term_weeks" json:"academic_term_weeks,omitempty"`

	// Original matched text, kept for audit/debugging
	AcademicTermRaw *string `gorm:"type:text;column:academic_term_raw" json:"academic_term_raw,omitempty"`

	AcademicTermCreatedAt time.Time `gorm:"column:academic_term_created_at;not null;autoCreateTime" json:"academic_term_created_at"`
	AcademicTermUpdatedAt time.Time `gorm:"column:academic_term_updated_at;not null;autoUpdateTime" json:"academic_term_updated_at"`
}

func (AcademicTermModel) TableName() string { return "academic_terms" }

func (m *AcademicTermModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicTermID == uuid.Nil {
		m.AcademicTermID = uuid.New()
	}
	return nil
}

func (m *AcademicTermModel) BeforeSave(tx *gorm.DB) error {
	if m.AcademicTermNumber < 1 || m.AcademicTermNumber > 4 {
		return errors.New("academic_term_number must be between 1 and 4")
	}
	// Mirror CHECK: end >= start (only when both are set)
	if m.AcademicTermStartDate != nil && m.AcademicTermEndDate != nil &&
		m.AcademicTermEndDate.Before(*m.AcademicTermStartDate) {
		return errors.New("academic_term_end_date must be >= academic_term_start_date")
	}
	m.AcademicTermName = strings.TrimSpace(m.AcademicTermName)
	if m.AcademicTermName == "" {
		m.AcademicTermName = fmt.Sprintf("Term %d", m.AcademicTermNumber)
	}
	return nil
}

// Covers reports whether d falls inside the term's inclusive date range.
// Terms with missing dates cover nothing.
func (m *AcademicTermModel) Covers(d time.Time) bool {
	if m.AcademicTermStartDate == nil || m.AcademicTermEndDate == nil {
		return false
	}
	return !d.Before(*m.AcademicTermStartDate) && !d.After(*m.AcademicTermEndDate)
}

// Dated reports whether both term boundaries are known.
func (m *AcademicTermModel) Dated() bool {
	return m.AcademicTermStartDate != nil && m.AcademicTermEndDate != nil
}
