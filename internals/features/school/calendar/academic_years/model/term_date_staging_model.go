// file: internals/features/school/calendar/academic_years/model/term_date_staging_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TermDateStagingModel holds one scraped-but-unconfirmed payload per year.
// Confirmation reads it; it never touches academic_years/academic_terms
// itself. Keyed by year so a re-scrape simply overwrites the previous stage.
type TermDateStagingModel struct {
	TermDateStagingID uuid.UUID `gorm:"type:uuid;primaryKey;column:term_date_staging_id" json:"term_date_staging_id"`

	TermDateStagingYear   int            `gorm:"not null;column:term_date_staging_year;uniqueIndex:uq_term_date_staging_year" json:"term_date_staging_year"`
	TermDateStagingSource *string        `gorm:"type:varchar(255);column:term_date_staging_source" json:"term_date_staging_source,omitempty"`
	TermDateStagingPayload datatypes.JSON `gorm:"column:term_date_staging_payload;not null" json:"term_date_staging_payload"`

	TermDateStagingCreatedAt time.Time `gorm:"column:term_date_staging_created_at;not null;autoCreateTime" json:"term_date_staging_created_at"`
	TermDateStagingUpdatedAt time.Time `gorm:"column:term_date_staging_updated_at;not null;autoUpdateTime" json:"term_date_staging_updated_at"`
}

func (TermDateStagingModel) TableName() string { return "term_date_stagings" }

func (m *TermDateStagingModel) BeforeCreate(tx *gorm.DB) error {
	if m.TermDateStagingID == uuid.Nil {
		m.TermDateStagingID = uuid.New()
	}
	return nil
}
