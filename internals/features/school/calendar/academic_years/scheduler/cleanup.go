// file: internals/features/school/calendar/academic_years/scheduler/cleanup.go
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"classtrack_backend/internals/features/school/calendar/academic_years/model"
)

// StartStagingCleanupScheduler drops scraped staging payloads that were
// never confirmed. A stage only matters between scrape and confirm, so
// anything untouched for the TTL is leftover.
func StartStagingCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 30
		if val := os.Getenv("STAGING_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				ttlDays = parsed
			}
		}

		for {
			log.Println("[CLEANUP] sweeping stale term date stagings...")

			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			res := db.
				Where("term_date_staging_updated_at < ?", deleteBefore).
				Delete(&model.TermDateStagingModel{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] staging sweep failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] removed %d stale staging row(s)", res.RowsAffected)
			} else {
				log.Println("[CLEANUP] no stale stagings found")
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
