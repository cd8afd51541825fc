package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the Postgres-only indexes the public listing search relies on
func MigrateConstraints(db *gorm.DB) error {
	// Approved listings are filtered by start date on every local search
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_approved_start
		ON listings (start_date)
		WHERE status = 'approved';
	`).Error
	if err != nil {
		return err
	}

	// Moderation queue ordering
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_status_created
		ON listings (status, created_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
