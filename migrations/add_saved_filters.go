package migrations

import (
	"database/sql"
	"fmt"

	"smartpay/backend/database"
)

// AddSavedFilters creates the saved_filters table.
func AddSavedFilters(db *sql.DB, dialect database.Dialect) error {
	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS saved_filters (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			user_id TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			filter_config TEXT NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at %s,
			updated_at %s,
			UNIQUE(name, user_id, resource_type)
		)
	`, dialect.TimestampColumn(), dialect.TimestampColumn()))
	if err != nil {
		return fmt.Errorf("failed to create saved_filters table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_saved_filters_user ON saved_filters (user_id, resource_type)`)
	if err != nil {
		return fmt.Errorf("failed to create saved_filters index: %w", err)
	}
	return nil
}
