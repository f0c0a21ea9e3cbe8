package migrations

import (
	"database/sql"
	"fmt"

	"smartpay/backend/database"
)

// AddResidentAdminFlag adds residents.is_admin, read by the flag authorization policy.
func AddResidentAdminFlag(db *sql.DB, dialect database.Dialect) error {
	exists, err := columnExists(db, dialect, "residents", "is_admin")
	if err != nil {
		return err
	}
	if !exists {
		if _, err := db.Exec(`ALTER TABLE residents ADD COLUMN is_admin BOOLEAN NOT NULL DEFAULT FALSE`); err != nil {
			return fmt.Errorf("error adding is_admin column: %w", err)
		}
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_residents_email ON residents (email)`); err != nil {
		return fmt.Errorf("failed to create residents email index: %w", err)
	}
	return nil
}
