package migrations

import (
	"database/sql"
	"fmt"

	"smartpay/backend/database"
)

// AddAccountProfile keeps the sign-up household data on local accounts so login can
// recreate a missing resident row.
func AddAccountProfile(db *sql.DB, dialect database.Dialect) error {
	for _, column := range []string{"household_name", "house_block"} {
		exists, err := columnExists(db, dialect, "accounts", column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := db.Exec(fmt.Sprintf(`ALTER TABLE accounts ADD COLUMN %s TEXT NOT NULL DEFAULT ''`, column)); err != nil {
			return fmt.Errorf("error adding %s column: %w", column, err)
		}
	}
	return nil
}
