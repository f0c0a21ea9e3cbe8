package migrations

import (
	"database/sql"
	"fmt"

	"smartpay/backend/database"
)

// CreateBaseSchema creates the residents, payments and dues tables.
func CreateBaseSchema(db *sql.DB, dialect database.Dialect) error {
	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS residents (
			id TEXT PRIMARY KEY,
			household_name TEXT NOT NULL,
			house_block TEXT NOT NULL,
			email TEXT NOT NULL,
			created_at %s
		)`, dialect.TimestampColumn()),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS payments (
			id %s,
			resident_id TEXT NOT NULL,
			month TEXT NOT NULL,
			year TEXT NOT NULL,
			status TEXT NOT NULL,
			proof_url TEXT NOT NULL DEFAULT '',
			created_at %s
		)`, dialect.IDColumn(), dialect.TimestampColumn()),

		`CREATE INDEX IF NOT EXISTS idx_payments_resident ON payments (resident_id)`,

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS dues (
			id %s,
			house_block TEXT NOT NULL,
			month TEXT NOT NULL,
			year TEXT NOT NULL,
			amount TEXT NOT NULL,
			status TEXT NOT NULL
		)`, dialect.IDColumn()),
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create base schema: %w", err)
		}
	}
	return nil
}
