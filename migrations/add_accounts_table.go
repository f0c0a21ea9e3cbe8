package migrations

import (
	"database/sql"
	"fmt"

	"smartpay/backend/database"
)

// AddAccountsTable stores email/password accounts for the local auth provider.
func AddAccountsTable(db *sql.DB, dialect database.Dialect) error {
	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS accounts (
			email TEXT PRIMARY KEY,
			uid TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at %s
		)
	`, dialect.TimestampColumn()))
	if err != nil {
		return fmt.Errorf("failed to create accounts table: %w", err)
	}
	return nil
}
