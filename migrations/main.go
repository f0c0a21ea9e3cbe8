package migrations

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"smartpay/backend/database"
)

// Migration is one named schema change. Applied names are recorded in the
// migrations table and never run twice.
type Migration struct {
	Name string
	Up   func(db *sql.DB, dialect database.Dialect) error
}

// All returns every migration in application order.
func All() []Migration {
	return []Migration{
		{"base_schema", CreateBaseSchema},
		{"add_payment_type", AddPaymentType},
		{"add_resident_admin_flag", AddResidentAdminFlag},
		{"add_accounts_table", AddAccountsTable},
		{"add_saved_filters", AddSavedFilters},
		{"add_account_profile", AddAccountProfile},
	}
}

// Run executes all pending migrations in order.
func Run(db *sql.DB, dialect database.Dialect, logger *zap.Logger) error {
	logger.Info("Running migrations...")

	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS migrations (
			name TEXT PRIMARY KEY,
			applied_at %s
		)
	`, dialect.TimestampColumn()))
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range All() {
		applied, err := isApplied(db, dialect, migration.Name)
		if err != nil {
			return err
		}
		if applied {
			logger.Debug("Skipping already applied migration", zap.String("name", migration.Name))
			continue
		}

		logger.Info("Applying migration", zap.String("name", migration.Name))
		if err := migration.Up(db, dialect); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Name, err)
		}

		if _, err := db.Exec(dialect.Rebind("INSERT INTO migrations (name) VALUES (?)"), migration.Name); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
	}

	logger.Info("All migrations completed successfully")
	return nil
}

// Applied lists the names of recorded migrations.
func Applied(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT name FROM migrations ORDER BY applied_at, name")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func isApplied(db *sql.DB, dialect database.Dialect, name string) (bool, error) {
	var count int
	err := db.QueryRow(dialect.Rebind("SELECT COUNT(*) FROM migrations WHERE name = ?"), name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// columnExists checks the live schema so column migrations stay idempotent on
// databases created before the migrations table existed.
func columnExists(db *sql.DB, dialect database.Dialect, table, column string) (bool, error) {
	var query string
	switch dialect {
	case database.Postgres:
		query = `SELECT COUNT(*) FROM information_schema.columns WHERE table_name = $1 AND column_name = $2`
	default:
		query = `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`
	}

	var count int
	if err := db.QueryRow(query, table, column).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking for %s.%s column: %w", table, column, err)
	}
	return count > 0, nil
}
