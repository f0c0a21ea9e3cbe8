package migrations

import (
	"database/sql"
	"fmt"

	"smartpay/backend/database"
)

// AddPaymentType adds the nullable payment_type column. Rows written before it
// keep NULL, which readers treat as an absent type.
func AddPaymentType(db *sql.DB, dialect database.Dialect) error {
	exists, err := columnExists(db, dialect, "payments", "payment_type")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := db.Exec(`ALTER TABLE payments ADD COLUMN payment_type TEXT`); err != nil {
		return fmt.Errorf("error adding payment_type column: %w", err)
	}
	return nil
}
