package migrations

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"smartpay/backend/database"
)

type seedResident struct {
	id, name, block, email string
	admin                  bool
}

var demoResidents = []seedResident{
	{"demo-admin", "Pengurus RT", "A1", "admin@smartpay.local", true},
	{"demo-budi", "Budi Santoso", "B3", "budi@smartpay.local", false},
	{"demo-siti", "Siti Aminah", "C7", "siti@smartpay.local", false},
}

var demoPayments = []struct {
	residentID, month, year, paymentType, status string
}{
	{"demo-budi", "Januari", "2025", "IPL", "Sudah Bayar"},
	{"demo-budi", "Februari", "2025", "IPL", "Sudah Bayar"},
	{"demo-budi", "Februari", "2025", "CCTV", "Belum Bayar"},
	{"demo-siti", "Januari", "2025", "Iuran Bulanan Gang H Genap J Ganjil", "Sudah Bayar"},
	{"demo-siti", "Maret", "2025", "Dan lain lain", "Sudah Bayar"},
}

var demoDues = []struct {
	block, month, year, amount, status string
}{
	{"B3", "Januari", "2025", "150000", "Lunas"},
	{"C7", "Januari", "2025", "150000", "Belum"},
}

// Seed inserts demo residents, payments and dues into an empty database. It does
// nothing once any resident exists.
func Seed(db *sql.DB, dialect database.Dialect, logger *zap.Logger) (err error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM residents").Scan(&count); err != nil {
		return fmt.Errorf("failed to count residents: %w", err)
	}
	if count > 0 {
		logger.Info("Skipping demo data seeding, residents already exist", zap.Int("residents", count))
		return nil
	}

	logger.Info("Seeding demo data...")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, r := range demoResidents {
		_, err = tx.Exec(dialect.Rebind(`
			INSERT INTO residents (id, household_name, house_block, email, is_admin)
			VALUES (?, ?, ?, ?, ?)
		`), r.id, r.name, r.block, r.email, r.admin)
		if err != nil {
			return fmt.Errorf("failed to insert resident %s: %w", r.id, err)
		}
	}

	for _, p := range demoPayments {
		_, err = tx.Exec(dialect.Rebind(`
			INSERT INTO payments (resident_id, month, year, payment_type, status)
			VALUES (?, ?, ?, ?, ?)
		`), p.residentID, p.month, p.year, p.paymentType, p.status)
		if err != nil {
			return fmt.Errorf("failed to insert payment for %s: %w", p.residentID, err)
		}
	}

	for _, d := range demoDues {
		_, err = tx.Exec(dialect.Rebind(`
			INSERT INTO dues (house_block, month, year, amount, status)
			VALUES (?, ?, ?, ?, ?)
		`), d.block, d.month, d.year, d.amount, d.status)
		if err != nil {
			return fmt.Errorf("failed to insert dues for %s: %w", d.block, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	logger.Info("Demo data seeded",
		zap.Int("residents", len(demoResidents)),
		zap.Int("payments", len(demoPayments)),
		zap.Int("dues", len(demoDues)))
	return nil
}
