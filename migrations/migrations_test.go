package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap/zaptest"

	"smartpay/backend/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Error opening database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunAppliesAllMigrations(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)

	if err := Run(db, database.SQLite, logger); err != nil {
		t.Fatalf("Error running migrations: %v", err)
	}

	applied, err := Applied(db)
	if err != nil {
		t.Fatalf("Error listing migrations: %v", err)
	}
	if len(applied) != len(All()) {
		t.Errorf("Expected %d applied migrations, got %d: %v", len(All()), len(applied), applied)
	}

	for _, table := range []string{"residents", "payments", "dues", "accounts", "saved_filters"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&count)
		if err != nil {
			t.Fatalf("Error checking table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("Expected table %s to exist", table)
		}
	}

	for _, col := range []struct{ table, column string }{
		{"payments", "payment_type"},
		{"residents", "is_admin"},
	} {
		exists, err := columnExists(db, database.SQLite, col.table, col.column)
		if err != nil {
			t.Fatalf("Error checking column: %v", err)
		}
		if !exists {
			t.Errorf("Expected column %s.%s to exist", col.table, col.column)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)

	for i := 0; i < 2; i++ {
		if err := Run(db, database.SQLite, logger); err != nil {
			t.Fatalf("Run %d failed: %v", i+1, err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Error counting migrations: %v", err)
	}
	if count != len(All()) {
		t.Errorf("Expected %d recorded migrations, got %d", len(All()), count)
	}
}

func TestAddPaymentTypeKeepsOldRowsNull(t *testing.T) {
	db := setupTestDB(t)

	if err := CreateBaseSchema(db, database.SQLite); err != nil {
		t.Fatalf("Error creating base schema: %v", err)
	}
	if _, err := db.Exec("INSERT INTO payments (resident_id, month, year, status) VALUES ('r1', 'Januari', '2024', 'Sudah Bayar')"); err != nil {
		t.Fatalf("Error inserting legacy payment: %v", err)
	}
	if err := AddPaymentType(db, database.SQLite); err != nil {
		t.Fatalf("Error adding payment_type: %v", err)
	}
	// Second application is a no-op.
	if err := AddPaymentType(db, database.SQLite); err != nil {
		t.Fatalf("Error re-applying payment_type: %v", err)
	}

	var paymentType sql.NullString
	if err := db.QueryRow("SELECT payment_type FROM payments").Scan(&paymentType); err != nil {
		t.Fatalf("Error reading payment_type: %v", err)
	}
	if paymentType.Valid {
		t.Errorf("Expected NULL payment_type for legacy row, got %q", paymentType.String)
	}
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)

	if err := Run(db, database.SQLite, logger); err != nil {
		t.Fatalf("Error running migrations: %v", err)
	}
	if err := Seed(db, database.SQLite, logger); err != nil {
		t.Fatalf("Error seeding: %v", err)
	}
	if err := Seed(db, database.SQLite, logger); err != nil {
		t.Fatalf("Error re-seeding: %v", err)
	}

	var residents, payments, admins int
	db.QueryRow("SELECT COUNT(*) FROM residents").Scan(&residents)
	db.QueryRow("SELECT COUNT(*) FROM payments").Scan(&payments)
	db.QueryRow("SELECT COUNT(*) FROM residents WHERE is_admin").Scan(&admins)

	if residents != len(demoResidents) {
		t.Errorf("Expected %d residents, got %d", len(demoResidents), residents)
	}
	if payments != len(demoPayments) {
		t.Errorf("Expected %d payments, got %d", len(demoPayments), payments)
	}
	if admins != 1 {
		t.Errorf("Expected 1 admin, got %d", admins)
	}
}
