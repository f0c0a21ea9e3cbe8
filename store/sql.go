package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"smartpay/backend/blob"
	"smartpay/backend/database"
	"smartpay/backend/models"
)

// SQLStore implements RecordStore over database/sql for SQLite and PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
	blobs   blob.Store
}

// NewSQLStore wraps an open, migrated database. blobs may be nil, in which case
// proof uploads fail.
func NewSQLStore(db *sql.DB, dialect database.Dialect, blobs blob.Store) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, blobs: blobs}
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) q(query string) string {
	return s.dialect.Rebind(query)
}

const paymentColumns = `
	SELECT p.id, p.resident_id, p.month, p.year, p.payment_type, p.status, p.proof_url, p.created_at,
	       r.household_name, r.house_block, r.email
	FROM payments p
	LEFT JOIN residents r ON r.id = p.resident_id`

func (s *SQLStore) ListPayments(ctx context.Context, scope Scope) ([]models.PaymentRecord, error) {
	query := paymentColumns
	var args []interface{}
	if scope.ResidentID != "" {
		query += " WHERE p.resident_id = ?"
		args = append(args, scope.ResidentID)
	}
	query += " ORDER BY p.id DESC"

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	records := []models.PaymentRecord{}
	for rows.Next() {
		var (
			p                  models.PaymentRecord
			paymentType        sql.NullString
			name, block, email sql.NullString
		)
		err := rows.Scan(&p.ID, &p.ResidentID, &p.Month, &p.Year, &paymentType, &p.Status, &p.ProofURL, &p.CreatedAt,
			&name, &block, &email)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if paymentType.Valid {
			p.PaymentType = models.StringPtr(paymentType.String)
		}
		// LEFT JOIN: all three are NULL together when the resident row is missing.
		if name.Valid {
			p.Resident = &models.ResidentRef{
				HouseholdName: name.String,
				HouseBlock:    block.String,
				Email:         email.String,
			}
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}
	return records, nil
}

// InsertPayment stores p and fills in its ID and CreatedAt.
func (s *SQLStore) InsertPayment(ctx context.Context, p *models.PaymentRecord) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	var paymentType interface{}
	if p.PaymentType != nil {
		paymentType = *p.PaymentType
	}

	err := s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO payments (resident_id, month, year, payment_type, status, proof_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), p.ResidentID, p.Month, p.Year, paymentType, p.Status, p.ProofURL, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (s *SQLStore) UploadProof(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if s.blobs == nil {
		return "", errors.New("proof storage is not configured")
	}
	return s.blobs.Put(ctx, name, contentType, r)
}

func (s *SQLStore) GetResident(ctx context.Context, id string) (*models.Resident, error) {
	var r models.Resident
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT id, household_name, house_block, email, is_admin
		FROM residents
		WHERE id = ?
	`), id).Scan(&r.ID, &r.HouseholdName, &r.HouseBlock, &r.Email, &r.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}
	return &r, nil
}

func (s *SQLStore) InsertResident(ctx context.Context, r models.Resident) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO residents (id, household_name, house_block, email, is_admin)
		VALUES (?, ?, ?, ?, ?)
	`), r.ID, r.HouseholdName, r.HouseBlock, r.Email, r.IsAdmin)
	if database.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert resident: %w", err)
	}
	return nil
}
