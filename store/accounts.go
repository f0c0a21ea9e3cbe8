package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartpay/backend/database"
	"smartpay/backend/models"
)

// InsertAccount stores a local login. Emails are stored lower-cased.
func (s *SQLStore) InsertAccount(ctx context.Context, a models.Account) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO accounts (email, uid, password_hash, created_at, household_name, house_block)
		VALUES (?, ?, ?, ?, ?, ?)
	`), strings.ToLower(a.Email), a.UID, a.PasswordHash, a.CreatedAt, a.HouseholdName, a.HouseBlock)
	if database.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (s *SQLStore) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT email, uid, password_hash, created_at, household_name, house_block
		FROM accounts
		WHERE email = ?
	`), strings.ToLower(email)).Scan(&a.Email, &a.UID, &a.PasswordHash, &a.CreatedAt, &a.HouseholdName, &a.HouseBlock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}
