package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartpay/backend/database"
	"smartpay/backend/models"
)

const filterColumns = `
	SELECT id, name, user_id, resource_type, filter_config, is_default, created_at, updated_at
	FROM saved_filters`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFilter(row scanner) (models.SavedFilter, error) {
	var f models.SavedFilter
	err := row.Scan(&f.ID, &f.Name, &f.UserID, &f.ResourceType, &f.FilterConfig, &f.IsDefault, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (s *SQLStore) ListSavedFilters(ctx context.Context, userID, resourceType string) ([]models.SavedFilter, error) {
	rows, err := s.db.QueryContext(ctx, s.q(filterColumns+`
		WHERE user_id = ? AND resource_type = ?
		ORDER BY name
	`), userID, resourceType)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved filters: %w", err)
	}
	defer rows.Close()

	filters := []models.SavedFilter{}
	for rows.Next() {
		f, err := scanFilter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved filter: %w", err)
		}
		filters = append(filters, f)
	}
	return filters, rows.Err()
}

func (s *SQLStore) GetSavedFilter(ctx context.Context, id string) (*models.SavedFilter, error) {
	f, err := scanFilter(s.db.QueryRowContext(ctx, s.q(filterColumns+` WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved filter: %w", err)
	}
	return &f, nil
}

// InsertSavedFilter stores f. A default filter clears the previous default for the
// same user and resource in the same transaction.
func (s *SQLStore) InsertSavedFilter(ctx context.Context, f models.SavedFilter) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if f.IsDefault {
			if err := s.clearDefault(ctx, tx, f.UserID, f.ResourceType); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO saved_filters (id, name, user_id, resource_type, filter_config, is_default, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`), f.ID, f.Name, f.UserID, f.ResourceType, f.FilterConfig, f.IsDefault, f.CreatedAt, f.UpdatedAt)
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		if err != nil {
			return fmt.Errorf("failed to insert saved filter: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) UpdateSavedFilter(ctx context.Context, f models.SavedFilter) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if f.IsDefault {
			if err := s.clearDefault(ctx, tx, f.UserID, f.ResourceType); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, s.q(`
			UPDATE saved_filters
			SET name = ?, filter_config = ?, is_default = ?, updated_at = ?
			WHERE id = ?
		`), f.Name, f.FilterConfig, f.IsDefault, f.UpdatedAt, f.ID)
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		if err != nil {
			return fmt.Errorf("failed to update saved filter: %w", err)
		}
		return expectRow(res)
	})
}

func (s *SQLStore) DeleteSavedFilter(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM saved_filters WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete saved filter: %w", err)
	}
	return expectRow(res)
}

func (s *SQLStore) clearDefault(ctx context.Context, tx *sql.Tx, userID, resourceType string) error {
	_, err := tx.ExecContext(ctx, s.q(`
		UPDATE saved_filters
		SET is_default = ?
		WHERE user_id = ? AND resource_type = ?
	`), false, userID, resourceType)
	if err != nil {
		return fmt.Errorf("failed to update existing default filters: %w", err)
	}
	return nil
}

func (s *SQLStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
