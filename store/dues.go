package store

import (
	"context"
	"fmt"

	"smartpay/backend/models"
)

func (s *SQLStore) ListDues(ctx context.Context) ([]models.Dues, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, house_block, month, year, amount, status
		FROM dues
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dues: %w", err)
	}
	defer rows.Close()

	dues := []models.Dues{}
	for rows.Next() {
		var d models.Dues
		if err := rows.Scan(&d.ID, &d.HouseBlock, &d.Month, &d.Year, &d.Amount, &d.Status); err != nil {
			return nil, fmt.Errorf("failed to scan dues: %w", err)
		}
		dues = append(dues, d)
	}
	return dues, rows.Err()
}

func (s *SQLStore) InsertDues(ctx context.Context, d *models.Dues) error {
	err := s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO dues (house_block, month, year, amount, status)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), d.HouseBlock, d.Month, d.Year, d.Amount, d.Status).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("failed to insert dues: %w", err)
	}
	return nil
}

func (s *SQLStore) UpdateDues(ctx context.Context, d models.Dues) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE dues
		SET house_block = ?, month = ?, year = ?, amount = ?, status = ?
		WHERE id = ?
	`), d.HouseBlock, d.Month, d.Year, d.Amount, d.Status, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update dues: %w", err)
	}
	return expectRow(res)
}

func (s *SQLStore) DeleteDues(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM dues WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete dues: %w", err)
	}
	return expectRow(res)
}
