package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"smartpay/backend/models"
	"smartpay/backend/store"
)

// DuesService maintains the monthly dues table.
type DuesService struct {
	store  store.RecordStore
	logger *zap.Logger
}

func NewDuesService(rs store.RecordStore, logger *zap.Logger) *DuesService {
	return &DuesService{store: rs, logger: logger}
}

// ValidateDues trims d and checks every field.
func ValidateDues(d *models.Dues) error {
	d.HouseBlock = strings.TrimSpace(d.HouseBlock)
	d.Month = strings.TrimSpace(d.Month)
	d.Year = strings.TrimSpace(d.Year)

	if d.HouseBlock == "" || d.Month == "" || d.Year == "" {
		return NewUserError("Blok, bulan, dan tahun wajib diisi.", ErrInvalidInput)
	}
	if d.Status != models.DuesStatusPaid && d.Status != models.DuesStatusUnpaid {
		return NewUserError(fmt.Sprintf("Status harus %s atau %s.", models.DuesStatusPaid, models.DuesStatusUnpaid), ErrInvalidInput)
	}
	if !d.Amount.Valid {
		return NewUserError("Nominal wajib diisi.", ErrInvalidInput)
	}
	if d.Amount.Decimal.IsNegative() {
		return NewUserError("Nominal tidak boleh negatif.", ErrInvalidInput)
	}
	return nil
}

// List returns every dues row, newest first. An unconfigured store yields none.
func (s *DuesService) List(ctx context.Context) ([]models.Dues, error) {
	if s.store == nil {
		return []models.Dues{}, nil
	}
	return s.store.ListDues(ctx)
}

func (s *DuesService) Create(ctx context.Context, d models.Dues) (*models.Dues, error) {
	if err := ValidateDues(&d); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, unavailable()
	}
	if err := s.store.InsertDues(ctx, &d); err != nil {
		return nil, err
	}
	s.logger.Info("Dues created", zap.Int64("id", d.ID), zap.String("block", d.HouseBlock))
	return &d, nil
}

func (s *DuesService) Update(ctx context.Context, d models.Dues) (*models.Dues, error) {
	if err := ValidateDues(&d); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, unavailable()
	}
	if err := s.store.UpdateDues(ctx, d); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *DuesService) Delete(ctx context.Context, id int64) error {
	if s.store == nil {
		return unavailable()
	}
	if err := s.store.DeleteDues(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
