package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartpay/backend/listview"
	"smartpay/backend/models"
	"smartpay/backend/store"
)

// FilterService manages saved filters for the payment views.
type FilterService struct {
	store  store.RecordStore
	policy AuthorizationPolicy
	now    func() time.Time
}

func NewFilterService(rs store.RecordStore, policy AuthorizationPolicy) *FilterService {
	return &FilterService{store: rs, policy: policy, now: time.Now}
}

// SavedFilterInput is the body of a create or update request.
type SavedFilterInput struct {
	Name         string `json:"name"`
	FilterConfig string `json:"filterConfig"`
	IsDefault    bool   `json:"isDefault"`
}

// DecodeFilterConfig parses a stored filter configuration into engine criteria and
// sort. Unknown fields and directions are rejected.
func DecodeFilterConfig(raw string) (listview.Criteria, listview.SortSpec, error) {
	var cfg models.PaymentFilterConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, listview.SortSpec{}, fmt.Errorf("invalid filter configuration JSON: %w", err)
	}

	criteria := make(listview.Criteria, len(cfg.Filters))
	for name, pattern := range cfg.Filters {
		f := listview.ParseField(name)
		if f == listview.FieldNone {
			return nil, listview.SortSpec{}, fmt.Errorf("unknown filter field %q", name)
		}
		criteria[f] = pattern
	}

	sort := listview.SortSpec{Field: listview.FieldNone, Direction: listview.Asc}
	if cfg.SortField != "" {
		sort.Field = listview.ParseField(cfg.SortField)
		if sort.Field == listview.FieldNone {
			return nil, listview.SortSpec{}, fmt.Errorf("unknown sort field %q", cfg.SortField)
		}
	}
	switch strings.ToLower(cfg.SortOrder) {
	case "", "asc":
	case "desc":
		sort.Direction = listview.Desc
	default:
		return nil, listview.SortSpec{}, fmt.Errorf("invalid sort order %q", cfg.SortOrder)
	}
	return criteria, sort, nil
}

func (s *FilterService) validate(in SavedFilterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewUserError("Nama filter wajib diisi.", ErrInvalidInput)
	}
	if _, _, err := DecodeFilterConfig(in.FilterConfig); err != nil {
		return NewUserError("Konfigurasi filter tidak valid.", fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	return nil
}

// List returns the user's saved payment filters.
func (s *FilterService) List(ctx context.Context, userID string) ([]models.SavedFilter, error) {
	if s.store == nil {
		return []models.SavedFilter{}, nil
	}
	return s.store.ListSavedFilters(ctx, userID, models.ResourcePayments)
}

// Get returns a filter the caller owns. Admins may read any filter.
func (s *FilterService) Get(ctx context.Context, caller models.Identity, id string) (*models.SavedFilter, error) {
	if s.store == nil {
		return nil, unavailable()
	}
	f, err := s.store.GetSavedFilter(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if f.UserID != caller.UID && !s.policy.IsAdmin(ctx, caller) {
		return nil, ErrForbidden
	}
	return f, nil
}

func (s *FilterService) Create(ctx context.Context, caller models.Identity, in SavedFilterInput) (*models.SavedFilter, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, unavailable()
	}

	id, err := generateID()
	if err != nil {
		return nil, err
	}
	now := s.now()
	f := models.SavedFilter{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		UserID:       caller.UID,
		ResourceType: models.ResourcePayments,
		FilterConfig: in.FilterConfig,
		IsDefault:    in.IsDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.InsertSavedFilter(ctx, f); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, NewUserError("Nama filter sudah dipakai.", ErrInvalidInput)
		}
		return nil, err
	}
	return &f, nil
}

// Update changes a filter the caller owns.
func (s *FilterService) Update(ctx context.Context, caller models.Identity, id string, in SavedFilterInput) (*models.SavedFilter, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	f, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	f.Name = strings.TrimSpace(in.Name)
	f.FilterConfig = in.FilterConfig
	f.IsDefault = in.IsDefault
	f.UpdatedAt = s.now()
	if err := s.store.UpdateSavedFilter(ctx, *f); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, NewUserError("Nama filter sudah dipakai.", ErrInvalidInput)
		}
		return nil, err
	}
	return f, nil
}

// Delete removes a filter the caller owns.
func (s *FilterService) Delete(ctx context.Context, caller models.Identity, id string) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return err
	}
	return s.store.DeleteSavedFilter(ctx, id)
}

// Apply loads a filter the caller may read and returns its criteria and sort.
func (s *FilterService) Apply(ctx context.Context, caller models.Identity, id string) (listview.Criteria, listview.SortSpec, error) {
	f, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, listview.SortSpec{}, err
	}
	return DecodeFilterConfig(f.FilterConfig)
}

func (s *FilterService) owned(ctx context.Context, caller models.Identity, id string) (*models.SavedFilter, error) {
	if s.store == nil {
		return nil, unavailable()
	}
	f, err := s.store.GetSavedFilter(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if f.UserID != caller.UID {
		return nil, ErrForbidden
	}
	return f, nil
}

func generateID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
