// Package store is the record source behind every service: payments joined with
// their residents, dues, saved filters and local accounts.
package store

import (
	"context"
	"errors"
	"io"

	"smartpay/backend/models"
)

var (
	// ErrNotFound is returned when a keyed lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique key.
	ErrDuplicate = errors.New("record already exists")
)

// Scope narrows a payment fetch. An empty ResidentID selects every resident.
type Scope struct {
	ResidentID string
}

// RecordStore is the injected persistence collaborator. Services treat a nil
// RecordStore as "backend not configured".
type RecordStore interface {
	// ListPayments returns the scope's payments, most recent first, joined with
	// resident identity where the resident exists.
	ListPayments(ctx context.Context, scope Scope) ([]models.PaymentRecord, error)
	InsertPayment(ctx context.Context, p *models.PaymentRecord) error
	UploadProof(ctx context.Context, name, contentType string, r io.Reader) (string, error)

	GetResident(ctx context.Context, id string) (*models.Resident, error)
	InsertResident(ctx context.Context, r models.Resident) error

	ListDues(ctx context.Context) ([]models.Dues, error)
	InsertDues(ctx context.Context, d *models.Dues) error
	UpdateDues(ctx context.Context, d models.Dues) error
	DeleteDues(ctx context.Context, id int64) error

	ListSavedFilters(ctx context.Context, userID, resourceType string) ([]models.SavedFilter, error)
	GetSavedFilter(ctx context.Context, id string) (*models.SavedFilter, error)
	InsertSavedFilter(ctx context.Context, f models.SavedFilter) error
	UpdateSavedFilter(ctx context.Context, f models.SavedFilter) error
	DeleteSavedFilter(ctx context.Context, id string) error

	InsertAccount(ctx context.Context, a models.Account) error
	GetAccount(ctx context.Context, email string) (*models.Account, error)
}
