package services

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"smartpay/backend/listview"
	"smartpay/backend/models"
	"smartpay/backend/store"
)

// ViewQuery is one request for a list view page.
type ViewQuery struct {
	Filters listview.Criteria
	Sort    listview.SortSpec
	Page    int
}

// PageState turns the requested page into engine pagination at the fixed size.
func (q ViewQuery) PageState() listview.PageState {
	return listview.PageState{CurrentPage: q.Page, PageSize: listview.PageSize}
}

// PaymentService loads payment snapshots and runs the list engine over them.
type PaymentService struct {
	store  store.RecordStore
	logger *zap.Logger
	now    func() time.Time
}

// NewPaymentService accepts a nil store and then serves empty snapshots.
func NewPaymentService(rs store.RecordStore, logger *zap.Logger) *PaymentService {
	return &PaymentService{store: rs, logger: logger, now: time.Now}
}

// FetchAll returns every household's payments, most recent first. It never fails:
// an unconfigured or failing store yields an empty snapshot.
func (s *PaymentService) FetchAll(ctx context.Context) []models.PaymentRecord {
	return s.fetch(ctx, store.Scope{})
}

// FetchForResident returns one household's payments, most recent first.
func (s *PaymentService) FetchForResident(ctx context.Context, uid string) []models.PaymentRecord {
	if uid == "" {
		return []models.PaymentRecord{}
	}
	return s.fetch(ctx, store.Scope{ResidentID: uid})
}

func (s *PaymentService) fetch(ctx context.Context, scope store.Scope) []models.PaymentRecord {
	if s.store == nil {
		return []models.PaymentRecord{}
	}
	records, err := s.store.ListPayments(ctx, scope)
	if err != nil {
		s.logger.Error("Failed to fetch payments", zap.String("resident", scope.ResidentID), zap.Error(err))
		return []models.PaymentRecord{}
	}
	return records
}

// AdminView computes a page of the admin monitoring table.
func (s *PaymentService) AdminView(ctx context.Context, q ViewQuery) listview.Result {
	return listview.Admin.Compute(s.FetchAll(ctx), q.Filters, q.Sort, q.PageState())
}

// ResidentView computes a page of uid's own payment history.
func (s *PaymentService) ResidentView(ctx context.Context, uid string, q ViewQuery) listview.Result {
	return listview.Resident.Compute(s.FetchForResident(ctx, uid), q.Filters, q.Sort, q.PageState())
}

// SubmitProofInput is a resident's upload form.
type SubmitProofInput struct {
	PaymentType string
	Month       string
	Year        string
	File        io.Reader
	ContentType string
}

// Validate checks every field against the upload form's choices.
func (in SubmitProofInput) Validate() error {
	if in.File == nil ||
		!slices.Contains(models.PaymentTypes, in.PaymentType) ||
		!slices.Contains(models.Months, in.Month) {
		return NewUserError(MsgIncomplete, ErrIncomplete)
	}
	year, err := strconv.Atoi(strings.TrimSpace(in.Year))
	if err != nil || year < models.MinYear || year > models.MaxYear {
		return NewUserError(MsgIncomplete, ErrIncomplete)
	}
	return nil
}

// ProofObjectName is the storage name for a proof uploaded at t.
func ProofObjectName(uid, month, year string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%d", uid, month, year, t.UnixMilli())
}

// SubmitProof uploads the proof file and records a paid payment for the caller.
// Nothing is inserted when the upload fails.
func (s *PaymentService) SubmitProof(ctx context.Context, id models.Identity, in SubmitProofInput) (*models.PaymentRecord, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if id.UID == "" {
		return nil, NewUserError(MsgIncomplete, ErrInvalidInput)
	}
	if s.store == nil {
		return nil, unavailable()
	}

	year := strings.TrimSpace(in.Year)
	name := ProofObjectName(id.UID, in.Month, year, s.now())

	url, err := s.store.UploadProof(ctx, name, in.ContentType, in.File)
	if err != nil {
		s.logger.Error("Proof upload failed", zap.String("object", name), zap.Error(err))
		return nil, NewUserError(MsgUploadFailed, fmt.Errorf("%w: %v", ErrUploadFailed, err))
	}

	record := &models.PaymentRecord{
		ResidentID:  id.UID,
		Month:       in.Month,
		Year:        year,
		PaymentType: models.StringPtr(in.PaymentType),
		Status:      models.StatusPaid,
		ProofURL:    url,
	}
	if err := s.store.InsertPayment(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.logger.Info("Payment proof submitted",
		zap.String("uid", id.UID),
		zap.Int64("payment", record.ID),
		zap.String("month", record.Month),
		zap.String("year", record.Year))
	return record, nil
}
