package store

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"smartpay/backend/database"
	"smartpay/backend/migrations"
	"smartpay/backend/models"
)

type fakeBlobs struct {
	names []string
	err   error
}

func (f *fakeBlobs) Put(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.names = append(f.names, name)
	return "https://files.example/" + name, nil
}

func setupStore(t *testing.T, blobs *fakeBlobs) *SQLStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Run(db, database.SQLite, zaptest.NewLogger(t)))
	if blobs == nil {
		return NewSQLStore(db, database.SQLite, nil)
	}
	return NewSQLStore(db, database.SQLite, blobs)
}

func TestPaymentsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t, nil)

	require.NoError(t, s.InsertResident(ctx, models.Resident{ID: "uid-1", HouseholdName: "Budi", HouseBlock: "A1", Email: "budi@example.com"}))

	first := &models.PaymentRecord{ResidentID: "uid-1", Month: "Januari", Year: "2025", PaymentType: models.StringPtr("IPL"), Status: models.StatusPaid, ProofURL: "u1"}
	require.NoError(t, s.InsertPayment(ctx, first))
	assert.NotZero(t, first.ID)

	// No type, and a resident that does not exist.
	orphan := &models.PaymentRecord{ResidentID: "ghost", Month: "Februari", Year: "2025", Status: models.StatusUnpaid}
	require.NoError(t, s.InsertPayment(ctx, orphan))
	assert.Greater(t, orphan.ID, first.ID)

	all, err := s.ListPayments(ctx, Scope{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Most recent first.
	assert.Equal(t, orphan.ID, all[0].ID)
	assert.Nil(t, all[0].Resident)
	assert.Nil(t, all[0].PaymentType)

	assert.Equal(t, first.ID, all[1].ID)
	require.NotNil(t, all[1].Resident)
	assert.Equal(t, "Budi", all[1].Resident.HouseholdName)
	assert.Equal(t, "A1", all[1].Resident.HouseBlock)
	assert.Equal(t, "IPL", *all[1].PaymentType)
	assert.WithinDuration(t, time.Now(), all[1].CreatedAt, time.Minute)

	mine, err := s.ListPayments(ctx, Scope{ResidentID: "uid-1"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	none, err := s.ListPayments(ctx, Scope{ResidentID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestResidents(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t, nil)

	_, err := s.GetResident(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrNotFound)

	r := models.Resident{ID: "uid-1", HouseholdName: "Siti", HouseBlock: "B2", Email: "siti@example.com", IsAdmin: true}
	require.NoError(t, s.InsertResident(ctx, r))
	assert.ErrorIs(t, s.InsertResident(ctx, r), ErrDuplicate)

	got, err := s.GetResident(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, r, *got)
}

func TestUploadProof(t *testing.T) {
	ctx := context.Background()

	blobs := &fakeBlobs{}
	s := setupStore(t, blobs)
	url, err := s.UploadProof(ctx, "uid_Mei_2025_1", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://files.example/uid_Mei_2025_1", url)
	assert.Equal(t, []string{"uid_Mei_2025_1"}, blobs.names)

	noBlobs := setupStore(t, nil)
	_, err = noBlobs.UploadProof(ctx, "x", "", strings.NewReader("x"))
	assert.Error(t, err)

	failing := setupStore(t, &fakeBlobs{err: errors.New("quota")})
	_, err = failing.UploadProof(ctx, "x", "", strings.NewReader("x"))
	assert.EqualError(t, err, "quota")
}

func TestDuesCRUD(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t, nil)

	d := &models.Dues{HouseBlock: "C3", Month: "Maret", Year: "2025", Amount: decimal.NewNullDecimal(decimal.RequireFromString("150000.50")), Status: models.DuesStatusUnpaid}
	require.NoError(t, s.InsertDues(ctx, d))
	require.NotZero(t, d.ID)

	list, err := s.ListDues(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Valid)
	assert.True(t, d.Amount.Decimal.Equal(list[0].Amount.Decimal))

	d.Status = models.DuesStatusPaid
	require.NoError(t, s.UpdateDues(ctx, *d))
	list, err = s.ListDues(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DuesStatusPaid, list[0].Status)

	assert.ErrorIs(t, s.UpdateDues(ctx, models.Dues{ID: 999}), ErrNotFound)

	require.NoError(t, s.DeleteDues(ctx, d.ID))
	assert.ErrorIs(t, s.DeleteDues(ctx, d.ID), ErrNotFound)
}

func TestSavedFilters(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t, nil)
	now := time.Now().UTC().Truncate(time.Second)

	a := models.SavedFilter{ID: "f1", Name: "Lunas 2025", UserID: "u1", ResourceType: models.ResourcePayments, FilterConfig: `{}`, IsDefault: true, CreatedAt: now, UpdatedAt: now}
	b := models.SavedFilter{ID: "f2", Name: "Blok A", UserID: "u1", ResourceType: models.ResourcePayments, FilterConfig: `{}`, IsDefault: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.InsertSavedFilter(ctx, a))
	require.NoError(t, s.InsertSavedFilter(ctx, b))

	dup := a
	dup.ID = "f3"
	assert.ErrorIs(t, s.InsertSavedFilter(ctx, dup), ErrDuplicate)

	list, err := s.ListSavedFilters(ctx, "u1", models.ResourcePayments)
	require.NoError(t, err)
	require.Len(t, list, 2)
	defaults := 0
	for _, f := range list {
		if f.IsDefault {
			defaults++
			assert.Equal(t, "f2", f.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	a.Name = "Renamed"
	a.IsDefault = true
	require.NoError(t, s.UpdateSavedFilter(ctx, a))
	got, err := s.GetSavedFilter(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.IsDefault)

	other, err := s.GetSavedFilter(ctx, "f2")
	require.NoError(t, err)
	assert.False(t, other.IsDefault)

	require.NoError(t, s.DeleteSavedFilter(ctx, "f1"))
	_, err = s.GetSavedFilter(ctx, "f1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t, nil)

	require.NoError(t, s.InsertAccount(ctx, models.Account{Email: "Budi@Example.com", UID: "uid-1", PasswordHash: "hash", HouseholdName: "Budi", HouseBlock: "A1"}))
	assert.ErrorIs(t, s.InsertAccount(ctx, models.Account{Email: "budi@example.com", UID: "uid-2", PasswordHash: "x"}), ErrDuplicate)

	got, err := s.GetAccount(ctx, "BUDI@example.com")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", got.UID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, "Budi", got.HouseholdName)
	assert.Equal(t, "A1", got.HouseBlock)

	_, err = s.GetAccount(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStoreImplementsRecordStore(t *testing.T) {
	var _ RecordStore = (*SQLStore)(nil)
}
