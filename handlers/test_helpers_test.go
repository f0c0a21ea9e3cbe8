package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"smartpay/backend/database"
	"smartpay/backend/middleware"
	"smartpay/backend/migrations"
	"smartpay/backend/models"
	"smartpay/backend/services"
	"smartpay/backend/store"
)

// Test identities shared across handler tests
const (
	TestUserID  = "test-user-id"
	AdminUserID = "admin-user-id"
)

var (
	testUser  = models.Identity{UID: TestUserID, Email: "budi@example.com"}
	testAdmin = models.Identity{UID: AdminUserID, Email: "ketua@example.com"}
)

type memBlobs struct {
	names []string
	err   error
}

func (m *memBlobs) Put(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	m.names = append(m.names, name)
	return "/proofs/" + name, nil
}

type testEnv struct {
	handler *Handler
	store   *store.SQLStore
	blobs   *memBlobs
	filters *services.FilterService
}

// newTestEnv wires every service over an in-memory sqlite store holding one
// resident and one admin.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zaptest.NewLogger(t)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db, database.SQLite, logger))

	blobs := &memBlobs{}
	rs := store.NewSQLStore(db, database.SQLite, blobs)
	ctx := context.Background()
	require.NoError(t, rs.InsertResident(ctx, models.Resident{ID: TestUserID, HouseholdName: "Budi Santoso", HouseBlock: "A1", Email: testUser.Email}))
	require.NoError(t, rs.InsertResident(ctx, models.Resident{ID: AdminUserID, HouseholdName: "Ketua RT", HouseBlock: "RT", Email: testAdmin.Email, IsAdmin: true}))

	policy := services.NewFlagPolicy(rs, logger)
	filters := services.NewFilterService(rs, policy)
	h := New(Deps{
		Payments:  services.NewPaymentService(rs, logger),
		Residents: services.NewResidentService(rs, services.NewTokenIssuer("test-secret", time.Hour), logger),
		Dues:      services.NewDuesService(rs, logger),
		Filters:   filters,
		Policy:    policy,
		Logger:    logger,
	})
	return &testEnv{handler: h, store: rs, blobs: blobs, filters: filters}
}

// newUnconfiguredHandler has no record store behind any service.
func newUnconfiguredHandler(t *testing.T) *Handler {
	logger := zaptest.NewLogger(t)
	policy := services.NewFlagPolicy(nil, logger)
	return New(Deps{
		Payments:  services.NewPaymentService(nil, logger),
		Residents: services.NewResidentService(nil, nil, logger),
		Dues:      services.NewDuesService(nil, logger),
		Filters:   services.NewFilterService(nil, policy),
		Policy:    policy,
		Logger:    logger,
	})
}

func (e *testEnv) addPayment(t *testing.T, uid, month, year, status string) {
	t.Helper()
	p := &models.PaymentRecord{ResidentID: uid, Month: month, Year: year, PaymentType: models.StringPtr("IPL"), Status: status}
	require.NoError(t, e.store.InsertPayment(context.Background(), p))
}

// SetupTestAuth adds authentication context to the request
func SetupTestAuth(req *http.Request, id models.Identity) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), id))
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), rr.Body.String())
	return v
}

// uploadForm builds a multipart upload request. An empty file body omits the proof.
func uploadForm(t *testing.T, fields map[string]string, file string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != "" {
		fw, err := mw.CreateFormFile("proof", "bukti.png")
		require.NoError(t, err)
		_, err = fmt.Fprint(fw, file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/payments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var errStorageDown = errors.New("storage down")
