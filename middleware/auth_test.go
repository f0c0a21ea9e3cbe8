package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"smartpay/backend/models"
	"smartpay/backend/services"
)

type stubVerifier struct {
	tokens map[string]models.Identity
}

func (s stubVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	id, ok := s.tokens[token]
	if !ok {
		return models.Identity{}, errors.New("unknown token")
	}
	return id, nil
}

func identityEcho(t *testing.T, want models.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := GetIdentity(r)
		if !ok || got != want {
			t.Errorf("Expected identity %+v, got %+v (ok=%v)", want, got, ok)
		}
		if GetUserIDFromContext(r) != want.UID {
			t.Errorf("Expected user ID %q, got %q", want.UID, GetUserIDFromContext(r))
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestExtractToken(t *testing.T) {
	testCases := []struct {
		name          string
		authHeader    string
		expectedToken string
	}{
		{"Valid Bearer token", "Bearer test-token-123", "test-token-123"},
		{"Missing Bearer prefix", "test-token-123", ""},
		{"Empty auth header", "", ""},
		{"Bearer with no token", "Bearer ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token := extractToken(tc.authHeader)
			if token != tc.expectedToken {
				t.Errorf("Expected token '%s', got '%s'", tc.expectedToken, token)
			}
		})
	}
}

func TestAuthMiddleware_DevMode(t *testing.T) {
	dev := models.Identity{UID: "dev-user", Email: "dev@smartpay.local"}
	a := NewAuth(nil, dev, zaptest.NewLogger(t))

	rr := httptest.NewRecorder()
	a.Middleware(identityEcho(t, dev)).ServeHTTP(rr, httptest.NewRequest("GET", "/api/payments", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("Handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
}

func TestAuthMiddleware_Verifier(t *testing.T) {
	budi := models.Identity{UID: "uid-budi", Email: "budi@example.com"}
	a := NewAuth(stubVerifier{tokens: map[string]models.Identity{
		"good":  budi,
		"blank": {},
	}}, models.Identity{}, zaptest.NewLogger(t))

	testCases := []struct {
		name           string
		method         string
		target         string
		header         string
		expectedStatus int
	}{
		{"valid bearer token", "GET", "/api/payments", "Bearer good", http.StatusOK},
		{"token in query", "GET", "/api/payments/export?auth=good", "", http.StatusOK},
		{"missing header", "GET", "/api/payments", "", http.StatusUnauthorized},
		{"invalid token", "GET", "/api/payments", "Bearer bad", http.StatusUnauthorized},
		{"token without uid", "GET", "/api/payments", "Bearer blank", http.StatusUnauthorized},
		{"preflight skips auth", "OPTIONS", "/api/payments", "", http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := identityEcho(t, budi)
			if tc.method == http.MethodOptions {
				next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNoContent)
				})
			}
			req := httptest.NewRequest(tc.method, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			a.Middleware(next).ServeHTTP(rr, req)
			if rr.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rr.Code)
			}
		})
	}
}

func TestJWTVerifier(t *testing.T) {
	issuer := services.NewTokenIssuer("secret", time.Hour)
	want := models.Identity{UID: "local-1", Email: "warga@example.com"}
	token, _, err := issuer.Issue(want)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	a := NewAuth(NewJWTVerifier(issuer), models.Identity{}, zaptest.NewLogger(t))
	req := httptest.NewRequest("GET", "/api/residents/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	a.Middleware(identityEcho(t, want)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/test", nil)
	req = req.WithContext(WithIdentity(req.Context(), models.Identity{UID: "test-user-123"}))

	if userID := GetUserIDFromContext(req); userID != "test-user-123" {
		t.Errorf("Expected user ID 'test-user-123', got '%s'", userID)
	}

	emptyReq := httptest.NewRequest("GET", "/api/test", nil)
	if userID := GetUserIDFromContext(emptyReq); userID != "" {
		t.Errorf("Expected empty user ID, got '%s'", userID)
	}
	if _, ok := GetIdentity(emptyReq); ok {
		t.Error("Expected no identity on a bare request")
	}
}
