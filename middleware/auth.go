package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"smartpay/backend/models"
	"smartpay/backend/services"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	IdentityKey contextKey = "identity"
)

// IdentityVerifier turns a bearer token into the caller's identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}

// FirebaseVerifier checks Firebase ID tokens.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (models.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return models.Identity{}, fmt.Errorf("error verifying ID token: %w", err)
	}
	email, _ := token.Claims["email"].(string)
	return models.Identity{UID: token.UID, Email: email}, nil
}

// JWTVerifier checks session tokens issued by the local auth provider.
type JWTVerifier struct {
	issuer *services.TokenIssuer
}

func NewJWTVerifier(issuer *services.TokenIssuer) *JWTVerifier {
	return &JWTVerifier{issuer: issuer}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	return v.issuer.Verify(token)
}

// Auth authenticates requests. With no verifier every request runs as the
// configured development identity.
type Auth struct {
	verifier IdentityVerifier
	dev      models.Identity
	logger   *zap.Logger
}

func NewAuth(verifier IdentityVerifier, dev models.Identity, logger *zap.Logger) *Auth {
	return &Auth{verifier: verifier, dev: dev, logger: logger}
}

// Middleware verifies the bearer token and stores the identity on the request context.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS preflight carries no credentials
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if a.verifier == nil {
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), a.dev)))
			return
		}

		idToken := extractToken(r.Header.Get("Authorization"))
		if idToken == "" {
			// export links are opened by the browser without headers
			idToken = r.URL.Query().Get("auth")
		}
		if idToken == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		id, err := a.verifier.Verify(r.Context(), idToken)
		if err != nil {
			a.logger.Info("Rejected token", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}
		if id.UID == "" {
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// extractToken gets the token from the Authorization header
func extractToken(authHeader string) string {
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	ctx = context.WithValue(ctx, IdentityKey, id)
	return context.WithValue(ctx, UserIDKey, id.UID)
}

// GetIdentity returns the authenticated caller, if any.
func GetIdentity(r *http.Request) (models.Identity, bool) {
	id, ok := r.Context().Value(IdentityKey).(models.Identity)
	return id, ok && id.UID != ""
}

// GetUserIDFromContext retrieves the user ID from the request context
func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
