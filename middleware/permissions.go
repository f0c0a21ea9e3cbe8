package middleware

import (
	"net/http"

	"smartpay/backend/services"
)

// RequireAdmin rejects callers the policy does not consider admins.
func RequireAdmin(policy services.AuthorizationPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetIdentity(r)
			if !ok {
				http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
				return
			}
			if !policy.IsAdmin(r.Context(), id) {
				http.Error(w, "Forbidden: Admin access required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
