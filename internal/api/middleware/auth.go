package middleware

import (
	"net/http"
	"strings"

	"github.com/cardroom/blackjack-go/internal/api/apierr"
	"github.com/cardroom/blackjack-go/internal/services/auth"
)

// Admin creates middleware guarding administrative endpoints with the
// configured admin password
func Admin(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			password := extractPassword(r)
			if password == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := authService.VerifyAdmin(password); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractPassword extracts the admin password from the request
func extractPassword(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to a dedicated header
	return r.Header.Get("X-Admin-Password")
}
