package middleware

import (
	"net/http"

	"transgo-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth trusts the identity headers set by the fronting auth layer. Session
// issuance and verification live outside this service; by the time a request
// reaches us, X-User-ID has already been authenticated upstream.
func Auth(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDHeader := r.Header.Get("X-User-ID")
			if userIDHeader == "" {
				utils.ResponseUnauthorized(w, "Missing user identity")
				return
			}

			userID, err := uuid.Parse(userIDHeader)
			if err != nil {
				logger.Warn("Invalid user identity header",
					zap.String("user_id", userIDHeader),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid user identity")
				return
			}

			role := r.Header.Get("X-User-Role")
			if role == "" {
				role = "customer"
			}

			ctx := utils.SetUserContext(r.Context(), userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin - middleware cek role admin
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != "admin" {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
