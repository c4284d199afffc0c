package middleware

import (
	"net/http"
	"strings"

	"store-ratings/internal/data/entity"
	"store-ratings/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticate middleware untuk validasi session token (JWT)
func Authenticate(config utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseToken(parts[1], config)
			if err != nil {
				logger.Warn("Invalid or expired token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("Malformed subject in token", zap.String("subject", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Set context dengan identity dari token
			ctx := utils.SetUserContext(r.Context(), userID, claims.Email, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize checks exact-match set membership of the caller's role against
// the declared set. No hierarchy: ADMIN only passes where ADMIN is listed.
// An empty declared set passes every caller.
func Authorize(requiredRoles []entity.UserRole, callerRole string) bool {
	if len(requiredRoles) == 0 {
		return true
	}

	role := entity.UserRole(callerRole)
	if !role.IsValid() {
		return false
	}

	for _, required := range requiredRoles {
		if role == required {
			return true
		}
	}
	return false
}

// RequireRoles - middleware cek role terhadap declared set milik route.
// Harus dipasang setelah Authenticate.
func RequireRoles(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !Authorize(roles, role) {
				logger.Warn("Role check: access denied",
					zap.String("role", role),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
