package middleware

import (
	"net/http"
	"strings"

	"review-hub/internal/data/repository"
	"review-hub/internal/policy"
	"review-hub/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate validates the bearer token and puts the principal on the
// request context. The user row is reloaded on every request so role
// changes take effect immediately instead of at token expiry.
func Authenticate(userRepo repository.UserRepository, jwtConfig utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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

			claims, err := utils.ParseAccessToken(jwtConfig, parts[1])
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := utils.ParseUUID(claims.Subject)
			if err != nil {
				logger.Warn("Invalid token subject", zap.String("subject", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for token",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			principal := policy.Principal{
				UserID:        user.ID,
				Role:          user.Role,
				Superuser:     user.IsSuperuser,
				Authenticated: true,
			}

			next.ServeHTTP(w, r.WithContext(utils.SetPrincipalContext(r.Context(), principal)))
		})
	}
}

// Authorize is the coarse policy gate for a (resource, action) pair. It
// runs before the handler touches the database, so a denied principal
// learns nothing about the target.
func Authorize(res policy.Resource, act policy.Action, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := utils.GetPrincipalFromContext(r.Context())

			if !policy.Allow(principal, res, act) {
				if !principal.Authenticated {
					utils.ResponseUnauthorized(w, "Authentication required")
					return
				}

				logger.Warn("Access denied",
					zap.String("resource", string(res)),
					zap.String("action", string(act)),
					zap.String("user_id", principal.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
