package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RequireSelf ensures the authenticated user only touches their own
// resources: the route's userId parameter must match the token subject.
func RequireSelf(param string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				logger.Warn("User ID not found in context")
				respondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if pathID := chi.URLParam(r, param); pathID != "" && pathID != userID {
				logger.Warn("User attempted to access another user's resource",
					zap.String("user_id", userID),
					zap.String("requested_id", pathID),
				)
				respondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
