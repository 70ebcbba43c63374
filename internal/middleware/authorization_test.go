package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func serveWithGuard(t *testing.T, path, tokenUserID string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/studio/{userId}", func(r chi.Router) {
		if tokenUserID != "" {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					ctx := context.WithValue(req.Context(), UserIDKey, tokenUserID)
					next.ServeHTTP(w, req.WithContext(ctx))
				})
			})
		}
		r.Use(RequireSelf("userId", zap.NewNop()))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSelfAllowsOwner(t *testing.T) {
	userID := uuid.New().String()
	w := serveWithGuard(t, "/studio/"+userID, userID)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSelfRejectsOtherUsers(t *testing.T) {
	w := serveWithGuard(t, "/studio/"+uuid.New().String(), uuid.New().String())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireSelfRejectsMissingIdentity(t *testing.T) {
	w := serveWithGuard(t, "/studio/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
