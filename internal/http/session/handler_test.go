package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dompet-app/dompet/internal/http/middleware"
)

type fakeSessions struct {
	ended []uuid.UUID
}

func (f *fakeSessions) End(userID uuid.UUID) bool {
	f.ended = append(f.ended, userID)
	return true
}

type fakeAuth struct {
	forgotten []uuid.UUID
}

func (f *fakeAuth) Forget(userID uuid.UUID) {
	f.forgotten = append(f.forgotten, userID)
}

func TestHandler_Logout(t *testing.T) {
	userID := uuid.New()
	sessions, auth := &fakeSessions{}, &fakeAuth{}

	r := chi.NewRouter()
	r.Route("/session", NewHandler(sessions, auth).Routes)

	t.Run("EndsSession", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/session/logout", nil)
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []uuid.UUID{userID}, sessions.ended)
		assert.Equal(t, []uuid.UUID{userID}, auth.forgotten)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session/logout", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Len(t, sessions.ended, 1)
	})
}
