// Package session ends a user's session, discarding their cached totals.
package session

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/http/middleware"
)

type Ender interface {
	End(userID uuid.UUID) bool
}

type Forgetter interface {
	Forget(userID uuid.UUID)
}

type Handler struct {
	sessions Ender
	auth     Forgetter
}

func NewHandler(sessions Ender, auth Forgetter) *Handler {
	return &Handler{sessions: sessions, auth: auth}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/logout", h.logout)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	ended := h.sessions.End(userID)
	h.auth.Forget(userID)

	slog.Info("session ended", "user_id", userID, "had_cache", ended)

	w.WriteHeader(http.StatusNoContent)
}
