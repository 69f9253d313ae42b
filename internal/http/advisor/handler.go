package advisor

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/advisor"
	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/params"
	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/spending"
)

type Caches interface {
	Cache(userID uuid.UUID) *spending.Cache
}

type Handler struct {
	svc          *advisor.Service
	caches       Caches
	historyLimit int
}

func NewHandler(svc *advisor.Service, caches Caches, historyLimit int) *Handler {
	return &Handler{svc: svc, caches: caches, historyLimit: historyLimit}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/ask", h.ask)
	r.Get("/history", h.history)
	r.Delete("/history", h.clear)
}

type messageResponse struct {
	ID        uuid.UUID    `json:"id"`
	Role      advisor.Role `json:"role"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

func toResponse(m *advisor.Message) messageResponse {
	return messageResponse{ID: m.ID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt}
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.svc.Ask(r.Context(), userID, req.Question, h.caches.Cache(userID))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(reply))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	limit, err := params.Int(r, "limit", h.historyLimit)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	messages, err := h.svc.History(r.Context(), userID, min(limit, h.historyLimit))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]messageResponse, len(messages))
	for i, m := range messages {
		resp[i] = toResponse(m)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	if err := h.svc.Clear(r.Context(), userID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
