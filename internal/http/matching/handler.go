package matching

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/params"
	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/rules", h.list)
	r.Post("/rules", h.learn)
	r.Delete("/rules/{id}", h.delete)
	r.Get("/suggest", h.suggest)
}

type ruleResponse struct {
	ID         uuid.UUID `json:"id"`
	Pattern    string    `json:"pattern"`
	CategoryID uuid.UUID `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(rule *matching.Rule) ruleResponse {
	return ruleResponse{ID: rule.ID, Pattern: rule.Pattern, CategoryID: rule.CategoryID, CreatedAt: rule.CreatedAt}
}

type learnRequest struct {
	Pattern    string    `json:"pattern"`
	CategoryID uuid.UUID `json:"category_id"`
}

type suggestResponse struct {
	CategoryID *uuid.UUID `json:"category_id"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	rules, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = toResponse(rule)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.CategoryID == uuid.Nil {
		respond.Message(w, http.StatusBadRequest, "category_id is required")
		return
	}

	rule, err := h.svc.Learn(r.Context(), userID, req.Pattern, req.CategoryID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rule))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	id, err := params.ID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	description := r.URL.Query().Get("description")
	if description == "" {
		respond.Message(w, http.StatusBadRequest, "description is required")
		return
	}

	categoryID, found, err := h.svc.Suggest(r.Context(), userID, description)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var resp suggestResponse
	if found {
		resp.CategoryID = &categoryID
	}

	respond.JSON(w, http.StatusOK, resp)
}
