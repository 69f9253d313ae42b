package goal

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/goal"
	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/params"
	"github.com/dompet-app/dompet/internal/http/respond"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/contributions", h.contribute)
	r.Delete("/{id}", h.delete)
}

type goalResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Progress      decimal.Decimal `json:"progress"`
	Reached       bool            `json:"reached"`
	Deadline      *string         `json:"deadline,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toResponse(g *goal.Goal) goalResponse {
	resp := goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Progress:      g.Progress().Round(2),
		Reached:       g.Reached(),
		CreatedAt:     g.CreatedAt,
	}

	if g.Deadline != nil {
		resp.Deadline = new(g.Deadline.Format(time.DateOnly))
	}

	return resp
}

func parseDeadline(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

type createGoalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *string         `json:"deadline,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "deadline must be YYYY-MM-DD")
		return
	}

	g, err := h.svc.Create(r.Context(), goal.CreateParams{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(g))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	goals, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	id, err := params.ID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

type updateGoalRequest struct {
	Name         *string          `json:"name,omitempty"`
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
	Deadline     *string          `json:"deadline,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	id, err := params.ID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "deadline must be YYYY-MM-DD")
		return
	}

	g, err := h.svc.Update(r.Context(), userID, id, goal.Patch{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     deadline,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

type contributeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) contribute(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	id, err := params.ID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.svc.Contribute(r.Context(), userID, id, req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
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
