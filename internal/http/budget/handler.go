package budget

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/budget"
	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/params"
	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/spending"
)

// Caches returns a user's session spending cache.
type Caches interface {
	Cache(userID uuid.UUID) *spending.Cache
}

type Handler struct {
	svc    *budget.Service
	caches Caches
	now    func() time.Time
}

func NewHandler(svc *budget.Service, caches Caches) *Handler {
	return &Handler{svc: svc, caches: caches, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/overview", h.overview)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type budgetResponse struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	CategoryIcon string          `json:"category_icon,omitempty"`
	Limit        decimal.Decimal `json:"limit"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Description  *string         `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type viewResponse struct {
	budgetResponse
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	Status     budget.Status   `json:"status"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:           b.ID,
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		CategoryIcon: b.CategoryIcon,
		Limit:        b.Limit,
		Month:        b.Month,
		Year:         b.Year,
		Description:  b.Description,
		CreatedAt:    b.CreatedAt,
	}
}

func toViewResponse(v budget.View) viewResponse {
	return viewResponse{
		budgetResponse: toResponse(v.Budget),
		Spent:          v.Spent,
		Remaining:      v.Remaining,
		Percentage:     v.Percentage.Round(2),
		Status:         v.Status,
	}
}

type createBudgetRequest struct {
	CategoryID  uuid.UUID       `json:"category_id"`
	Limit       decimal.Decimal `json:"limit"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Description *string         `json:"description,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.svc.Create(r.Context(), budget.CreateParams{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Limit:       req.Limit,
		Month:       req.Month,
		Year:        req.Year,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	filter := budget.ListFilter{UserID: userID}

	if r.URL.Query().Has("month") || r.URL.Query().Has("year") {
		month, year, err := params.Month(r, h.now())
		if err != nil {
			respond.Message(w, http.StatusBadRequest, err.Error())
			return
		}

		filter.Month, filter.Year = &month, &year
	}

	budgets, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	respond.JSON(w, http.StatusOK, resp)
}

// overview reads spending through the caller's session cache so totals
// written by the coordinator are what the views show.
func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	month, year, err := params.Month(r, h.now())
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.svc.Overview(r.Context(), h.caches.Cache(userID), userID, month, year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]viewResponse, len(views))
	for i, v := range views {
		resp[i] = toViewResponse(v)
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

	b, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

type updateBudgetRequest struct {
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Limit       *decimal.Decimal `json:"limit,omitempty"`
	Month       *int             `json:"month,omitempty"`
	Year        *int             `json:"year,omitempty"`
	Description *string          `json:"description,omitempty"`
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

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.svc.Update(r.Context(), userID, id, budget.Patch(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
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
