package category

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/category"
	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/transaction"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type categoryResponse struct {
	ID     uuid.UUID        `json:"id"`
	Name   string           `json:"name"`
	Icon   string           `json:"icon"`
	Type   transaction.Type `json:"type"`
	Shared bool             `json:"shared"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon, Type: c.Type, Shared: c.Shared()}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var txType *transaction.Type
	if s := r.URL.Query().Get("type"); s != "" {
		txType = new(transaction.Type(s))
	}

	categories, err := h.svc.List(r.Context(), userID, txType)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createCategoryRequest struct {
	Name string           `json:"name"`
	Icon string           `json:"icon"`
	Type transaction.Type `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Create(r.Context(), category.CreateParams{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
		Type:   req.Type,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}
