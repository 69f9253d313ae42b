package wallet

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/params"
	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/wallet"
)

type Handler struct {
	svc *wallet.Service
}

func NewHandler(svc *wallet.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.rename)
	r.Delete("/{id}", h.delete)
}

type walletResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

type listResponse struct {
	Wallets []walletResponse `json:"wallets"`
	Total   decimal.Decimal  `json:"total"`
}

func toResponse(w *wallet.Wallet) walletResponse {
	return walletResponse{ID: w.ID, Name: w.Name, Balance: w.Balance, CreatedAt: w.CreatedAt}
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	wal, err := h.svc.Create(r.Context(), userID, req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(wal))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	wallets, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := listResponse{Wallets: make([]walletResponse, len(wallets)), Total: decimal.Zero}
	for i, wal := range wallets {
		resp.Wallets[i] = toResponse(wal)
		resp.Total = resp.Total.Add(wal.Balance)
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

	wal, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(wal))
}

func (h *Handler) rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	id, err := params.ID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	wal, err := h.svc.Rename(r.Context(), userID, id, req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(wal))
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
