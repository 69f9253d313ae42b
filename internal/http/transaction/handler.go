package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/params"
	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
)

type Reader interface {
	Get(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error)
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Coordinators returns the coordinator bound to a user's session cache.
type Coordinators interface {
	Coordinator(userID uuid.UUID) *spending.Coordinator
}

type Handler struct {
	reader   Reader
	sessions Coordinators
	now      func() time.Time
}

func NewHandler(reader Reader, sessions Coordinators) *Handler {
	return &Handler{reader: reader, sessions: sessions, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/month", h.month)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	WalletID    uuid.UUID        `json:"wallet_id"`
	CategoryID  uuid.UUID        `json:"category_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        transaction.Type `json:"type"`
	Date        string           `json:"date"`
	Description *string          `json:"description,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	tx, err := h.sessions.Coordinator(userID).Create(r.Context(), transaction.CreateParams{
		UserID:      userID,
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	filter := transaction.ListFilter{UserID: userID}

	var err error

	if filter.WalletID, err = params.OptionalUUID(r, "wallet_id"); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if filter.CategoryID, err = params.OptionalUUID(r, "category_id"); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if s := r.URL.Query().Get("type"); s != "" {
		filter.Type = new(transaction.Type(s))
	}

	if filter.StartDate, err = params.OptionalDate(r, "start_date"); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if filter.EndDate, err = params.OptionalDate(r, "end_date"); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.reader.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

// month lists one calendar month oldest first.
func (h *Handler) month(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	month, year, err := params.Month(r, h.now())
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := spending.MonthFilter(userID, month, year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.reader.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
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

	tx, err := h.reader.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	WalletID    *uuid.UUID        `json:"wallet_id,omitempty"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	Type        *transaction.Type `json:"type,omitempty"`
	Date        *string           `json:"date,omitempty"`
	Description *string           `json:"description,omitempty"`
}

func (req updateTransactionRequest) patch() (transaction.Patch, error) {
	patch := transaction.Patch{
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			return patch, err
		}

		patch.Date = &date
	}

	return patch, nil
}

// update reads the current record server-side so the coordinator knows which
// totals the old version contributed to.
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

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	patch, err := req.patch()
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	prior, err := h.reader.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.sessions.Coordinator(userID).Update(r.Context(), userID, id, prior, patch)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
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

	prior, err := h.reader.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.sessions.Coordinator(userID).Delete(r.Context(), prior); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
