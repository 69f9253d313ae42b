package importcsv

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/importer"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
)

const maxUpload = 10 << 20

type Coordinators interface {
	Coordinator(userID uuid.UUID) *spending.Coordinator
}

type Handler struct {
	parser    importer.Parser
	suggester importer.Suggester
	sessions  Coordinators
}

func NewHandler(parser importer.Parser, suggester importer.Suggester, sessions Coordinators) *Handler {
	return &Handler{parser: parser, suggester: suggester, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/preview", h.preview)
	r.Post("/", h.importCSV)
}

type entryResponse struct {
	CategoryID  uuid.UUID        `json:"category_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        transaction.Type `json:"type"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
}

type previewResponse struct {
	Profile string          `json:"profile"`
	Charset string          `json:"charset"`
	Matched int             `json:"matched"`
	Entries []entryResponse `json:"entries"`
}

type importResponse struct {
	Imported int         `json:"imported"`
	IDs      []uuid.UUID `json:"ids"`
}

// service binds an importer to the user's coordinator so imported rows
// refresh their cached totals.
func (h *Handler) service(userID uuid.UUID) *importer.Service {
	return importer.NewService(h.parser, h.suggester, h.sessions.Coordinator(userID))
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	upload, params, ok := readUpload(w, r, userID)
	if !ok {
		return
	}
	defer upload.Close()

	preview, err := h.service(userID).Preview(r.Context(), params, upload)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := previewResponse{
		Profile: preview.Profile,
		Charset: preview.Charset,
		Matched: preview.Matched,
		Entries: make([]entryResponse, len(preview.Entries)),
	}

	for i, e := range preview.Entries {
		resp.Entries[i] = entryResponse{
			CategoryID: e.CategoryID,
			Amount:     e.Amount,
			Type:       e.Type,
			Date:       e.Date.Format(time.DateOnly),
		}

		if e.Description != nil {
			resp.Entries[i].Description = *e.Description
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	upload, params, ok := readUpload(w, r, userID)
	if !ok {
		return
	}
	defer upload.Close()

	txs, err := h.service(userID).Import(r.Context(), params, upload)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := importResponse{Imported: len(txs), IDs: make([]uuid.UUID, len(txs))}
	for i, tx := range txs {
		resp.IDs[i] = tx.ID
	}

	respond.JSON(w, http.StatusCreated, resp)
}
