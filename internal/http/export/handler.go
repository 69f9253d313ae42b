package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dompet-app/dompet/internal/export"
	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/params"
	"github.com/dompet-app/dompet/internal/http/respond"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	month, year, err := params.Month(r, h.now())
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer

	n, err := h.svc.WriteMonth(r.Context(), &buf, userID, month, year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(month, year)))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err, "rows", n)
	}
}
