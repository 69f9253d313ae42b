// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dompet-app/dompet/internal/advisor"
	"github.com/dompet-app/dompet/internal/budget"
	"github.com/dompet-app/dompet/internal/category"
	"github.com/dompet-app/dompet/internal/goal"
	"github.com/dompet-app/dompet/internal/importer"
	"github.com/dompet-app/dompet/internal/matching"
	"github.com/dompet-app/dompet/internal/profile"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
	"github.com/dompet-app/dompet/internal/wallet"
)

type errorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

var (
	notFound = []error{
		transaction.ErrNotFound, budget.ErrNotFound, wallet.ErrNotFound, category.ErrNotFound,
		goal.ErrNotFound, profile.ErrNotFound, matching.ErrNotFound,
	}
	badRequest = []error{
		transaction.ErrInvalidAmount, transaction.ErrInvalidType, transaction.ErrMissingDate,
		budget.ErrInvalidLimit, budget.ErrInvalidPeriod, spending.ErrInvalidRange,
		wallet.ErrMissingName, category.ErrMissingName,
		goal.ErrInvalidTarget, goal.ErrInvalidAmount, goal.ErrMissingName,
		matching.ErrEmptyPattern, advisor.ErrEmptyQuestion,
		importer.ErrNoRows, importer.ErrMissingWallet, importer.ErrMissingDefault,
		importer.ErrUnreadable,
	}
)

// Status returns the HTTP status for err.
func Status(err error) int {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}

	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	if errors.Is(err, advisor.ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// Error writes err with its mapped status. Server errors are logged and their
// message is not exposed.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		Message(w, status, http.StatusText(status))

		return
	}

	Message(w, status, err.Error())
}
