package importcsv

import (
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/importer"
)

func readUpload(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (multipart.File, importer.Params, bool) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.Message(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return nil, importer.Params{}, false
	}

	params := importer.Params{UserID: userID}

	for field, dst := range map[string]*uuid.UUID{
		"wallet_id":           &params.WalletID,
		"expense_category_id": &params.ExpenseCategoryID,
		"income_category_id":  &params.IncomeCategoryID,
	} {
		raw := r.FormValue(field)
		if raw == "" {
			continue
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			respond.Message(w, http.StatusBadRequest, field+" must be a UUID")
			return nil, importer.Params{}, false
		}

		*dst = id
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "file field is required")
		return nil, importer.Params{}, false
	}

	return file, params, true
}
