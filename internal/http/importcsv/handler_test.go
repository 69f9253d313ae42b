package importcsv

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/importer"
	"github.com/dompet-app/dompet/internal/importer/statement"
	"github.com/dompet-app/dompet/internal/querycache"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
)

type testEnv struct {
	parser    *importer.MockParser
	suggester *importer.MockSuggester
	repo      *transaction.MockRepository
	router    chi.Router
	userID    uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := &testEnv{
		parser:    importer.NewMockParser(ctrl),
		suggester: importer.NewMockSuggester(ctrl),
		repo:      transaction.NewMockRepository(ctrl),
		userID:    uuid.New(),
	}

	sessions := spending.NewSessions(transaction.NewService(env.repo), querycache.Options{Name: t.Name()},
		spending.CoordinatorOptions{})
	t.Cleanup(sessions.Close)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), env.userID)))
		})
	})
	r.Route("/import", NewHandler(env.parser, env.suggester, sessions).Routes)
	env.router = r

	return env
}

func upload(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if withFile {
		fw, err := mw.CreateFormFile("file", "statement.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte("Tanggal;Keterangan;Jumlah\n"))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return &body, mw.FormDataContentType()
}

func (e *testEnv) post(t *testing.T, target string, fields map[string]string, withFile bool) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := upload(t, fields, withFile)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Preview(t *testing.T) {
	env := newTestEnv(t)
	wallet, expense, income, food := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	env.parser.EXPECT().Parse(gomock.Any()).Return(&statement.Statement{
		Profile: "bca",
		Charset: "UTF-8",
		Rows: []statement.Row{
			{Date: day, Description: "GRAB FOOD", Amount: decimal.NewFromInt(45000), Type: transaction.TypeExpense},
			{Date: day, Description: "SALARY", Amount: decimal.NewFromInt(5000000), Type: transaction.TypeIncome},
		},
	}, nil)
	env.suggester.EXPECT().Suggest(gomock.Any(), env.userID, "GRAB FOOD").Return(food, true, nil)
	env.suggester.EXPECT().Suggest(gomock.Any(), env.userID, "SALARY").Return(uuid.Nil, false, nil)

	rec := env.post(t, "/import/preview", map[string]string{
		"wallet_id":           wallet.String(),
		"expense_category_id": expense.String(),
		"income_category_id":  income.String(),
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "bca", resp.Profile)
	assert.Equal(t, 1, resp.Matched)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, food, resp.Entries[0].CategoryID)
	assert.Equal(t, income, resp.Entries[1].CategoryID)
	assert.Equal(t, "2024-06-03", resp.Entries[1].Date)
}

func TestHandler_Import(t *testing.T) {
	t.Run("RecordsBatch", func(t *testing.T) {
		env := newTestEnv(t)
		wallet, expense, income := uuid.New(), uuid.New(), uuid.New()
		day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

		env.parser.EXPECT().Parse(gomock.Any()).Return(&statement.Statement{
			Rows: []statement.Row{
				{Date: day, Description: "INDOMARET", Amount: decimal.NewFromInt(32000), Type: transaction.TypeExpense},
			},
		}, nil)
		env.suggester.EXPECT().Suggest(gomock.Any(), env.userID, "INDOMARET").Return(uuid.Nil, false, nil)
		env.repo.EXPECT().CreateTransactions(gomock.Any(), gomock.Len(1)).
			DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
				assert.Equal(t, expense, txs[0].CategoryID)
				assert.Equal(t, wallet, txs[0].WalletID)
				txs[0].ID = uuid.New()
				return nil
			})
		env.repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		rec := env.post(t, "/import", map[string]string{
			"wallet_id":           wallet.String(),
			"expense_category_id": expense.String(),
			"income_category_id":  income.String(),
		}, true)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp importResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Imported)
	})

	t.Run("MissingWallet", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.post(t, "/import", map[string]string{
			"expense_category_id": uuid.NewString(),
			"income_category_id":  uuid.NewString(),
		}, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingFile", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.post(t, "/import", map[string]string{"wallet_id": uuid.NewString()}, false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "file field is required")
	})

	t.Run("BadWalletID", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.post(t, "/import", map[string]string{"wallet_id": "nope"}, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "wallet_id")
	})
}
