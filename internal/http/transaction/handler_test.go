package transaction

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/querycache"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
)

type testEnv struct {
	repo     *transaction.MockRepository
	sessions *spending.Sessions
	router   chi.Router
	userID   uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	ledger := transaction.NewService(repo)
	sessions := spending.NewSessions(ledger, querycache.Options{Name: t.Name()}, spending.CoordinatorOptions{})
	t.Cleanup(sessions.Close)

	env := &testEnv{repo: repo, sessions: sessions, userID: uuid.New()}

	h := NewHandler(ledger, sessions)
	h.now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), env.userID)))
		})
	})
	r.Route("/transactions", h.Routes)
	env.router = r

	return env
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateUpdatesSessionCache(t *testing.T) {
	env := newTestEnv(t)
	food, wallet := uuid.New(), uuid.New()
	june := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	env.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.Equal(t, env.userID, tx.UserID)
			assert.Equal(t, june, tx.Date)
			tx.ID = uuid.New()
			return nil
		})
	env.repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		Return([]*transaction.Transaction{
			{UserID: env.userID, CategoryID: food, Type: transaction.TypeExpense, Amount: decimal.NewFromInt(150000), Date: june},
		}, nil)

	rec := env.do(http.MethodPost, "/transactions/", `{
		"wallet_id": "`+wallet.String()+`",
		"category_id": "`+food.String()+`",
		"amount": 150000,
		"type": "expense",
		"date": "2024-06-03"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"date":"2024-06-03"`)

	got, ok := env.sessions.Cache(env.userID).Get(spending.Key{UserID: env.userID, CategoryID: food, Month: 6, Year: 2024})
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(150000)))
}

func TestHandler_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/transactions/", `{"amount": 0, "type": "expense", "date": "2024-06-03"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/transactions/", `{"amount": 10, "type": "expense", "date": "03/06/2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/transactions/", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Month(t *testing.T) {
	env := newTestEnv(t)

	env.repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f transaction.ListFilter) ([]*transaction.Transaction, error) {
			assert.True(t, f.Ascending)
			assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *f.StartDate)
			assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *f.EndDate)
			return nil, nil
		})

	rec := env.do(http.MethodGet, "/transactions/month", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = env.do(http.MethodGet, "/transactions/month?month=13", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_DeleteNotFound(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()

	env.repo.EXPECT().GetTransaction(gomock.Any(), env.userID, id).Return(nil, transaction.ErrNotFound)

	rec := env.do(http.MethodDelete, "/transactions/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()
	prior := &transaction.Transaction{
		ID: id, UserID: env.userID, CategoryID: uuid.New(), Type: transaction.TypeExpense,
		Amount: decimal.NewFromInt(5000), Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	}

	env.repo.EXPECT().GetTransaction(gomock.Any(), env.userID, id).Return(prior, nil)
	env.repo.EXPECT().DeleteTransaction(gomock.Any(), env.userID, id).Return(nil)
	env.repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := env.do(http.MethodDelete, "/transactions/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	got, ok := env.sessions.Cache(env.userID).Get(spending.Key{
		UserID: env.userID, CategoryID: prior.CategoryID, Month: 6, Year: 2024,
	})
	require.True(t, ok)
	assert.True(t, got.IsZero())
}

func TestHandler_UpdateBadID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPatch, "/transactions/not-a-uuid", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
