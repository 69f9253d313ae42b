package params

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonth(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	month, year, err := Month(httptest.NewRequest(http.MethodGet, "/", nil), now)
	require.NoError(t, err)
	assert.Equal(t, 6, month)
	assert.Equal(t, 2024, year)

	month, year, err = Month(httptest.NewRequest(http.MethodGet, "/?month=2&year=2023", nil), now)
	require.NoError(t, err)
	assert.Equal(t, 2, month)
	assert.Equal(t, 2023, year)

	_, _, err = Month(httptest.NewRequest(http.MethodGet, "/?month=feb", nil), now)
	assert.EqualError(t, err, "invalid month")
}

func TestID(t *testing.T) {
	id := uuid.New()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	got, err := ID(req)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}

func TestOptional(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start_date=2024-06-01&wallet_id=nope", nil)

	d, err := OptionalDate(req, "start_date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *d)

	d, err = OptionalDate(req, "end_date")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = OptionalUUID(req, "wallet_id")
	assert.EqualError(t, err, "invalid wallet_id")
}
