package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-app/dompet/internal/matching/store"
)

func TestStore_FindMatch(t *testing.T) {
	userID, categoryID := uuid.New(), uuid.New()

	t.Run("Match", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM category_rules`).
			WithArgs(userID, "GOFOOD JAKARTA").
			WillReturnRows(pgxmock.NewRows([]string{"category_id"}).AddRow(categoryID))

		got, ok, err := store.New(mock).FindMatch(context.Background(), userID, "GOFOOD JAKARTA")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, categoryID, got)
	})

	t.Run("NoMatch", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM category_rules`).WithArgs(userID, "ATM").WillReturnError(pgx.ErrNoRows)

		_, ok, err := store.New(mock).FindMatch(context.Background(), userID, "ATM")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_ListRules(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()

	mock.ExpectQuery(`FROM category_rules`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "pattern", "category_id", "created_at"}).
			AddRow(uuid.New(), userID, "GRAB", uuid.New(), time.Now()).
			AddRow(uuid.New(), userID, "PLN", uuid.New(), time.Now()))

	rules, err := store.New(mock).ListRules(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "GRAB", rules[0].Pattern)
	assert.Equal(t, "PLN", rules[1].Pattern)
}
