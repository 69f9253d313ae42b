package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-app/dompet/internal/category/store"
	"github.com/dompet-app/dompet/internal/transaction"
)

func TestStore_ListCategories_IncludesShared(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	expense := transaction.TypeExpense

	mock.ExpectQuery(`\(user_id = \$1 OR user_id IS NULL\) AND type = \$2 ORDER BY name`).
		WithArgs(userID, "expense").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "icon", "type", "created_at"}).
			AddRow(uuid.New(), (*uuid.UUID)(nil), "Food", "🍔", "expense", time.Now()).
			AddRow(uuid.New(), &userID, "Pets", "🐶", "expense", time.Now()))

	categories, err := store.New(mock).ListCategories(context.Background(), userID, &expense)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.True(t, categories[0].Shared())
	assert.False(t, categories[1].Shared())
	assert.Equal(t, userID, *categories[1].UserID)
	assert.Equal(t, transaction.TypeExpense, categories[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
