package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-app/dompet/internal/transaction"
	"github.com/dompet-app/dompet/internal/transaction/store"
)

var transactionColumns = []string{
	"id", "user_id", "wallet_id", "category_id", "amount", "type", "date", "description",
	"created_at", "wallet_name", "category_name", "category_icon",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func TestStore_CreateTransaction(t *testing.T) {
	mock := newMock(t)
	s := store.New(mock)

	id := uuid.New()
	createdAt := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	tx := &transaction.Transaction{
		UserID:     uuid.New(),
		WalletID:   uuid.New(),
		CategoryID: uuid.New(),
		Amount:     decimal.NewFromInt(150000),
		Type:       transaction.TypeExpense,
		Date:       time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs(tx.UserID, tx.WalletID, tx.CategoryID, tx.Amount, "expense", tx.Date, tx.Description).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, createdAt))

	require.NoError(t, s.CreateTransaction(context.Background(), tx))
	assert.Equal(t, id, tx.ID)
	assert.Equal(t, createdAt, tx.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateTransactions(t *testing.T) {
	mock := newMock(t)
	s := store.New(mock)

	txs := []*transaction.Transaction{
		{Amount: decimal.NewFromInt(10), Type: transaction.TypeExpense},
		{Amount: decimal.NewFromInt(20), Type: transaction.TypeIncome},
	}

	mock.ExpectBegin()

	for range txs {
		mock.ExpectQuery(`INSERT INTO transactions`).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))
	}

	mock.ExpectCommit()

	require.NoError(t, s.CreateTransactions(context.Background(), txs))
	assert.NotEqual(t, uuid.Nil, txs[0].ID)
	assert.NotEqual(t, uuid.Nil, txs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetTransaction(t *testing.T) {
	userID, id := uuid.New(), uuid.New()
	desc := "Lunch"
	walletName, categoryName, icon := "Cash", "Food", "🍔"

	type testCase struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		wantErr error
	}

	tests := []testCase{
		{
			name: "Found",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(`FROM transactions t`).
					WithArgs(id, userID).
					WillReturnRows(pgxmock.NewRows(transactionColumns).AddRow(
						id, userID, uuid.New(), uuid.New(), decimal.NewFromInt(75), "expense",
						time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), &desc, time.Now(),
						&walletName, &categoryName, &icon,
					))
			},
		},
		{
			name: "NotFound",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(`FROM transactions t`).
					WithArgs(id, userID).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: transaction.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			got, err := store.New(mock).GetTransaction(context.Background(), userID, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, transaction.TypeExpense, got.Type)
			assert.Equal(t, "Food", got.CategoryName)
			assert.Equal(t, "Cash", got.WalletName)
			assert.Equal(t, "Lunch", *got.Description)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_ListTransactions_Filter(t *testing.T) {
	mock := newMock(t)
	s := store.New(mock)

	userID, categoryID := uuid.New(), uuid.New()
	expense := transaction.TypeExpense
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`t.category_id = \$2 AND t.type = \$3 AND t.date >= \$4 AND t.date <= \$5 ORDER BY t.date DESC`).
		WithArgs(userID, categoryID, "expense", start, end).
		WillReturnRows(pgxmock.NewRows(transactionColumns).
			AddRow(uuid.New(), userID, uuid.New(), categoryID, decimal.NewFromInt(100), "expense", start,
				(*string)(nil), time.Now(), (*string)(nil), (*string)(nil), (*string)(nil)).
			AddRow(uuid.New(), userID, uuid.New(), categoryID, decimal.RequireFromString("50.5"), "expense", end,
				(*string)(nil), time.Now(), (*string)(nil), (*string)(nil), (*string)(nil)))

	txs, err := s.ListTransactions(context.Background(), transaction.ListFilter{
		UserID:     userID,
		CategoryID: &categoryID,
		Type:       &expense,
		StartDate:  &start,
		EndDate:    &end,
	})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Nil(t, txs[0].Description)
	assert.Equal(t, "", txs[0].WalletName)
	assert.True(t, txs[1].Amount.Equal(decimal.RequireFromString("50.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteTransaction(t *testing.T) {
	userID, id := uuid.New(), uuid.New()

	t.Run("Deleted", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM transactions`).
			WithArgs(id, userID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, store.New(mock).DeleteTransaction(context.Background(), userID, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM transactions`).
			WithArgs(id, userID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := store.New(mock).DeleteTransaction(context.Background(), userID, id)
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})
}
