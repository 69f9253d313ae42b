package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dompet-app/dompet/internal/transaction"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	valid := transaction.CreateParams{
		UserID:     userID,
		WalletID:   uuid.New(),
		CategoryID: uuid.New(),
		Amount:     decimal.RequireFromString("12500.50"),
		Type:       transaction.TypeExpense,
		Date:       time.Date(2024, 6, 3, 15, 4, 5, 0, time.UTC),
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: valid},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), tx.Date)
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ZeroAmount",
			args: args{params: func() transaction.CreateParams {
				p := valid
				p.Amount = decimal.Zero
				return p
			}()},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name: "UnknownType",
			args: args{params: func() transaction.CreateParams {
				p := valid
				p.Type = "transfer"
				return p
			}()},
			wantErr: transaction.ErrInvalidType,
		},
		{
			name: "MissingDate",
			args: args{params: func() transaction.CreateParams {
				p := valid
				p.Date = time.Time{}
				return p
			}()},
			wantErr: transaction.ErrMissingDate,
		},
		{
			name: "RepoError",
			args: args{params: valid},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, userID, got.UserID)
		})
	}
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []transaction.CreateParams{
		{UserID: uuid.New(), Amount: decimal.NewFromInt(1000), Type: transaction.TypeExpense, Date: date},
		{UserID: uuid.New(), Amount: decimal.NewFromInt(2000), Type: transaction.TypeIncome, Date: date},
	}

	repo.EXPECT().CreateTransactions(gomock.Any(), gomock.Len(2)).Return(nil)

	txs, err := svc.CreateBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestService_CreateBatch_InvalidEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := transaction.NewService(transaction.NewMockRepository(ctrl))

	params := []transaction.CreateParams{
		{Amount: decimal.NewFromInt(1000), Type: transaction.TypeExpense, Date: time.Now()},
		{Amount: decimal.NewFromInt(-5), Type: transaction.TypeExpense, Date: time.Now()},
	}

	_, err := svc.CreateBatch(context.Background(), params)
	assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
}

func TestService_Update(t *testing.T) {
	userID, id := uuid.New(), uuid.New()
	expense := transaction.TypeExpense

	type testCase struct {
		name      string
		patch     transaction.Patch
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "Success",
			patch: transaction.Patch{Type: &expense},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					UpdateTransaction(gomock.Any(), userID, id, transaction.Patch{Type: &expense}).
					Return(&transaction.Transaction{ID: id, Type: expense}, nil)
			},
		},
		{
			name:  "EmptyPatchReadsCurrent",
			patch: transaction.Patch{},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), userID, id).
					Return(&transaction.Transaction{ID: id}, nil)
			},
		},
		{
			name:    "NegativeAmount",
			patch:   transaction.Patch{Amount: new(decimal.NewFromInt(-1))},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name:  "NotFound",
			patch: transaction.Patch{Type: &expense},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					UpdateTransaction(gomock.Any(), userID, id, gomock.Any()).
					Return(nil, transaction.ErrNotFound)
			},
			wantErr: transaction.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := transaction.NewService(repo).Update(context.Background(), userID, id, tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	cat := uuid.New()
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	old := transaction.Transaction{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Amount:     decimal.NewFromInt(75),
		Type:       transaction.TypeIncome,
		Date:       time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	got := transaction.Patch{CategoryID: &cat, Date: &date}.Apply(old)

	assert.Equal(t, cat, got.CategoryID)
	assert.Equal(t, date, got.Date)
	assert.Equal(t, transaction.TypeIncome, got.Type)
	assert.True(t, got.Amount.Equal(old.Amount))
	assert.NotEqual(t, cat, old.CategoryID, "original must not be modified")
}
