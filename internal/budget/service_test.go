package budget_test

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

	"github.com/dompet-app/dompet/internal/budget"
	"github.com/dompet-app/dompet/internal/spending"
)

func TestService_Create(t *testing.T) {
	userID, categoryID := uuid.New(), uuid.New()

	type testCase struct {
		name      string
		params    budget.CreateParams
		setupMock func(m *budget.MockRepository)
		wantErr   error
	}

	valid := budget.CreateParams{
		UserID:     userID,
		CategoryID: categoryID,
		Limit:      decimal.NewFromInt(500000),
		Month:      6,
		Year:       2024,
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().
					CreateBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *budget.Budget) error {
						b.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "ZeroLimit",
			params: func() budget.CreateParams {
				p := valid
				p.Limit = decimal.Zero
				return p
			}(),
			wantErr: budget.ErrInvalidLimit,
		},
		{
			name: "BadMonth",
			params: func() budget.CreateParams {
				p := valid
				p.Month = 13
				return p
			}(),
			wantErr: budget.ErrInvalidPeriod,
		},
		{
			name:   "RepoError",
			params: valid,
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := budget.NewService(repo).Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, categoryID, got.CategoryID)
		})
	}
}

func TestService_Update_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := budget.NewService(budget.NewMockRepository(ctrl))

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), budget.Patch{Limit: new(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, budget.ErrInvalidLimit)

	_, err = svc.Update(context.Background(), uuid.New(), uuid.New(), budget.Patch{Month: new(0)})
	assert.ErrorIs(t, err, budget.ErrInvalidPeriod)
}

func TestService_Overview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID, food, transport := uuid.New(), uuid.New(), uuid.New()
	month, year := 6, 2024

	budgets := []*budget.Budget{
		{ID: uuid.New(), UserID: userID, CategoryID: food, Limit: decimal.NewFromInt(500000), Month: month, Year: year},
		{ID: uuid.New(), UserID: userID, CategoryID: food, Limit: decimal.NewFromInt(400000), Month: month, Year: year},
		{ID: uuid.New(), UserID: userID, CategoryID: transport, Limit: decimal.NewFromInt(200000), Month: month, Year: year},
	}

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().
		ListBudgets(gomock.Any(), budget.ListFilter{UserID: userID, Month: &month, Year: &year}).
		Return(budgets, nil)

	spent := budget.NewMockSpentSource(ctrl)
	spent.EXPECT().
		Fetch(gomock.Any(), spending.Key{UserID: userID, CategoryID: food, Month: month, Year: year}).
		Return(decimal.NewFromInt(450000), nil).
		Times(2)
	spent.EXPECT().
		Fetch(gomock.Any(), spending.Key{UserID: userID, CategoryID: transport, Month: month, Year: year}).
		Return(decimal.Zero, nil)

	views, err := budget.NewService(repo).Overview(context.Background(), spent, userID, month, year)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, budgets[0].ID, views[0].Budget.ID)
	assert.Equal(t, budget.StatusWarning, views[0].Status)
	assert.Equal(t, budgets[1].ID, views[1].Budget.ID)
	assert.Equal(t, budget.StatusOver, views[1].Status)
	assert.Equal(t, budget.StatusOK, views[2].Status)
}

func TestService_Overview_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().ListBudgets(gomock.Any(), gomock.Any()).Return([]*budget.Budget{
		{ID: uuid.New(), UserID: userID, CategoryID: uuid.New(), Limit: decimal.NewFromInt(1), Month: 1, Year: 2024},
	}, nil)

	spent := budget.NewMockSpentSource(ctrl)
	spent.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(decimal.Zero, errors.New("ledger down"))

	_, err := budget.NewService(repo).Overview(context.Background(), spent, userID, 1, 2024)
	assert.ErrorContains(t, err, "ledger down")
}

func TestService_Overview_InvalidMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := budget.NewService(budget.NewMockRepository(ctrl)).
		Overview(context.Background(), budget.NewMockSpentSource(ctrl), uuid.New(), 0, 2024)
	assert.ErrorIs(t, err, budget.ErrInvalidPeriod)
}

func TestKey(t *testing.T) {
	b := &budget.Budget{UserID: uuid.New(), CategoryID: uuid.New(), Month: 2, Year: 2024, CreatedAt: time.Now()}

	assert.Equal(t, spending.Key{UserID: b.UserID, CategoryID: b.CategoryID, Month: 2, Year: 2024}, budget.Key(b))
}
