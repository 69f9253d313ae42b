package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dompet-app/dompet/internal/category"
	"github.com/dompet-app/dompet/internal/transaction"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)

	svc := category.NewService(repo)

	got, err := svc.Create(context.Background(), category.CreateParams{
		UserID: userID, Name: " Pets ", Icon: "🐶", Type: transaction.TypeExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pets", got.Name)
	assert.False(t, got.Shared())

	_, err = svc.Create(context.Background(), category.CreateParams{UserID: userID, Name: "Pets", Type: "gift"})
	assert.ErrorIs(t, err, transaction.ErrInvalidType)

	_, err = svc.Create(context.Background(), category.CreateParams{UserID: userID, Type: transaction.TypeIncome})
	assert.ErrorIs(t, err, category.ErrMissingName)
}
