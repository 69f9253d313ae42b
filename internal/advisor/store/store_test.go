package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-app/dompet/internal/advisor"
	"github.com/dompet-app/dompet/internal/advisor/store"
)

func TestStore_ListMessages_Chronological(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	t0 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM chat_history`).
		WithArgs(userID, 50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "role", "content", "created_at"}).
			AddRow(uuid.New(), userID, "assistant", "Try cooking at home.", t0.Add(time.Second)).
			AddRow(uuid.New(), userID, "user", "How do I spend less on food?", t0))

	messages, err := store.New(mock).ListMessages(context.Background(), userID, 50)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, advisor.RoleUser, messages[0].Role)
	assert.Equal(t, advisor.RoleAssistant, messages[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveMessage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	m := &advisor.Message{UserID: uuid.New(), Role: advisor.RoleUser, Content: "hi"}

	mock.ExpectQuery(`INSERT INTO chat_history`).
		WithArgs(m.UserID, "user", "hi").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, time.Now()))

	require.NoError(t, store.New(mock).SaveMessage(context.Background(), m))
	assert.Equal(t, id, m.ID)
}
