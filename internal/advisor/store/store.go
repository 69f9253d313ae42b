package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/advisor"
	"github.com/dompet-app/dompet/internal/database"
)

type Store struct {
	db database.DB
}

func New(db database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveMessage(ctx context.Context, m *advisor.Message) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO chat_history (user_id, role, content) VALUES ($1, $2, $3) RETURNING id, created_at`,
		m.UserID, string(m.Role), m.Content,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving chat message: %w", err)
	}

	return nil
}

// ListMessages returns the newest limit messages in chronological order.
func (s *Store) ListMessages(ctx context.Context, userID uuid.UUID, limit int) ([]*advisor.Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, role, content, created_at FROM chat_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var messages []*advisor.Message

	for rows.Next() {
		var (
			m    advisor.Message
			role string
		)

		if err := rows.Scan(&m.ID, &m.UserID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}

		m.Role = advisor.Role(role)
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", err)
	}

	slices.Reverse(messages)

	return messages, nil
}

func (s *Store) ClearMessages(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM chat_history WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clearing chat history: %w", err)
	}

	return nil
}
