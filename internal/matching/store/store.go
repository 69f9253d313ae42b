package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dompet-app/dompet/internal/database"
	"github.com/dompet-app/dompet/internal/matching"
)

type Store struct {
	db database.DB
}

func New(db database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, userID uuid.UUID, description string) (uuid.UUID, bool, error) {
	query := `
		SELECT category_id
		FROM category_rules
		WHERE user_id = $1 AND $2 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var categoryID uuid.UUID

	err := s.db.QueryRow(ctx, query, userID, description).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}

		return uuid.Nil, false, fmt.Errorf("finding match: %w", err)
	}

	return categoryID, true, nil
}

func (s *Store) CreateRule(ctx context.Context, rule *matching.Rule) error {
	query := `
		INSERT INTO category_rules (user_id, pattern, category_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query, rule.UserID, rule.Pattern, rule.CategoryID).Scan(&rule.ID, &rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context, userID uuid.UUID) ([]*matching.Rule, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, pattern, category_id, created_at
		FROM category_rules
		WHERE user_id = $1
		ORDER BY pattern`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}

	rules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*matching.Rule, error) {
		var r matching.Rule
		err := row.Scan(&r.ID, &r.UserID, &r.Pattern, &r.CategoryID, &r.CreatedAt)

		return &r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning rules: %w", err)
	}

	return rules, nil
}

func (s *Store) DeleteRule(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM category_rules WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return matching.ErrNotFound
	}

	return nil
}
