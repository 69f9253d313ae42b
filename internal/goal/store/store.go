package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/database"
	"github.com/dompet-app/dompet/internal/goal"
)

type Store struct {
	db database.DB
}

func New(db database.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal
	if err := s.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.CreatedAt); err != nil {
		return nil, err
	}

	return &g, nil
}

const goalColumns = `id, user_id, name, target_amount, current_amount, deadline, created_at`

func notFound(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return goal.ErrNotFound
	}

	return fmt.Errorf("%s goal: %w", action, err)
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO goals (user_id, name, target_amount, current_amount, deadline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		g.UserID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, userID, id uuid.UUID) (*goal.Goal, error) {
	g, err := scanGoal(s.db.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, notFound(err, "getting")
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func (s *Store) UpdateGoal(ctx context.Context, userID, id uuid.UUID, patch goal.Patch) (*goal.Goal, error) {
	g, err := scanGoal(s.db.QueryRow(ctx, `
		UPDATE goals
		SET name          = COALESCE($3, name),
		    target_amount = COALESCE($4, target_amount),
		    deadline      = COALESCE($5, deadline)
		WHERE id = $1 AND user_id = $2
		RETURNING `+goalColumns,
		id, userID, patch.Name, patch.TargetAmount, patch.Deadline,
	))
	if err != nil {
		return nil, notFound(err, "updating")
	}

	return g, nil
}

// AddToGoal increments current_amount in place so concurrent contributions add up.
func (s *Store) AddToGoal(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*goal.Goal, error) {
	g, err := scanGoal(s.db.QueryRow(ctx,
		`UPDATE goals SET current_amount = current_amount + $3 WHERE id = $1 AND user_id = $2 RETURNING `+goalColumns,
		id, userID, amount,
	))
	if err != nil {
		return nil, notFound(err, "contributing to")
	}

	return g, nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return goal.ErrNotFound
	}

	return nil
}
