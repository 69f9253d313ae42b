package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dompet-app/dompet/internal/budget"
	"github.com/dompet-app/dompet/internal/database"
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

// Expected column order: id, user_id, category_id, amount_limit, period_month,
// period_year, description, created_at, category_name, category_icon
func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var categoryName, categoryIcon *string

	if err := s.Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Limit, &b.Month, &b.Year, &b.Description, &b.CreatedAt,
		&categoryName, &categoryIcon,
	); err != nil {
		return nil, err
	}

	if categoryName != nil {
		b.CategoryName = *categoryName
	}

	if categoryIcon != nil {
		b.CategoryIcon = *categoryIcon
	}

	return &b, nil
}

const selectBudgetColumns = `
	b.id, b.user_id, b.category_id, b.amount_limit, b.period_month, b.period_year, b.description,
	b.created_at, c.name AS category_name, c.icon AS category_icon
`

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category_id, amount_limit, period_month, period_year, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query,
		b.UserID, b.CategoryID, b.Limit, b.Month, b.Year, b.Description,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, userID, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b LEFT JOIN categories c ON b.category_id = c.id
		WHERE b.id = $1 AND b.user_id = $2`

	b, err := scanBudget(s.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, filter budget.ListFilter) ([]*budget.Budget, error) {
	var sb strings.Builder

	sb.WriteString(`SELECT ` + selectBudgetColumns + `
		FROM budgets b LEFT JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1`)

	args := []any{filter.UserID}

	if filter.Month != nil {
		args = append(args, *filter.Month)
		fmt.Fprintf(&sb, " AND b.period_month = $%d", len(args))
	}

	if filter.Year != nil {
		args = append(args, *filter.Year)
		fmt.Fprintf(&sb, " AND b.period_year = $%d", len(args))
	}

	sb.WriteString(" ORDER BY b.created_at DESC")

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budgets: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, userID, id uuid.UUID, patch budget.Patch) (*budget.Budget, error) {
	query := `
		WITH b AS (
			UPDATE budgets
			SET category_id  = COALESCE($3, category_id),
			    amount_limit = COALESCE($4, amount_limit),
			    period_month = COALESCE($5, period_month),
			    period_year  = COALESCE($6, period_year),
			    description  = COALESCE($7, description)
			WHERE id = $1 AND user_id = $2
			RETURNING *
		)
		SELECT ` + selectBudgetColumns + ` FROM b LEFT JOIN categories c ON b.category_id = c.id`

	b, err := scanBudget(s.db.QueryRow(ctx, query,
		id, userID, patch.CategoryID, patch.Limit, patch.Month, patch.Year, patch.Description,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("updating budget: %w", err)
	}

	return b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return budget.ErrNotFound
	}

	return nil
}
