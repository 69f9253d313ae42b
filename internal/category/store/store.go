package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/category"
	"github.com/dompet-app/dompet/internal/database"
	"github.com/dompet-app/dompet/internal/transaction"
)

type Store struct {
	db database.DB
}

func New(db database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO categories (user_id, name, icon, type) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		c.UserID, c.Name, c.Icon, string(c.Type),
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) ListCategories(
	ctx context.Context, userID uuid.UUID, txType *transaction.Type,
) ([]*category.Category, error) {
	query := `SELECT id, user_id, name, icon, type, created_at FROM categories
		WHERE (user_id = $1 OR user_id IS NULL)`
	args := []any{userID}

	if txType != nil {
		query += ` AND type = $2`

		args = append(args, string(*txType))
	}

	query += ` ORDER BY name`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		var (
			c       category.Category
			typeStr string
		)

		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &typeStr, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		c.Type = transaction.Type(typeStr)
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}
