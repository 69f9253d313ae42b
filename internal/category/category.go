package category

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/transaction"
)

var (
	ErrNotFound    = errors.New("category not found")
	ErrMissingName = errors.New("category name is required")
)

// Category groups transactions. Shared categories have no owner and are
// visible to every user.
type Category struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Name      string
	Icon      string
	Type      transaction.Type
	CreatedAt time.Time
}

// Shared reports whether the category belongs to no particular user.
func (c *Category) Shared() bool {
	return c.UserID == nil
}
