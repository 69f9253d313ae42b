package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget caps spending in one category for one calendar month.
type Budget struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Limit       decimal.Decimal
	Month       int
	Year        int
	Description *string
	CreatedAt   time.Time

	// Loaded via JOIN
	CategoryName string
	CategoryIcon string
}

// Patch holds the fields to change on an existing budget. Nil fields are left untouched.
type Patch struct {
	CategoryID  *uuid.UUID
	Limit       *decimal.Decimal
	Month       *int
	Year        *int
	Description *string
}
