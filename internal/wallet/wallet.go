package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("wallet not found")
	ErrMissingName = errors.New("wallet name is required")
)

// Wallet is a place money is kept. Balance is maintained by the database from
// the wallet's transactions and is read-only here.
type Wallet struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
