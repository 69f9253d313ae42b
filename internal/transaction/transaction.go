package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense entry in a user's ledger.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	WalletID    uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Type        Type
	Date        time.Time // Calendar date, time of day is ignored
	Description *string
	CreatedAt   time.Time

	// Loaded via JOIN
	WalletName   string
	CategoryName string
	CategoryIcon string
}

// IsExpense reports whether the transaction counts towards spending.
func (t *Transaction) IsExpense() bool {
	return t != nil && t.Type == TypeExpense
}

// Patch holds the fields to change on an existing transaction.
// Nil fields are left untouched.
type Patch struct {
	WalletID    *uuid.UUID
	CategoryID  *uuid.UUID
	Amount      *decimal.Decimal
	Type        *Type
	Date        *time.Time
	Description *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.WalletID == nil && p.CategoryID == nil && p.Amount == nil &&
		p.Type == nil && p.Date == nil && p.Description == nil
}

// Apply returns a copy of tx with the patch applied.
func (p Patch) Apply(tx Transaction) Transaction {
	if p.WalletID != nil {
		tx.WalletID = *p.WalletID
	}

	if p.CategoryID != nil {
		tx.CategoryID = *p.CategoryID
	}

	if p.Amount != nil {
		tx.Amount = *p.Amount
	}

	if p.Type != nil {
		tx.Type = *p.Type
	}

	if p.Date != nil {
		tx.Date = *p.Date
	}

	if p.Description != nil {
		tx.Description = p.Description
	}

	return tx
}
