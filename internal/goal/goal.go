package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("goal not found")
	ErrInvalidTarget = errors.New("goal target must be greater than zero")
	ErrInvalidAmount = errors.New("contribution must be greater than zero")
	ErrMissingName   = errors.New("goal name is required")
)

// Goal is a savings target.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
	CreatedAt     time.Time
}

var hundred = decimal.NewFromInt(100)

// Progress returns how far the goal is towards its target, clamped to 0..100.
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}

	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)

	return decimal.Max(decimal.Zero, decimal.Min(p, hundred))
}

// Reached reports whether the current amount has met the target.
func (g *Goal) Reached() bool {
	return g.TargetAmount.IsPositive() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

type Patch struct {
	Name         *string
	TargetAmount *decimal.Decimal
	Deadline     *time.Time
}
