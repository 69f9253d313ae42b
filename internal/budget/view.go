package budget

import "github.com/shopspring/decimal"

type Status string

const (
	StatusOK      Status = "OK"
	StatusWarning Status = "WARNING"
	StatusOver    Status = "OVER"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// View is a budget together with how much of it has been spent.
type View struct {
	Budget     *Budget
	Spent      decimal.Decimal
	Limit      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage decimal.Decimal
	Status     Status
}

// NewView derives the display state of b given the amount spent in its
// category and month. Remaining goes negative once the limit is exceeded;
// Percentage is capped at 100.
func NewView(b *Budget, spent decimal.Decimal) View {
	percentage := decimal.Zero
	if b.Limit.IsPositive() {
		percentage = decimal.Min(spent.Div(b.Limit).Mul(hundred), hundred)
	}

	status := StatusOK

	switch {
	case percentage.GreaterThanOrEqual(hundred):
		status = StatusOver
	case percentage.GreaterThanOrEqual(warningThreshold):
		status = StatusWarning
	}

	return View{
		Budget:     b,
		Spent:      spent,
		Limit:      b.Limit,
		Remaining:  b.Limit.Sub(spent),
		Percentage: percentage,
		Status:     status,
	}
}
