package budget_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dompet-app/dompet/internal/budget"
)

func TestNewView(t *testing.T) {
	tests := []struct {
		name          string
		limit         int64
		spent         int64
		wantPct       int64
		wantRemaining int64
		wantStatus    budget.Status
	}{
		{name: "Untouched", limit: 500000, spent: 0, wantPct: 0, wantRemaining: 500000, wantStatus: budget.StatusOK},
		{name: "BelowWarning", limit: 500000, spent: 395000, wantPct: 79, wantRemaining: 105000, wantStatus: budget.StatusOK},
		{name: "WarningThreshold", limit: 500000, spent: 400000, wantPct: 80, wantRemaining: 100000, wantStatus: budget.StatusWarning},
		{name: "Warning", limit: 500000, spent: 450000, wantPct: 90, wantRemaining: 50000, wantStatus: budget.StatusWarning},
		{name: "Exact", limit: 500000, spent: 500000, wantPct: 100, wantRemaining: 0, wantStatus: budget.StatusOver},
		{name: "Over", limit: 500000, spent: 550000, wantPct: 100, wantRemaining: -50000, wantStatus: budget.StatusOver},
		{name: "ZeroLimit", limit: 0, spent: 100, wantPct: 0, wantRemaining: -100, wantStatus: budget.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &budget.Budget{Limit: decimal.NewFromInt(tt.limit)}

			v := budget.NewView(b, decimal.NewFromInt(tt.spent))

			assert.Same(t, b, v.Budget)
			assert.True(t, v.Percentage.Equal(decimal.NewFromInt(tt.wantPct)), "percentage %s", v.Percentage)
			assert.True(t, v.Remaining.Equal(decimal.NewFromInt(tt.wantRemaining)), "remaining %s", v.Remaining)
			assert.True(t, v.Spent.Equal(decimal.NewFromInt(tt.spent)))
			assert.Equal(t, tt.wantStatus, v.Status)
		})
	}
}

func TestNewView_FractionalPercentage(t *testing.T) {
	v := budget.NewView(&budget.Budget{Limit: decimal.NewFromInt(300)}, decimal.NewFromInt(100))

	assert.Equal(t, "33.33", v.Percentage.StringFixed(2))
	assert.Equal(t, budget.StatusOK, v.Status)
}
