package advisor_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-app/dompet/internal/advisor"
	"github.com/dompet-app/dompet/internal/budget"
	"github.com/dompet-app/dompet/internal/goal"
	"github.com/dompet-app/dompet/internal/transaction"
	"github.com/dompet-app/dompet/internal/wallet"
)

func expense(category string, amount int64) *transaction.Transaction {
	return &transaction.Transaction{Type: transaction.TypeExpense, CategoryName: category, Amount: decimal.NewFromInt(amount)}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	past := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	food := &budget.Budget{CategoryName: "Food", Limit: decimal.NewFromInt(500000)}
	fun := &budget.Budget{CategoryName: "Entertainment", Limit: decimal.NewFromInt(100000)}

	snap := advisor.Snapshot{
		UserName: "Rina",
		Wallets: []*wallet.Wallet{
			{Balance: decimal.NewFromInt(300000)},
			{Balance: decimal.NewFromInt(200000)},
		},
		Transactions: []*transaction.Transaction{
			{Type: transaction.TypeIncome, Amount: decimal.NewFromInt(1000000)},
			expense("Food", 450000),
			expense("Transport", 50000),
			expense("Entertainment", 120000),
			expense("Bills", 10000),
		},
		Budgets: []budget.View{
			budget.NewView(food, decimal.NewFromInt(450000)),
			budget.NewView(fun, decimal.NewFromInt(120000)),
		},
		Goals: []*goal.Goal{
			{Name: "Laptop", TargetAmount: decimal.NewFromInt(1000000), CurrentAmount: decimal.NewFromInt(250000)},
			{Name: "Done", TargetAmount: decimal.NewFromInt(10), CurrentAmount: decimal.NewFromInt(10)},
			{Name: "Expired", TargetAmount: decimal.NewFromInt(10), Deadline: &past},
		},
		Now: now,
	}

	s := advisor.Summarize(snap)

	assert.Equal(t, "500000", s.Balance.String())
	assert.Equal(t, "1000000", s.Income.String())
	assert.Equal(t, "630000", s.Expense.String())
	assert.Equal(t, "370000", s.Net().String())

	require.Len(t, s.TopExpenses, 3)
	assert.Equal(t, "Food", s.TopExpenses[0].Name)
	assert.Equal(t, "Entertainment", s.TopExpenses[1].Name)
	assert.Equal(t, "Transport", s.TopExpenses[2].Name)

	assert.Equal(t, []string{"Entertainment (120% of limit)"}, s.OverBudget)
	assert.Equal(t, []string{"Food (90%)"}, s.WarningBudget)

	assert.Equal(t, 3, s.TotalGoals)
	require.Len(t, s.ActiveGoals, 1)
	assert.Equal(t, "Laptop", s.ActiveGoals[0].Name)

	out := s.String()
	assert.Contains(t, out, "User: Rina")
	assert.Contains(t, out, "Balance: Rp 500.000")
	assert.Contains(t, out, "Top Expenses: Food: Rp 450.000, Entertainment: Rp 120.000, Transport: Rp 50.000")
	assert.Contains(t, out, "Budgets: 2 active (Entertainment (120% of limit))")
	assert.Contains(t, out, "Goals: 1/3 active - Laptop: 25% complete, Rp 750.000 remaining")
}

func TestSummarize_Empty(t *testing.T) {
	out := advisor.Summarize(advisor.Snapshot{Now: time.Now()}).String()

	assert.Contains(t, out, "User: User")
	assert.Contains(t, out, "No expenses yet")
	assert.Contains(t, out, "All budgets are within limit")
	assert.Contains(t, out, "No active goals")
}

func TestBuildPrompt(t *testing.T) {
	prompt := advisor.BuildPrompt("Persona.", advisor.Summary{UserName: "Rina"}, "  Should I buy a console?\n")

	assert.True(t, strings.HasPrefix(prompt, "Persona.\n\nUser: Rina"))
	assert.True(t, strings.HasSuffix(prompt, "Question: Should I buy a console?"))
	assert.NotContains(t, prompt, "\n\n\n")
}

func TestBuildPrompt_Truncates(t *testing.T) {
	prompt := advisor.BuildPrompt("P", advisor.Summary{}, strings.Repeat("é", 20000))

	assert.LessOrEqual(t, len(prompt), 30000)
	assert.True(t, strings.HasPrefix(prompt, "P\n\n"))
}
