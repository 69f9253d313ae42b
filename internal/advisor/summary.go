package advisor

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/budget"
	"github.com/dompet-app/dompet/internal/goal"
	"github.com/dompet-app/dompet/internal/money"
	"github.com/dompet-app/dompet/internal/transaction"
	"github.com/dompet-app/dompet/internal/wallet"
)

const topCategories = 3

// Snapshot is the raw data a Summary is derived from.
type Snapshot struct {
	UserName     string
	Wallets      []*wallet.Wallet
	Transactions []*transaction.Transaction // the current month only
	Budgets      []budget.View
	Goals        []*goal.Goal
	Now          time.Time
}

type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// Summary is the financial context sent along with every question.
type Summary struct {
	UserName      string
	Balance       decimal.Decimal
	Income        decimal.Decimal
	Expense       decimal.Decimal
	TopExpenses   []CategoryTotal
	BudgetCount   int
	OverBudget    []string
	WarningBudget []string
	TotalGoals    int
	ActiveGoals   []*goal.Goal
}

func (s Summary) Net() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

// Summarize reduces a snapshot to the figures the advisor talks about.
func Summarize(snap Snapshot) Summary {
	s := Summary{
		UserName:    snap.UserName,
		Balance:     decimal.Zero,
		Income:      decimal.Zero,
		Expense:     decimal.Zero,
		BudgetCount: len(snap.Budgets),
		TotalGoals:  len(snap.Goals),
	}

	if s.UserName == "" {
		s.UserName = "User"
	}

	for _, w := range snap.Wallets {
		s.Balance = s.Balance.Add(w.Balance)
	}

	byCategory := make(map[string]decimal.Decimal)

	for _, tx := range snap.Transactions {
		if tx.IsExpense() {
			s.Expense = s.Expense.Add(tx.Amount)
			if tx.CategoryName != "" {
				byCategory[tx.CategoryName] = byCategory[tx.CategoryName].Add(tx.Amount)
			}

			continue
		}

		s.Income = s.Income.Add(tx.Amount)
	}

	for name, total := range byCategory {
		s.TopExpenses = append(s.TopExpenses, CategoryTotal{Name: name, Total: total})
	}

	slices.SortFunc(s.TopExpenses, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	if len(s.TopExpenses) > topCategories {
		s.TopExpenses = s.TopExpenses[:topCategories]
	}

	for _, v := range snap.Budgets {
		name := v.Budget.CategoryName
		if name == "" {
			name = "Uncategorized"
		}

		switch v.Status {
		case budget.StatusOver:
			s.OverBudget = append(s.OverBudget, fmt.Sprintf("%s (%s of limit)", name, rawPercent(v)))
		case budget.StatusWarning:
			s.WarningBudget = append(s.WarningBudget, fmt.Sprintf("%s (%s)", name, money.Percent(v.Percentage)))
		}
	}

	for _, g := range snap.Goals {
		if g.Reached() {
			continue
		}

		if g.Deadline != nil && g.Deadline.Before(dateOf(snap.Now)) {
			continue
		}

		s.ActiveGoals = append(s.ActiveGoals, g)
	}

	return s
}

// rawPercent is the unclamped share of the limit spent.
func rawPercent(v budget.View) string {
	if !v.Limit.IsPositive() {
		return "100%"
	}

	return money.Percent(v.Spent.Div(v.Limit).Mul(decimal.NewFromInt(100)))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// String renders the summary as prompt lines.
func (s Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "User: %s\n", s.UserName)
	fmt.Fprintf(&b, "Balance: %s | Income: %s | Expense: %s | Net: %s\n",
		money.Format(s.Balance), money.Format(s.Income), money.Format(s.Expense), money.Format(s.Net()))

	b.WriteString("Top Expenses: ")

	if len(s.TopExpenses) == 0 {
		b.WriteString("No expenses yet")
	}

	for i, c := range s.TopExpenses {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%s: %s", c.Name, money.Format(c.Total))
	}

	b.WriteString("\n")

	over := "All budgets are within limit"
	if len(s.OverBudget) > 0 {
		over = strings.Join(s.OverBudget, ", ")
	}

	fmt.Fprintf(&b, "Budgets: %d active (%s)\n", s.BudgetCount, over)

	if len(s.WarningBudget) > 0 {
		fmt.Fprintf(&b, "Close to limit: %s\n", strings.Join(s.WarningBudget, ", "))
	}

	progress := make([]string, 0, len(s.ActiveGoals))

	for _, g := range s.ActiveGoals {
		remaining := decimal.Max(decimal.Zero, g.TargetAmount.Sub(g.CurrentAmount))
		progress = append(progress, fmt.Sprintf("%s: %s complete, %s remaining",
			g.Name, money.Percent(g.Progress()), money.Format(remaining)))
	}

	goals := "No active goals"
	if len(progress) > 0 {
		goals = strings.Join(progress, "; ")
	}

	fmt.Fprintf(&b, "Goals: %d/%d active - %s\n", len(s.ActiveGoals), s.TotalGoals, goals)

	return b.String()
}
