// Package export writes a month of transactions as CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/money"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
)

var header = []string{"date", "type", "category", "wallet", "description", "amount"}

type Lister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Service handles the export of transactions.
type Service struct {
	transactions Lister
}

func NewService(transactions Lister) *Service {
	return &Service{transactions: transactions}
}

// FileName is the suggested attachment name for a month's export.
func FileName(month, year int) string {
	return fmt.Sprintf("dompet-%04d-%02d.csv", year, month)
}

// WriteMonth writes the user's transactions for month/year to w, oldest first.
// It returns the number of rows written, excluding the header.
func (s *Service) WriteMonth(ctx context.Context, w io.Writer, userID uuid.UUID, month, year int) (int, error) {
	txs, err := s.Month(ctx, userID, month, year)
	if err != nil {
		return 0, err
	}

	if err := Write(w, txs); err != nil {
		return 0, err
	}

	return len(txs), nil
}

// Month returns the user's transactions for month/year, oldest first.
func (s *Service) Month(ctx context.Context, userID uuid.UUID, month, year int) ([]*transaction.Transaction, error) {
	filter, err := spending.MonthFilter(userID, month, year)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return txs, nil
}

// Write renders txs as CSV with a header row.
func Write(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		desc := ""
		if tx.Description != nil {
			desc = *tx.Description
		}

		record := []string{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			tx.CategoryName,
			tx.WalletName,
			desc,
			tx.Amount.StringFixed(2),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// Summary renders one line per transaction for a plain text report.
func Summary(txs []*transaction.Transaction) string {
	var (
		sb              strings.Builder
		income, expense decimal.Decimal
	)

	for _, tx := range txs {
		sign := "-"
		if tx.Type == transaction.TypeIncome {
			sign = "+"
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}

		desc := tx.CategoryName
		if tx.Description != nil && *tx.Description != "" {
			desc = *tx.Description
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s\n", tx.Date.Format("2006-01-02"), desc, sign, money.Format(tx.Amount))
	}

	fmt.Fprintf(&sb, "Income: %s | Expense: %s\n", money.Format(income), money.Format(expense))

	return sb.String()
}
