package view

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/money"
)

const dbTimeout = 5 * time.Second

func FormatAmount(amount decimal.Decimal) string {
	return money.Format(amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// parseAmount accepts plain digits with optional "." or "," grouping,
// e.g. "45000", "45.000" or "1,250,000".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(".", "", ",", "", " ", "").Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("amount must be a number")
	}

	if !d.IsPositive() {
		return decimal.Zero, errors.New("amount must be greater than zero")
	}

	return d, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}

	return nil
}
