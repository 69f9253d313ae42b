// Package spending keeps per-category monthly expense totals consistent with
// the transaction ledger.
package spending

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/transaction"
)

// Key identifies one monthly spending total.
type Key struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Month      int
	Year       int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%04d-%02d", k.UserID, k.CategoryID, k.Year, k.Month)
}

// KeyFor returns the key a transaction contributes to. Income never contributes.
func KeyFor(tx *transaction.Transaction) (Key, bool) {
	if !tx.IsExpense() {
		return Key{}, false
	}

	return Key{
		UserID:     tx.UserID,
		CategoryID: tx.CategoryID,
		Month:      int(tx.Date.Month()),
		Year:       tx.Date.Year(),
	}, true
}

// Filter returns the ledger query whose results sum to the key's total.
func (k Key) Filter() (transaction.ListFilter, error) {
	start, end, err := MonthRange(k.Month, k.Year)
	if err != nil {
		return transaction.ListFilter{}, err
	}

	return transaction.ListFilter{
		UserID:     k.UserID,
		CategoryID: new(k.CategoryID),
		Type:       new(transaction.TypeExpense),
		StartDate:  &start,
		EndDate:    &end,
	}, nil
}

// MonthFilter lists every transaction of userID in the month, oldest first.
func MonthFilter(userID uuid.UUID, month, year int) (transaction.ListFilter, error) {
	start, end, err := MonthRange(month, year)
	if err != nil {
		return transaction.ListFilter{}, err
	}

	return transaction.ListFilter{UserID: userID, StartDate: &start, EndDate: &end, Ascending: true}, nil
}

// ForUser matches every key belonging to userID.
func ForUser(userID uuid.UUID) func(Key) bool {
	return func(k Key) bool { return k.UserID == userID }
}

// ForMonth matches every key of userID in the given month.
func ForMonth(userID uuid.UUID, month, year int) func(Key) bool {
	return func(k Key) bool { return k.UserID == userID && k.Month == month && k.Year == year }
}

// DaysInMonth returns the number of days in month of year, leap years included.
func DaysInMonth(month, year int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the first and last calendar day of the month, both inclusive.
func MonthRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidRange, month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month), DaysInMonth(month, year), 0, 0, 0, 0, time.UTC)

	return start, end, nil
}

// ComputeSpent sums the amounts of transactions already filtered to one key.
// Nil entries count as zero.
func ComputeSpent(txs []*transaction.Transaction) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range txs {
		if tx == nil {
			continue
		}

		total = total.Add(tx.Amount)
	}

	return total
}
