package spending

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/querycache"
	"github.com/dompet-app/dompet/internal/transaction"
)

// Cache holds monthly spending totals for one session.
type Cache = querycache.Store[Key, decimal.Decimal]

// Lister reads transactions from the ledger.
type Lister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Calculator computes a total straight from the ledger, bypassing any cache.
type Calculator struct {
	ledger Lister
}

func NewCalculator(ledger Lister) *Calculator {
	return &Calculator{ledger: ledger}
}

func (c *Calculator) Spent(ctx context.Context, key Key) (decimal.Decimal, error) {
	filter, err := key.Filter()
	if err != nil {
		return decimal.Zero, err
	}

	txs, err := c.ledger.List(ctx, filter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listing spending transactions: %w", err)
	}

	return ComputeSpent(txs), nil
}

// NewCache returns an empty spending cache that computes missing totals from ledger.
func NewCache(ledger Lister, opts querycache.Options) *Cache {
	if opts.Name == "" {
		opts.Name = "spending"
	}

	return querycache.New(NewCalculator(ledger).Spent, opts)
}
