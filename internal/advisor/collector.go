package advisor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dompet-app/dompet/internal/budget"
	"github.com/dompet-app/dompet/internal/goal"
	"github.com/dompet-app/dompet/internal/profile"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
	"github.com/dompet-app/dompet/internal/wallet"
)

// Collector reads a snapshot from the domain services.
type Collector struct {
	Profiles     *profile.Service
	Wallets      *wallet.Service
	Transactions *transaction.Service
	Budgets      *budget.Service
	Goals        *goal.Service
}

func (c *Collector) Snapshot(
	ctx context.Context, userID uuid.UUID, spent budget.SpentSource, now time.Time,
) (Snapshot, error) {
	snap := Snapshot{Now: now}
	month, year := int(now.Month()), now.Year()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.Profiles.Get(gctx, userID)
		if err != nil {
			return err
		}

		snap.UserName = p.DisplayName()

		return nil
	})

	g.Go(func() (err error) {
		snap.Wallets, err = c.Wallets.List(gctx, userID)
		return err
	})

	g.Go(func() error {
		filter, err := spending.MonthFilter(userID, month, year)
		if err != nil {
			return err
		}

		snap.Transactions, err = c.Transactions.List(gctx, filter)

		return err
	})

	g.Go(func() (err error) {
		snap.Budgets, err = c.Budgets.Overview(gctx, spent, userID, month, year)
		return err
	})

	g.Go(func() (err error) {
		snap.Goals, err = c.Goals.List(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}
