package spending

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dompet-app/dompet/internal/transaction"
)

// Ledger is the authoritative transaction store. *transaction.Service implements it.
//
//go:generate mockgen -source=coordinator.go -destination=ledger_mock.go -package=spending
type Ledger interface {
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
	CreateBatch(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error)
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch transaction.Patch) (*transaction.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type CoordinatorOptions struct {
	Logger *slog.Logger
	// SafetyNetRefetch recomputes every cached total of the user after each
	// mutation. When false only totals with active observers are recomputed
	// and the rest are left stale.
	SafetyNetRefetch bool
}

// Coordinator performs ledger mutations and brings the affected spending
// totals in cache up to date before returning.
type Coordinator struct {
	ledger     Ledger
	cache      *Cache
	calculator *Calculator
	logger     *slog.Logger
	refetchAll bool
}

func NewCoordinator(ledger Ledger, cache *Cache, opts CoordinatorOptions) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Coordinator{
		ledger:     ledger,
		cache:      cache,
		calculator: NewCalculator(ledger),
		logger:     logger.With("component", "spending"),
		refetchAll: opts.SafetyNetRefetch,
	}
}

func (c *Coordinator) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	tx, err := c.ledger.Create(ctx, params)
	if err != nil {
		mutations.WithLabelValues("create", "error").Inc()
		return nil, &LedgerWriteError{Op: "create", Err: err}
	}

	mutations.WithLabelValues("create", "ok").Inc()
	c.reconcile(ctx, tx.UserID, CreatedKeys(tx))

	return tx, nil
}

// CreateBatch writes all entries atomically and refreshes every total any of
// them contributes to.
func (c *Coordinator) CreateBatch(
	ctx context.Context, params []transaction.CreateParams,
) ([]*transaction.Transaction, error) {
	txs, err := c.ledger.CreateBatch(ctx, params)
	if err != nil {
		mutations.WithLabelValues("create_batch", "error").Inc()
		return nil, &LedgerWriteError{Op: "create batch", Err: err}
	}

	mutations.WithLabelValues("create_batch", "ok").Inc()

	byUser := make(map[uuid.UUID][]*transaction.Transaction)
	for _, tx := range txs {
		byUser[tx.UserID] = append(byUser[tx.UserID], tx)
	}

	for userID, userTxs := range byUser {
		c.reconcile(ctx, userID, CreatedKeys(userTxs...))
	}

	return txs, nil
}

// Update applies patch to the transaction id. prior is the record as it was
// before the update; when nil it is read from the ledger first.
func (c *Coordinator) Update(
	ctx context.Context, userID, id uuid.UUID, prior *transaction.Transaction, patch transaction.Patch,
) (*transaction.Transaction, error) {
	if prior == nil {
		var err error

		prior, err = c.ledger.Get(ctx, userID, id)
		if err != nil {
			mutations.WithLabelValues("update", "error").Inc()
			return nil, &LedgerWriteError{Op: "update", Err: err}
		}
	} else if prior.UserID != userID || prior.ID != id {
		mutations.WithLabelValues("update", "error").Inc()
		return nil, &LedgerWriteError{Op: "update", Err: ErrPriorMismatch}
	}

	tx, err := c.ledger.Update(ctx, userID, id, patch)
	if err != nil {
		mutations.WithLabelValues("update", "error").Inc()
		return nil, &LedgerWriteError{Op: "update", Err: err}
	}

	mutations.WithLabelValues("update", "ok").Inc()

	c.reconcile(ctx, userID, UpdatedKeys(prior, patch))

	return tx, nil
}

// Delete removes prior from the ledger. The full prior record is needed to
// know which total it contributed to.
func (c *Coordinator) Delete(ctx context.Context, prior *transaction.Transaction) error {
	if prior == nil {
		return &LedgerWriteError{Op: "delete", Err: ErrPriorRequired}
	}

	if err := c.ledger.Delete(ctx, prior.UserID, prior.ID); err != nil {
		mutations.WithLabelValues("delete", "error").Inc()
		return &LedgerWriteError{Op: "delete", Err: err}
	}

	mutations.WithLabelValues("delete", "ok").Inc()
	c.reconcile(ctx, prior.UserID, DeletedKeys(prior))

	return nil
}

// reconcile recomputes keys from the ledger and stores the fresh totals, then
// invalidates the user's other totals as a safety net. Failures are logged only.
// Mutations that involve no expense touch no totals at all.
func (c *Coordinator) reconcile(ctx context.Context, userID uuid.UUID, keys []Key) {
	if len(keys) == 0 {
		return
	}

	fresh, errs := c.recompute(ctx, keys)

	for _, err := range errs {
		recomputeFailures.Inc()
		c.logger.Warn("failed to recompute spending", "key", err.Key.String(), "error", err.Err)
	}

	if c.cache == nil {
		return
	}

	others := func(k Key) bool {
		_, done := fresh[k]
		return k.UserID == userID && !done
	}

	c.cache.Invalidate(others)

	var err error
	if c.refetchAll {
		err = c.cache.RefetchMatching(ctx, others)
	} else {
		err = c.cache.RefetchActive(ctx, others)
	}

	if err != nil {
		c.logger.Warn("failed to refetch spending", "user_id", userID, "error", err)
	}
}

// recompute runs one ledger query per key concurrently and writes each
// success to the cache as soon as it arrives.
func (c *Coordinator) recompute(ctx context.Context, keys []Key) (map[Key]struct{}, []*RecomputeError) {
	var (
		mu    sync.Mutex
		fresh = make(map[Key]struct{}, len(keys))
		errs  []*RecomputeError
	)

	var g errgroup.Group

	for _, key := range keys {
		g.Go(func() error {
			spent, err := c.calculator.Spent(ctx, key)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				errs = append(errs, &RecomputeError{Key: key, Err: err})
				return nil
			}

			c.set(key, spent)
			fresh[key] = struct{}{}

			return nil
		})
	}

	_ = g.Wait()

	return fresh, errs
}

func (c *Coordinator) set(key Key, spent decimal.Decimal) {
	if c.cache != nil {
		c.cache.Set(key, spent)
	}
}

// IsLedgerWriteError reports whether err came from a failed ledger write.
func IsLedgerWriteError(err error) bool {
	var lwe *LedgerWriteError
	return errors.As(err, &lwe)
}
