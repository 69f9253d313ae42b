package spending

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/querycache"
)

// Sessions hands out one spending cache per user and coordinators bound to
// it. A user's cache lives until End is called for them.
type Sessions struct {
	ledger   Ledger
	registry *querycache.Registry[uuid.UUID, Key, decimal.Decimal]
	opts     CoordinatorOptions
}

func NewSessions(ledger Ledger, cacheOpts querycache.Options, opts CoordinatorOptions) *Sessions {
	return &Sessions{
		ledger: ledger,
		registry: querycache.NewRegistry(func(uuid.UUID) *Cache {
			return NewCache(ledger, cacheOpts)
		}),
		opts: opts,
	}
}

// Cache returns the user's cache, creating it on first use.
func (s *Sessions) Cache(userID uuid.UUID) *Cache {
	return s.registry.Session(userID)
}

// Coordinator returns a coordinator writing through the user's cache.
func (s *Sessions) Coordinator(userID uuid.UUID) *Coordinator {
	return NewCoordinator(s.ledger, s.Cache(userID), s.opts)
}

// End discards the user's cache. It reports whether one was open.
func (s *Sessions) End(userID uuid.UUID) bool {
	return s.registry.End(userID)
}

// Close discards every cache.
func (s *Sessions) Close() {
	s.registry.CloseAll()
}

func (s *Sessions) Len() int {
	return s.registry.Len()
}
