package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dompet-app/dompet/internal/spending"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, userID, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, filter ListFilter) ([]*Budget, error)
	UpdateBudget(ctx context.Context, userID, id uuid.UUID, patch Patch) (*Budget, error)
	DeleteBudget(ctx context.Context, userID, id uuid.UUID) error
}

// SpentSource returns the spending total for a key, computing it if needed.
// *spending.Cache implements it.
type SpentSource interface {
	Fetch(ctx context.Context, key spending.Key) (decimal.Decimal, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Limit       decimal.Decimal
	Month       int
	Year        int
	Description *string
}

// ListFilter narrows a budget listing. Month and Year are applied only when set.
type ListFilter struct {
	UserID uuid.UUID
	Month  *int
	Year   *int
}

func validatePeriod(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidPeriod
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if !params.Limit.IsPositive() {
		return nil, ErrInvalidLimit
	}

	if err := validatePeriod(params.Month); err != nil {
		return nil, err
	}

	b := &Budget{
		UserID:      params.UserID,
		CategoryID:  params.CategoryID,
		Limit:       params.Limit,
		Month:       params.Month,
		Year:        params.Year,
		Description: params.Description,
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, filter)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, patch Patch) (*Budget, error) {
	if patch.Limit != nil && !patch.Limit.IsPositive() {
		return nil, ErrInvalidLimit
	}

	if patch.Month != nil {
		if err := validatePeriod(*patch.Month); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateBudget(ctx, userID, id, patch)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, userID, id)
}

// Overview returns a view for every budget of the month. Budgets sharing a
// category each get their own view over the same spending total.
func (s *Service) Overview(ctx context.Context, spent SpentSource, userID uuid.UUID, month, year int) ([]View, error) {
	if err := validatePeriod(month); err != nil {
		return nil, err
	}

	budgets, err := s.repo.ListBudgets(ctx, ListFilter{UserID: userID, Month: &month, Year: &year})
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	views := make([]View, len(budgets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, b := range budgets {
		g.Go(func() error {
			total, err := spent.Fetch(gctx, Key(b))
			if err != nil {
				return fmt.Errorf("fetching spending for budget %s: %w", b.ID, err)
			}

			views[i] = NewView(b, total)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return views, nil
}

// Key returns the spending total a budget is measured against.
func Key(b *Budget) spending.Key {
	return spending.Key{UserID: b.UserID, CategoryID: b.CategoryID, Month: b.Month, Year: b.Year}
}
