package goal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	UpdateGoal(ctx context.Context, userID, id uuid.UUID, patch Patch) (*Goal, error)
	AddToGoal(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*Goal, error)
	DeleteGoal(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	if !params.TargetAmount.IsPositive() {
		return nil, ErrInvalidTarget
	}

	if params.CurrentAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	g := &Goal{
		UserID:        params.UserID,
		Name:          name,
		TargetAmount:  params.TargetAmount,
		CurrentAmount: params.CurrentAmount,
		Deadline:      params.Deadline,
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, userID, id)
}

// List returns the user's goals, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, patch Patch) (*Goal, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, ErrMissingName
	}

	if patch.TargetAmount != nil && !patch.TargetAmount.IsPositive() {
		return nil, ErrInvalidTarget
	}

	return s.repo.UpdateGoal(ctx, userID, id, patch)
}

// Contribute adds amount to the goal's saved total.
func (s *Service) Contribute(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*Goal, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	return s.repo.AddToGoal(ctx, userID, id, amount)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, userID, id)
}
