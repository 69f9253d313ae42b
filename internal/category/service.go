package category

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context, userID uuid.UUID, txType *transaction.Type) ([]*Category, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID uuid.UUID
	Name   string
	Icon   string
	Type   transaction.Type
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	if !params.Type.Valid() {
		return nil, transaction.ErrInvalidType
	}

	c := &Category{UserID: &params.UserID, Name: name, Icon: params.Icon, Type: params.Type}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// List returns the user's own categories and the shared ones, ordered by name.
// A nil txType returns both income and expense categories.
func (s *Service) List(ctx context.Context, userID uuid.UUID, txType *transaction.Type) ([]*Category, error) {
	if txType != nil && !txType.Valid() {
		return nil, transaction.ErrInvalidType
	}

	return s.repo.ListCategories(ctx, userID, txType)
}
