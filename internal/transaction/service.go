package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id uuid.UUID, patch Patch) (*Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID      uuid.UUID
	WalletID    uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Type        Type
	Date        time.Time
	Description *string
}

// ListFilter narrows a transaction listing. UserID is always required.
type ListFilter struct {
	UserID     uuid.UUID
	WalletID   *uuid.UUID
	CategoryID *uuid.UUID
	Type       *Type
	StartDate  *time.Time
	EndDate    *time.Time
	// Ascending orders by date ascending instead of the default newest first.
	Ascending bool
}

func (p CreateParams) validate() error {
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if !p.Type.Valid() {
		return ErrInvalidType
	}

	if p.Date.IsZero() {
		return ErrMissingDate
	}

	return nil
}

func validatePatch(p Patch) error {
	if p.Amount != nil && !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if p.Type != nil && !p.Type.Valid() {
		return ErrInvalidType
	}

	if p.Date != nil && p.Date.IsZero() {
		return ErrMissingDate
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tx := fromParams(params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch validates every entry before writing any of them; the batch is
// stored atomically.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		txs[i] = fromParams(p)
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	return txs, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, patch Patch) (*Transaction, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return s.repo.GetTransaction(ctx, userID, id)
	}

	return s.repo.UpdateTransaction(ctx, userID, id, patch)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, userID, id)
}

func fromParams(p CreateParams) *Transaction {
	return &Transaction{
		UserID:      p.UserID,
		WalletID:    p.WalletID,
		CategoryID:  p.CategoryID,
		Amount:      p.Amount,
		Type:        p.Type,
		Date:        dateOnly(p.Date),
		Description: p.Description,
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
