package wallet

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=wallet
type Repository interface {
	CreateWallet(ctx context.Context, w *Wallet) error
	GetWallet(ctx context.Context, userID, id uuid.UUID) (*Wallet, error)
	ListWallets(ctx context.Context, userID uuid.UUID) ([]*Wallet, error)
	RenameWallet(ctx context.Context, userID, id uuid.UUID, name string) (*Wallet, error)
	DeleteWallet(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, name string) (*Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}

	w := &Wallet{UserID: userID, Name: name}
	if err := s.repo.CreateWallet(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Wallet, error) {
	return s.repo.GetWallet(ctx, userID, id)
}

// List returns the user's wallets, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Wallet, error) {
	return s.repo.ListWallets(ctx, userID)
}

func (s *Service) Rename(ctx context.Context, userID, id uuid.UUID, name string) (*Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}

	return s.repo.RenameWallet(ctx, userID, id, name)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteWallet(ctx, userID, id)
}

// TotalBalance sums the balances of the user's wallets.
func (s *Service) TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	wallets, err := s.repo.ListWallets(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}

	return total, nil
}
