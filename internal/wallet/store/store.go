package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dompet-app/dompet/internal/database"
	"github.com/dompet-app/dompet/internal/wallet"
)

type Store struct {
	db database.DB
}

func New(db database.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWallet(s scanner) (*wallet.Wallet, error) {
	var w wallet.Wallet
	if err := s.Scan(&w.ID, &w.UserID, &w.Name, &w.Balance, &w.CreatedAt); err != nil {
		return nil, err
	}

	return &w, nil
}

const walletColumns = `id, user_id, name, balance, created_at`

func (s *Store) CreateWallet(ctx context.Context, w *wallet.Wallet) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO wallets (user_id, name) VALUES ($1, $2) RETURNING id, balance, created_at`,
		w.UserID, w.Name,
	).Scan(&w.ID, &w.Balance, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating wallet: %w", err)
	}

	return nil
}

func (s *Store) GetWallet(ctx context.Context, userID, id uuid.UUID) (*wallet.Wallet, error) {
	w, err := scanWallet(s.db.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wallet.ErrNotFound
		}

		return nil, fmt.Errorf("getting wallet: %w", err)
	}

	return w, nil
}

func (s *Store) ListWallets(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*wallet.Wallet

	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wallet: %w", err)
		}

		wallets = append(wallets, w)
	}

	return wallets, rows.Err()
}

func (s *Store) RenameWallet(ctx context.Context, userID, id uuid.UUID, name string) (*wallet.Wallet, error) {
	w, err := scanWallet(s.db.QueryRow(ctx,
		`UPDATE wallets SET name = $3 WHERE id = $1 AND user_id = $2 RETURNING `+walletColumns,
		id, userID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wallet.ErrNotFound
		}

		return nil, fmt.Errorf("renaming wallet: %w", err)
	}

	return w, nil
}

func (s *Store) DeleteWallet(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM wallets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting wallet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return wallet.ErrNotFound
	}

	return nil
}
