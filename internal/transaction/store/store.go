package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dompet-app/dompet/internal/database"
	"github.com/dompet-app/dompet/internal/transaction"
)

type Store struct {
	db database.DB
}

func New(db database.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, user_id, wallet_id, category_id, amount, type, date, description,
// created_at, wallet_name, category_name, category_icon
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	var walletName, categoryName, categoryIcon *string

	if err := s.Scan(
		&tx.ID, &tx.UserID, &tx.WalletID, &tx.CategoryID, &tx.Amount, &typeStr, &tx.Date, &tx.Description,
		&tx.CreatedAt, &walletName, &categoryName, &categoryIcon,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.WalletName = deref(walletName)
	tx.CategoryName = deref(categoryName)
	tx.CategoryIcon = deref(categoryIcon)

	return &tx, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

const selectTransactionColumns = `
	t.id, t.user_id, t.wallet_id, t.category_id, t.amount, t.type, t.date, t.description,
	t.created_at, w.name AS wallet_name, c.name AS category_name, c.icon AS category_icon
`

const transactionJoins = `
	LEFT JOIN wallets w ON t.wallet_id = w.id
	LEFT JOIN categories c ON t.category_id = c.id
`

const insertTransaction = `
	INSERT INTO transactions (user_id, wallet_id, category_id, amount, type, date, description, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	RETURNING id, created_at
`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	err := s.db.QueryRow(ctx, insertTransaction,
		tx.UserID,
		tx.WalletID,
		tx.CategoryID,
		tx.Amount,
		string(tx.Type),
		tx.Date,
		tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// CreateTransactions inserts all rows in a single database transaction.
func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback(ctx)

	for _, tx := range txs {
		err := dbTx.QueryRow(ctx, insertTransaction,
			tx.UserID,
			tx.WalletID,
			tx.CategoryID,
			tx.Amount,
			string(tx.Type),
			tx.Date,
			tx.Description,
		).Scan(&tx.ID, &tx.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t` + transactionJoins + `
		WHERE t.id = $1 AND t.user_id = $2`

	tx, err := scanTransaction(s.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var sb strings.Builder

	sb.WriteString(`SELECT ` + selectTransactionColumns + `
		FROM transactions t` + transactionJoins + `
		WHERE t.user_id = $1`)

	args := []any{filter.UserID}

	argIdx := 2

	if filter.WalletID != nil {
		fmt.Fprintf(&sb, " AND t.wallet_id = $%d", argIdx)

		args = append(args, *filter.WalletID)
		argIdx++
	}

	if filter.CategoryID != nil {
		fmt.Fprintf(&sb, " AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.Type != nil {
		fmt.Fprintf(&sb, " AND t.type = $%d", argIdx)

		args = append(args, string(*filter.Type))
		argIdx++
	}

	if filter.StartDate != nil {
		fmt.Fprintf(&sb, " AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		fmt.Fprintf(&sb, " AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	if filter.Ascending {
		sb.WriteString(" ORDER BY t.date ASC, t.created_at ASC")
	} else {
		sb.WriteString(" ORDER BY t.date DESC, t.created_at DESC")
	}

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

// UpdateTransaction applies the non-nil patch fields and returns the updated row.
func (s *Store) UpdateTransaction(
	ctx context.Context, userID, id uuid.UUID, patch transaction.Patch,
) (*transaction.Transaction, error) {
	var txType *string
	if patch.Type != nil {
		txType = new(string(*patch.Type))
	}

	query := `
		WITH t AS (
			UPDATE transactions
			SET wallet_id   = COALESCE($3, wallet_id),
			    category_id = COALESCE($4, category_id),
			    amount      = COALESCE($5, amount),
			    type        = COALESCE($6, type),
			    date        = COALESCE($7, date),
			    description = COALESCE($8, description)
			WHERE id = $1 AND user_id = $2
			RETURNING *
		)
		SELECT ` + selectTransactionColumns + ` FROM t` + transactionJoins

	tx, err := scanTransaction(s.db.QueryRow(ctx, query,
		id,
		userID,
		patch.WalletID,
		patch.CategoryID,
		patch.Amount,
		txType,
		patch.Date,
		patch.Description,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
