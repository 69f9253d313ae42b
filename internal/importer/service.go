// Package importer turns uploaded bank statements into ledger transactions.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/importer/statement"
	"github.com/dompet-app/dompet/internal/transaction"
)

var (
	ErrNoRows         = errors.New("statement contains no transactions")
	ErrMissingWallet  = errors.New("wallet is required")
	ErrMissingDefault = errors.New("default categories are required")
	ErrUnreadable     = errors.New("statement could not be read")
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Parser interface {
	Parse(r io.Reader) (*statement.Statement, error)
}

// Suggester picks a category for a statement description.
type Suggester interface {
	Suggest(ctx context.Context, userID uuid.UUID, description string) (uuid.UUID, bool, error)
}

// Recorder persists a batch of transactions and keeps derived totals current.
type Recorder interface {
	CreateBatch(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error)
}

// Params select where imported rows land. Rows without a matching rule get
// the default category for their type.
type Params struct {
	UserID            uuid.UUID
	WalletID          uuid.UUID
	ExpenseCategoryID uuid.UUID
	IncomeCategoryID  uuid.UUID
}

func (p Params) validate() error {
	if p.WalletID == uuid.Nil {
		return ErrMissingWallet
	}

	if p.ExpenseCategoryID == uuid.Nil || p.IncomeCategoryID == uuid.Nil {
		return ErrMissingDefault
	}

	return nil
}

// Preview is a parsed statement before anything is written.
type Preview struct {
	Profile string
	Charset string
	Entries []transaction.CreateParams
	// Matched counts entries whose category came from a rule.
	Matched int
}

type Service struct {
	parser    Parser
	suggester Suggester
	recorder  Recorder
}

func NewService(parser Parser, suggester Suggester, recorder Recorder) *Service {
	return &Service{parser: parser, suggester: suggester, recorder: recorder}
}

// Preview parses r and resolves categories without writing.
func (s *Service) Preview(ctx context.Context, params Params, r io.Reader) (*Preview, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	st, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	preview := &Preview{Profile: st.Profile, Charset: st.Charset}

	for _, row := range st.Rows {
		entry := transaction.CreateParams{
			UserID:      params.UserID,
			WalletID:    params.WalletID,
			Amount:      row.Amount,
			Type:        row.Type,
			Date:        row.Date,
			Description: new(row.Description),
		}

		categoryID, ok, err := s.suggester.Suggest(ctx, params.UserID, row.Description)
		if err != nil {
			return nil, fmt.Errorf("suggest category: %w", err)
		}

		switch {
		case ok:
			entry.CategoryID = categoryID
			preview.Matched++
		case row.Type == transaction.TypeIncome:
			entry.CategoryID = params.IncomeCategoryID
		default:
			entry.CategoryID = params.ExpenseCategoryID
		}

		preview.Entries = append(preview.Entries, entry)
	}

	return preview, nil
}

// Import parses r and records every row in one batch.
func (s *Service) Import(ctx context.Context, params Params, r io.Reader) ([]*transaction.Transaction, error) {
	preview, err := s.Preview(ctx, params, r)
	if err != nil {
		return nil, err
	}

	if len(preview.Entries) == 0 {
		return nil, ErrNoRows
	}

	return s.recorder.CreateBatch(ctx, preview.Entries)
}
