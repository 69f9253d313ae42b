package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dompet-app/dompet/internal/importer"
	"github.com/dompet-app/dompet/internal/importer/statement"
	"github.com/dompet-app/dompet/internal/transaction"
)

type mocks struct {
	parser    *importer.MockParser
	suggester *importer.MockSuggester
	recorder  *importer.MockRecorder
}

func newService(t *testing.T) (*importer.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		parser:    importer.NewMockParser(ctrl),
		suggester: importer.NewMockSuggester(ctrl),
		recorder:  importer.NewMockRecorder(ctrl),
	}

	return importer.NewService(m.parser, m.suggester, m.recorder), m
}

func TestService_Preview(t *testing.T) {
	svc, m := newService(t)

	params := importer.Params{
		UserID:            uuid.New(),
		WalletID:          uuid.New(),
		ExpenseCategoryID: uuid.New(),
		IncomeCategoryID:  uuid.New(),
	}
	food := uuid.New()
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	m.parser.EXPECT().Parse(gomock.Any()).Return(&statement.Statement{
		Profile: "bca",
		Charset: "UTF-8",
		Rows: []statement.Row{
			{Date: day, Description: "QRIS WARUNG", Amount: decimal.NewFromInt(45000), Type: transaction.TypeExpense},
			{Date: day, Description: "PARKIR", Amount: decimal.NewFromInt(5000), Type: transaction.TypeExpense},
			{Date: day, Description: "GAJI", Amount: decimal.NewFromInt(8500000), Type: transaction.TypeIncome},
		},
	}, nil)
	m.suggester.EXPECT().Suggest(gomock.Any(), params.UserID, "QRIS WARUNG").Return(food, true, nil)
	m.suggester.EXPECT().Suggest(gomock.Any(), params.UserID, "PARKIR").Return(uuid.Nil, false, nil)
	m.suggester.EXPECT().Suggest(gomock.Any(), params.UserID, "GAJI").Return(uuid.Nil, false, nil)

	got, err := svc.Preview(context.Background(), params, strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, "bca", got.Profile)
	assert.Equal(t, 1, got.Matched)
	require.Len(t, got.Entries, 3)

	assert.Equal(t, food, got.Entries[0].CategoryID)
	assert.Equal(t, params.ExpenseCategoryID, got.Entries[1].CategoryID)
	assert.Equal(t, params.IncomeCategoryID, got.Entries[2].CategoryID)
	assert.Equal(t, params.WalletID, got.Entries[0].WalletID)
	assert.Equal(t, "PARKIR", *got.Entries[1].Description)
}

func TestService_Preview_MissingParams(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Preview(context.Background(), importer.Params{UserID: uuid.New()}, strings.NewReader(""))
	assert.ErrorIs(t, err, importer.ErrMissingWallet)

	_, err = svc.Preview(context.Background(), importer.Params{WalletID: uuid.New()}, strings.NewReader(""))
	assert.ErrorIs(t, err, importer.ErrMissingDefault)
}

func TestService_Import(t *testing.T) {
	params := importer.Params{
		UserID:            uuid.New(),
		WalletID:          uuid.New(),
		ExpenseCategoryID: uuid.New(),
		IncomeCategoryID:  uuid.New(),
	}
	row := statement.Row{
		Date:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Description: "QRIS",
		Amount:      decimal.NewFromInt(45000),
		Type:        transaction.TypeExpense,
	}

	t.Run("RecordsBatch", func(t *testing.T) {
		svc, m := newService(t)

		m.parser.EXPECT().Parse(gomock.Any()).Return(&statement.Statement{Rows: []statement.Row{row}}, nil)
		m.suggester.EXPECT().Suggest(gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, false, nil)
		m.recorder.EXPECT().CreateBatch(gomock.Any(), gomock.Len(1)).
			Return([]*transaction.Transaction{{ID: uuid.New()}}, nil)

		txs, err := svc.Import(context.Background(), params, strings.NewReader(""))
		require.NoError(t, err)
		assert.Len(t, txs, 1)
	})

	t.Run("Empty", func(t *testing.T) {
		svc, m := newService(t)

		m.parser.EXPECT().Parse(gomock.Any()).Return(&statement.Statement{}, nil)

		_, err := svc.Import(context.Background(), params, strings.NewReader(""))
		assert.ErrorIs(t, err, importer.ErrNoRows)
	})

	t.Run("ParseError", func(t *testing.T) {
		svc, m := newService(t)

		m.parser.EXPECT().Parse(gomock.Any()).Return(nil, errors.New("no matching statement format found"))

		_, err := svc.Import(context.Background(), params, strings.NewReader(""))
		assert.ErrorIs(t, err, importer.ErrUnreadable)
		assert.ErrorContains(t, err, "no matching statement format found")
	})

	t.Run("SuggestError", func(t *testing.T) {
		svc, m := newService(t)

		m.parser.EXPECT().Parse(gomock.Any()).Return(&statement.Statement{Rows: []statement.Row{row}}, nil)
		m.suggester.EXPECT().Suggest(gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, false, errors.New("db down"))

		_, err := svc.Import(context.Background(), params, strings.NewReader(""))
		assert.ErrorContains(t, err, "db down")
	})
}
