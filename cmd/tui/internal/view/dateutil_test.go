package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-app/dompet/internal/transaction"
)

func TestPeriod(t *testing.T) {
	tests := []struct {
		name     string
		period   Period
		wantPrev Period
		wantNext Period
	}{
		{name: "MidYear", period: Period{Month: 6, Year: 2024}, wantPrev: Period{5, 2024}, wantNext: Period{7, 2024}},
		{name: "January", period: Period{Month: 1, Year: 2024}, wantPrev: Period{12, 2023}, wantNext: Period{2, 2024}},
		{name: "December", period: Period{Month: 12, Year: 2024}, wantPrev: Period{11, 2024}, wantNext: Period{1, 2025}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPrev, tt.period.Prev())
			assert.Equal(t, tt.wantNext, tt.period.Next())
		})
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2024-02")
	require.NoError(t, err)
	assert.Equal(t, Period{Month: 2, Year: 2024}, p)
	assert.Equal(t, "February 2024", p.String())

	_, err = ParsePeriod("02/2024")
	assert.Error(t, err)

	assert.Equal(t, Period{Month: 3, Year: 2024}, PeriodOf(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "45000", want: 45000},
		{in: "45.000", want: 45000},
		{in: "1,250,000", want: 1250000},
		{in: "0", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.IntPart())
		})
	}
}

func TestSumByType(t *testing.T) {
	income, expense := sumByType([]*transaction.Transaction{
		{Type: transaction.TypeIncome, Amount: decimal.NewFromInt(5000000)},
		{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(45000)},
		{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(5000)},
	})

	assert.True(t, income.Equal(decimal.NewFromInt(5000000)))
	assert.True(t, expense.Equal(decimal.NewFromInt(50000)))
}
