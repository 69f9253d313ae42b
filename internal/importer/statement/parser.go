// Package statement reads bank statement CSV exports into transaction rows.
package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/dompet-app/dompet/internal/encoding"
	"github.com/dompet-app/dompet/internal/transaction"
)

// Row is one parsed statement line.
type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // always positive
	Type        transaction.Type
}

// Statement is the result of parsing one file.
type Statement struct {
	Profile string
	Charset string
	Rows    []Row
}

// Parser auto-detects the bank layout by matching header rows against known
// profiles. Both ';' and ',' separated files are accepted.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

var separators = []rune{';', ',', '\t'}

func (p *Parser) Parse(r io.Reader) (*Statement, error) {
	decoded, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	for _, sep := range separators {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = sep
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		rows, err := reader.ReadAll()
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		parsed, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		return &Statement{Profile: profile.Name, Charset: decoded.Charset, Rows: parsed}, nil
	}

	return nil, fmt.Errorf("no matching statement format found")
}

type colIndex map[string]int

// detectProfile returns the first profile whose columns all appear in one row.
// Header names are matched case-insensitively.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[strings.ToLower(name)]; !ok {
			return false
		}
	}

	return true
}

func (c colIndex) of(name string) int {
	if name == "" {
		return -1
	}

	idx, ok := c[strings.ToLower(name)]
	if !ok {
		return -1
	}

	return idx
}

// parseRows extracts rows below the header. Rows without a parseable date or
// amount are footers or balance lines and are skipped.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Row, error) {
	dateIdx := cols.of(p.DateCol)
	descIdx := cols.of(p.DescCol)

	var out []Row

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, err := time.Parse(p.DateLayout, cellValue(row, dateIdx))
		if err != nil {
			continue
		}

		amount, txType, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		out = append(out, Row{Date: date, Description: desc, Amount: amount, Type: txType})
	}

	return out, nil
}

func parseAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, transaction.Type, bool) {
	switch p.AmountMode {
	case amountSigned:
		return signedAmount(cellValue(row, cols.of(p.AmountCol)), p.Numbers)
	case amountSplit:
		return splitAmount(cellValue(row, cols.of(p.DebitCol)), cellValue(row, cols.of(p.CreditCol)), p.Numbers)
	case amountMarked:
		return markedAmount(cellValue(row, cols.of(p.AmountCol)), cellValue(row, cols.of(p.MarkerCol)), p.Numbers)
	}

	return decimal.Zero, "", false
}

func signedAmount(s string, style numberStyle) (decimal.Decimal, transaction.Type, bool) {
	if s == "" {
		return decimal.Zero, "", false
	}

	d, err := parseNumber(s, style)
	if err != nil || d.IsZero() {
		return decimal.Zero, "", false
	}

	if d.IsNegative() {
		return d.Neg(), transaction.TypeExpense, true
	}

	return d, transaction.TypeIncome, true
}

func splitAmount(debit, credit string, style numberStyle) (decimal.Decimal, transaction.Type, bool) {
	if debit != "" {
		if d, err := parseNumber(debit, style); err == nil && !d.IsZero() {
			return d.Abs(), transaction.TypeExpense, true
		}
	}

	if credit != "" {
		if d, err := parseNumber(credit, style); err == nil && !d.IsZero() {
			return d.Abs(), transaction.TypeIncome, true
		}
	}

	return decimal.Zero, "", false
}

func markedAmount(amount, marker string, style numberStyle) (decimal.Decimal, transaction.Type, bool) {
	if marker == "" {
		amount, marker = splitMarker(amount)
	}

	debit, ok := isDebit(marker)
	if !ok || amount == "" {
		return decimal.Zero, "", false
	}

	d, err := parseNumber(amount, style)
	if err != nil || d.IsZero() {
		return decimal.Zero, "", false
	}

	if debit {
		return d.Abs(), transaction.TypeExpense, true
	}

	return d.Abs(), transaction.TypeIncome, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
