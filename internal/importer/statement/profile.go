package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned is one signed column, negative for money out.
	amountSigned amountMode = iota
	// amountSplit is separate debit and credit columns.
	amountSplit
	// amountMarked is one unsigned column with a DB/CR marker column or suffix.
	amountMarked
)

// numberStyle is how a profile writes decimals.
type numberStyle int

const (
	// styleID writes 1.234.567,89
	styleID numberStyle = iota
	// styleEN writes 1,234,567.89
	styleEN
)

// Profile describes the column layout of one bank's CSV export.
type Profile struct {
	Name       string
	DateCol    string
	DateLayout string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // amountSigned, amountMarked
	DebitCol   string // amountSplit
	CreditCol  string // amountSplit
	MarkerCol  string // amountMarked; empty when the marker is a suffix of the amount
	Numbers    numberStyle
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	case amountMarked:
		cols = append(cols, p.AmountCol)
		if p.MarkerCol != "" {
			cols = append(cols, p.MarkerCol)
		}
	}

	return cols
}

// profiles are tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:       "bca",
		DateCol:    "Tanggal Transaksi",
		DateLayout: "02/01/2006",
		DescCol:    "Keterangan",
		AmountMode: amountMarked,
		AmountCol:  "Jumlah",
		MarkerCol:  "Jenis",
		Numbers:    styleEN,
	},
	{
		Name:       "mandiri",
		DateCol:    "Tanggal",
		DateLayout: "02/01/2006",
		DescCol:    "Keterangan",
		AmountMode: amountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Kredit",
		Numbers:    styleID,
	},
	{
		Name:       "bri",
		DateCol:    "Tanggal",
		DateLayout: "02-01-2006",
		DescCol:    "Uraian Transaksi",
		AmountMode: amountMarked,
		AmountCol:  "Nominal",
		Numbers:    styleID,
	},
	{
		Name:       "generic",
		DateCol:    "date",
		DateLayout: "2006-01-02",
		DescCol:    "description",
		AmountMode: amountSigned,
		AmountCol:  "amount",
		Numbers:    styleEN,
	},
}
