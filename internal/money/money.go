// Package money formats amounts for display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Format renders amount as Rupiah with Indonesian digit grouping, rounded to
// whole units, e.g. "Rp 1.250.000" or "-Rp 50.000".
func Format(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	if n < 0 {
		return printer.Sprintf("-Rp %d", -n)
	}

	return printer.Sprintf("Rp %d", n)
}

// Percent renders p rounded to a whole number, e.g. "90%".
func Percent(p decimal.Decimal) string {
	return p.Round(0).String() + "%"
}
