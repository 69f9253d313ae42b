package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseNumber parses an amount written in style, tolerating a currency
// prefix, surrounding spaces and parentheses for negatives.
func parseNumber(s string, style numberStyle) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "Rp")
	clean = strings.TrimPrefix(clean, "IDR")
	clean = strings.ReplaceAll(clean, " ", "")

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	switch style {
	case styleID:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case styleEN:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}

// splitMarker separates a trailing DB/CR marker from an amount cell.
func splitMarker(s string) (string, string) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)

	for _, m := range []string{"DB", "CR"} {
		if strings.HasSuffix(upper, m) {
			return strings.TrimSpace(s[:len(s)-len(m)]), m
		}
	}

	return s, ""
}

// isDebit reports whether a DB/CR style marker means money out.
func isDebit(marker string) (debit bool, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(marker)) {
	case "DB", "D", "DEBIT":
		return true, true
	case "CR", "K", "KREDIT", "CREDIT":
		return false, true
	}

	return false, false
}
