package sheet

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty amount")

// parseAmount reads a money cell written either European style ("1.234.567,89")
// or plain ("1,234,567.89", "1234567.89"). Currency symbols and spaces are ignored.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		}

		return -1
	}, s)

	if clean == "" {
		return decimal.Zero, errEmptyAmount
	}

	return decimal.NewFromString(normalize(clean))
}

// normalize rewrites clean to use '.' as the only decimal separator.
func normalize(clean string) string {
	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			return strings.ReplaceAll(strings.ReplaceAll(clean, ".", ""), ",", ".")
		}

		return strings.ReplaceAll(clean, ",", "")
	case lastComma >= 0:
		if strings.Count(clean, ",") > 1 || isThousands(clean[lastComma+1:]) {
			return strings.ReplaceAll(clean, ",", "")
		}

		return strings.ReplaceAll(clean, ",", ".")
	case lastDot >= 0:
		if strings.Count(clean, ".") > 1 || isThousands(clean[lastDot+1:]) {
			return strings.ReplaceAll(clean, ".", "")
		}
	}

	return clean
}

// isThousands reports whether the digits after a lone separator form a
// thousands group ("1,250", "500.000") rather than cents ("1,25").
func isThousands(tail string) bool {
	return len(tail) == 3
}
