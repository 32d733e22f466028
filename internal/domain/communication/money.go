package communication

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmountScale is the number of decimal places an amount may carry.
	MaxAmountScale  = 4
	maxAmountDigits = 15
)

// MaxAmount is the exclusive upper bound of a monetary amount.
var MaxAmount = decimal.New(1, maxAmountDigits)

func init() {
	// Amounts travel as JSON numbers, the dashboard charts read them as such.
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount reads a monetary amount. Blank or unparseable input yields zero.
// Both "1,500.00" and "1.500,00" are accepted, as is a lone decimal comma ("12,50").
// Negative amounts fail with ErrNegativeAmount; exponent notation, more than
// MaxAmountScale decimals or values from MaxAmount up fail with ErrAmountOutOfRange.
func ParseAmount(raw string) (decimal.Decimal, error) {
	trimmed := normalizeSeparators(strings.TrimSpace(raw))
	if trimmed == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, nil
	}
	if strings.ContainsAny(trimmed, "eE") {
		return decimal.Zero, ErrAmountOutOfRange
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if !AmountInRange(amount) {
		return decimal.Zero, ErrAmountOutOfRange
	}
	return amount, nil
}

// AmountInRange reports whether a non-negative amount fits the scale and magnitude
// limits. The exponent is checked before comparing since rescaling a huge exponent
// allocates a coefficient of that many digits.
func AmountInRange(amount decimal.Decimal) bool {
	exp := amount.Exponent()
	if exp < -MaxAmountScale || exp > maxAmountDigits {
		return false
	}
	return amount.LessThan(MaxAmount)
}

// normalizeSeparators turns the grouped forms into a plain dotted decimal. The
// separator that appears last is the decimal one.
func normalizeSeparators(s string) string {
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case comma < 0:
		return s
	case dot < 0:
		if strings.Count(s, ",") == 1 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	default:
		return strings.ReplaceAll(s, ",", "")
	}
}
