package format

import (
	"fmt"
	"math"
	"strconv"
)

// Int formats an integer with comma separators: 1234567 -> "1,234,567".
func Int(n int64) string {
	if n < 0 {
		return "-" + Int(-n)
	}
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%s,%03d", Int(n/1000), n%1000)
}

// Float renders a ratio rounded to two decimal places, trimming trailing
// zeros: 1.5 -> "1.5", 0 -> "0".
func Float(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Currency renders a whole-unit amount with separators and a currency label.
func Currency(amount int64, currency string) string {
	return Int(amount) + " " + currency
}

// MaybeCurrency renders an optional amount, "n/a" when absent.
func MaybeCurrency(amount *int64, currency string) string {
	if amount == nil {
		return "n/a"
	}
	return Currency(*amount, currency)
}

// CurrencyFloat rounds a fractional amount to whole units before rendering.
// Used for averages so the UI never shows NaN or long fractions.
func CurrencyFloat(amount float64, currency string) string {
	return Currency(int64(amount+0.5), currency)
}
