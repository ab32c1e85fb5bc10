package patterns

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts returns every currency value found on the line, in order.
func Amounts(line string) []decimal.Decimal {
	matches := Amount.FindAllStringSubmatch(line, -1)
	out := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		d, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// LastAmount returns the final currency value on the line, if any.
func LastAmount(line string) (decimal.Decimal, bool) {
	amounts := Amounts(line)
	if len(amounts) == 0 {
		return decimal.Decimal{}, false
	}
	return amounts[len(amounts)-1], true
}

// ContainsKeyword reports whether any of the keywords occurs in the line.
// Matching is case-insensitive.
func ContainsKeyword(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// MonthNumber maps a textual month name (full or abbreviated) to 1..12,
// or 0 when unrecognized.
func MonthNumber(name string) int {
	months := []string{
		"jan", "feb", "mar", "apr", "may", "jun",
		"jul", "aug", "sep", "oct", "nov", "dec",
	}
	lower := strings.ToLower(name)
	for i, m := range months {
		if strings.HasPrefix(lower, m) {
			return i + 1
		}
	}
	return 0
}
