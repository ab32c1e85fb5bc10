package extract

import (
	"regexp"

	"github.com/finsight/receipt-pipeline/internal/patterns"
	"github.com/shopspring/decimal"
)

// minPlausibleTotal filters out cents-only noise when scanning for a total
// without a keyword anchor.
var minPlausibleTotal = decimal.NewFromInt(1)

// Total recovers the receipt total. Strategies are tried in order of
// trustworthiness: keyword-anchored line, positional scan of the bottom half,
// then the single largest amount anywhere as a last resort.
func Total(lines []string) AmountResult {
	if r := anchoredAmount(lines, patterns.TotalAnchor, patterns.SubtotalAnchor); r.Value != nil {
		r.Strategy = "total_keyword"
		r.Confidence = 0.9
		return r
	}
	if r := positionalTotal(lines); r.Value != nil {
		return r
	}
	return largestAmount(lines)
}

// Subtotal recovers the pre-tax subtotal. Absent when no anchored line
// matches; never defaulted to zero.
func Subtotal(lines []string) AmountResult {
	r := anchoredAmount(lines, patterns.SubtotalAnchor, nil)
	if r.Value != nil {
		r.Strategy = "subtotal_keyword"
		r.Confidence = 0.9
	}
	return r
}

// Tax recovers the tax amount from tax/vat/gst anchored lines.
func Tax(lines []string) AmountResult {
	r := anchoredAmount(lines, patterns.TaxAnchor, nil)
	if r.Value != nil {
		r.Strategy = "tax_keyword"
		r.Confidence = 0.9
	}
	return r
}

// anchoredAmount scans from the bottom for a line matching anchor (and not
// matching exclude) and takes the last amount on it. Receipts put summary
// lines near the bottom, so the bottom-up scan finds the authoritative one
// first.
func anchoredAmount(lines []string, anchor, exclude *regexp.Regexp) AmountResult {
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !anchor.MatchString(line) {
			continue
		}
		if exclude != nil && exclude.MatchString(line) {
			continue
		}
		if amount, ok := patterns.LastAmount(line); ok {
			return AmountResult{Value: &amount}
		}
	}
	return AmountResult{}
}

// positionalTotal scans the bottom half of the receipt for plausible
// amounts, scoring later lines higher. Confidence is 0.5 plus the position
// score, so a value on the very last line scores best.
func positionalTotal(lines []string) AmountResult {
	if len(lines) < 2 {
		return AmountResult{}
	}

	var best AmountResult
	bestScore := -1.0
	start := len(lines) / 2

	for i := start; i < len(lines); i++ {
		amount, ok := patterns.LastAmount(lines[i])
		if !ok || amount.LessThan(minPlausibleTotal) {
			continue
		}
		position := float64(i-start) / float64(len(lines)-start)
		if position >= bestScore {
			bestScore = position
			value := amount
			best = AmountResult{
				Value:      &value,
				Strategy:   "total_positional",
				Confidence: clamp(0.5 + 0.3*position),
			}
		}
	}
	return best
}

// largestAmount falls back to the biggest amount anywhere in the text.
func largestAmount(lines []string) AmountResult {
	var best *decimal.Decimal
	for _, line := range lines {
		for _, amount := range patterns.Amounts(line) {
			a := amount
			if best == nil || a.GreaterThan(*best) {
				best = &a
			}
		}
	}
	if best == nil {
		return AmountResult{Strategy: "total_largest"}
	}
	return AmountResult{Value: best, Strategy: "total_largest", Confidence: 0.4}
}
