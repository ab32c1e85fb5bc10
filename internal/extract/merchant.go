package extract

import (
	"strings"
	"unicode"

	"github.com/finsight/receipt-pipeline/internal/patterns"
)

// merchantScanLines is how many lines from the top are considered as
// merchant name candidates.
const merchantScanLines = 5

// merchantThreshold is the minimum score a line needs to be selected.
const merchantThreshold = 0.5

// merchantRules scores how much a line looks like a business name.
var merchantRules = []scoreRule{
	{
		name:   "merchant_keyword",
		weight: 0.2,
		match: func(line string) bool {
			return patterns.ContainsKeyword(line, patterns.MerchantKeywords)
		},
	},
	{
		name:   "non_merchant_keyword",
		weight: -0.3,
		match: func(line string) bool {
			return patterns.ContainsKeyword(line, patterns.NonMerchantKeywords)
		},
	},
	{
		name:   "brand_like_casing",
		weight: 0.1,
		match:  hasMixedCaseToken,
	},
	{
		name:   "contains_digits",
		weight: -0.2,
		match: func(line string) bool {
			return strings.ContainsAny(line, "0123456789")
		},
	},
	{
		name:   "implausible_length",
		weight: -0.3,
		match: func(line string) bool {
			return len(line) < 3 || len(line) > 50
		},
	},
}

// Merchant selects the most name-like line near the top of the receipt.
// Each of the first five lines is scored by the rule table plus a positional
// bonus of 0.1 per line closer to the top; the best line wins only if it
// clears the threshold.
func Merchant(lines []string) StringResult {
	best := StringResult{Strategy: "merchant_heuristic"}
	bestScore := 0.0

	limit := merchantScanLines
	if len(lines) < limit {
		limit = len(lines)
	}

	for i := 0; i < limit; i++ {
		score := scoreLine(lines[i], merchantRules)
		score += 0.1 * float64(merchantScanLines-i)
		if score > bestScore {
			bestScore = score
			best.Value = lines[i]
		}
	}

	if bestScore <= merchantThreshold {
		return StringResult{Strategy: "merchant_heuristic"}
	}
	best.Confidence = clamp(bestScore)
	return best
}

// hasMixedCaseToken reports whether any token mixes upper and lower case,
// which reads as brand-like ("McDonald's", "CostCo").
func hasMixedCaseToken(line string) bool {
	for _, token := range strings.Fields(line) {
		var hasUpper, hasLower bool
		for _, r := range token {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			}
		}
		if hasUpper && hasLower {
			return true
		}
	}
	return false
}
