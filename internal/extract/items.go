package extract

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/finsight/receipt-pipeline/internal/model"
	"github.com/finsight/receipt-pipeline/internal/patterns"
)

// itemThreshold is the minimum score for a line to become an item.
const itemThreshold = 0.5

// summaryKeywords disqualify a priced line from being an item.
var summaryKeywords = []string{"total", "subtotal", "tax", "change", "balance", "due", "tender"}

// itemRules scores how much a priced line looks like a purchased item.
// The base rule fires for every candidate so short bare lines like
// "Milk 4.99" still clear the threshold.
var itemRules = []scoreRule{
	{
		name:   "has_price",
		weight: 0.4,
		match: func(line string) bool {
			return patterns.Price.MatchString(line)
		},
	},
	{
		name:   "quantity_marker",
		weight: 0.3,
		match: func(line string) bool {
			return patterns.QuantityPrefix.MatchString(line) ||
				patterns.QuantitySuffix.MatchString(line) ||
				patterns.QuantityKeyword.MatchString(line)
		},
	},
	{
		name:   "plausible_length",
		weight: 0.2,
		match: func(line string) bool {
			return len(line) >= 10 && len(line) <= 80
		},
	},
	{
		name:   "starts_alphabetic",
		weight: 0.2,
		match: func(line string) bool {
			for _, r := range line {
				return unicode.IsLetter(r)
			}
			return false
		},
	},
	{
		name:   "summary_keyword",
		weight: -0.5,
		match: func(line string) bool {
			return patterns.ContainsKeyword(line, summaryKeywords)
		},
	},
}

// Items recovers line items from every line carrying a decimal price.
// Quantity defaults to 1 when no marker is present; the result confidence is
// the average score of accepted lines.
func Items(lines []string) ItemsResult {
	var items []model.ReceiptItem
	scoreSum := 0.0

	for _, line := range lines {
		if !patterns.Price.MatchString(line) {
			continue
		}
		score := scoreLine(line, itemRules)
		if score <= itemThreshold {
			continue
		}

		price, ok := patterns.LastAmount(line)
		if !ok {
			continue
		}

		item := model.ReceiptItem{
			Name:     itemName(line),
			Quantity: itemQuantity(line),
		}
		if item.Name == "" {
			continue
		}
		p := price
		item.Price = &p
		items = append(items, item)
		scoreSum += score
	}

	if len(items) == 0 {
		return ItemsResult{Strategy: "items_scored"}
	}
	return ItemsResult{
		Items:      items,
		Strategy:   "items_scored",
		Confidence: clamp(scoreSum / float64(len(items))),
	}
}

// itemQuantity reads an explicit quantity marker, defaulting to 1.
func itemQuantity(line string) int {
	for _, re := range []interface{ FindStringSubmatch(string) []string }{
		patterns.QuantityPrefix, patterns.QuantityKeyword, patterns.QuantitySuffix,
	} {
		if m := re.FindStringSubmatch(line); m != nil {
			if qty, err := strconv.Atoi(m[1]); err == nil && qty > 0 {
				return qty
			}
		}
	}
	return 1
}

// itemName strips prices, quantity markers, and trailing punctuation from
// the line, leaving the item description.
func itemName(line string) string {
	name := patterns.Amount.ReplaceAllString(line, "")
	name = patterns.QuantityPrefix.ReplaceAllString(name, "")
	name = patterns.QuantityKeyword.ReplaceAllString(name, "")
	name = strings.TrimRight(name, " .,;:-_*#@$")
	return strings.TrimSpace(name)
}
