// Package extract implements one independent extraction strategy per receipt
// field. Every strategy combines pattern matches with a declarative scoring
// rule table, returns its value (or absence) plus a confidence in [0,1], and
// never fails: a missed field is a normal, representable outcome.
package extract

import (
	"time"

	"github.com/finsight/receipt-pipeline/internal/model"
	"github.com/shopspring/decimal"
)

// Field names used in metadata and confidence maps.
const (
	FieldMerchant      = "merchant"
	FieldTotal         = "total"
	FieldSubtotal      = "subtotal"
	FieldTax           = "tax"
	FieldDate          = "date"
	FieldTime          = "time"
	FieldPaymentMethod = "payment_method"
	FieldReceiptNumber = "receipt_number"
	FieldCurrency      = "currency"
	FieldItems         = "items"
)

// StringResult is the outcome of a string-valued strategy. An empty Value
// means the field was not resolved.
type StringResult struct {
	Value      string
	Strategy   string
	Confidence float64
}

// AmountResult is the outcome of a currency-valued strategy. A nil Value
// means the field was not resolved.
type AmountResult struct {
	Value      *decimal.Decimal
	Strategy   string
	Confidence float64
}

// DateResult is the outcome of the date strategy.
type DateResult struct {
	Value      *time.Time
	Strategy   string
	Confidence float64
}

// ItemsResult is the outcome of the line-item strategy.
type ItemsResult struct {
	Items      []model.ReceiptItem
	Strategy   string
	Confidence float64
}

// scoreRule is one (predicate, weight) pair in a scoring table. Rules are
// evaluated uniformly so each strategy stays declarative and each rule is
// independently testable.
type scoreRule struct {
	match  func(line string) bool
	name   string
	weight float64
}

// scoreLine sums the weights of every rule whose predicate holds.
func scoreLine(line string, rules []scoreRule) float64 {
	score := 0.0
	for _, r := range rules {
		if r.match(line) {
			score += r.weight
		}
	}
	return score
}

// clamp bounds a confidence value to [0,1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
