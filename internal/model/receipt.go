// Package model defines the core domain models used throughout the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedReceipt is the structured output of a single parse call.
// It is constructed once by the parser and never mutated afterwards;
// downstream edits produce copies.
type ParsedReceipt struct {
	Date          *time.Time
	TotalAmount   *decimal.Decimal
	Subtotal      *decimal.Decimal
	Tax           *decimal.Decimal
	MerchantName  string
	Time          string
	PaymentMethod string
	ReceiptNumber string
	Currency      string
	RawText       string
	Items         []ReceiptItem
	Metadata      ParsingMetadata
	Confidence    float64
}

// IsValid reports whether the parse produced enough signal for unattended use:
// confidence above 0.3 and at least one of total or merchant resolved.
func (r *ParsedReceipt) IsValid() bool {
	return r.Confidence > 0.3 && (r.TotalAmount != nil || r.MerchantName != "")
}

// ReceiptItem is a single line item recovered from the receipt body.
type ReceiptItem struct {
	Price    *decimal.Decimal
	Total    *decimal.Decimal
	Name     string
	Quantity int
}

// LineTotal returns the explicit item total when present, otherwise
// price multiplied by quantity. Nil when neither can be derived.
func (i ReceiptItem) LineTotal() *decimal.Decimal {
	if i.Total != nil {
		return i.Total
	}
	if i.Price == nil {
		return nil
	}
	qty := i.Quantity
	if qty <= 0 {
		qty = 1
	}
	total := i.Price.Mul(decimal.NewFromInt(int64(qty)))
	return &total
}

// ParsingMetadata records how a parse went. It is purely descriptive and
// never drives control flow outside logging and diagnostics.
type ParsingMetadata struct {
	ParseTime       time.Time
	FieldConfidence map[string]float64
	StrategiesUsed  []string
	Warnings        []string
	Errors          []string
	DurationMs      int64
}
