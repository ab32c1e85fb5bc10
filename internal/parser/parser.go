// Package parser orchestrates the field extraction strategies, assembles the
// structured receipt, and runs cross-field validation. It always returns a
// best-effort result: unreadable input yields a zero-confidence receipt, not
// an error.
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finsight/receipt-pipeline/internal/extract"
	"github.com/finsight/receipt-pipeline/internal/model"
	"github.com/finsight/receipt-pipeline/internal/normalize"
	"github.com/shopspring/decimal"
)

// Parser converts raw OCR text into a ParsedReceipt.
type Parser struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates a parser. A nil logger falls back to the default slog logger.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger, now: time.Now}
}

// Parse extracts a structured receipt from raw recognized text. Extraction
// strategies run independently; none assumes another has resolved. Validation
// failures become metadata warnings, never errors, and panics from any
// strategy are converted into a zero-confidence result.
func (p *Parser) Parse(ctx context.Context, rawText string) (receipt *model.ParsedReceipt) {
	start := p.now()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("parse panicked", "panic", r)
			receipt = p.emptyReceipt(rawText, start, fmt.Sprintf("parse panicked: %v", r))
		}
	}()

	if ctx.Err() != nil {
		return p.emptyReceipt(rawText, start, fmt.Sprintf("parse canceled: %v", ctx.Err()))
	}

	norm := normalize.Text(rawText)
	if len(norm.Lines) == 0 {
		return p.emptyReceipt(rawText, start, "")
	}

	merchant := extract.Merchant(norm.Lines)
	total := extract.Total(norm.Lines)
	subtotal := extract.Subtotal(norm.Lines)
	tax := extract.Tax(norm.Lines)
	date := extract.Date(norm.Lines, p.now())
	timeOfDay := extract.Time(norm.Lines)
	payment := extract.PaymentMethod(norm.Lower)
	receiptNo := extract.ReceiptNumber(norm.Lines)
	currency := extract.Currency(rawText)
	items := extract.Items(norm.Lines)

	metadata := model.ParsingMetadata{
		ParseTime: start,
		FieldConfidence: map[string]float64{
			extract.FieldMerchant:      merchant.Confidence,
			extract.FieldTotal:         total.Confidence,
			extract.FieldSubtotal:      subtotal.Confidence,
			extract.FieldTax:           tax.Confidence,
			extract.FieldDate:          date.Confidence,
			extract.FieldTime:          timeOfDay.Confidence,
			extract.FieldPaymentMethod: payment.Confidence,
			extract.FieldReceiptNumber: receiptNo.Confidence,
			extract.FieldCurrency:      currency.Confidence,
			extract.FieldItems:         items.Confidence,
		},
	}

	for _, s := range []struct {
		strategy string
		resolved bool
	}{
		{merchant.Strategy, merchant.Value != ""},
		{total.Strategy, total.Value != nil},
		{subtotal.Strategy, subtotal.Value != nil},
		{tax.Strategy, tax.Value != nil},
		{date.Strategy, date.Value != nil},
		{timeOfDay.Strategy, timeOfDay.Value != ""},
		{payment.Strategy, payment.Value != ""},
		{receiptNo.Strategy, receiptNo.Value != ""},
		{currency.Strategy, currency.Value != ""},
		{items.Strategy, len(items.Items) > 0},
	} {
		if s.resolved {
			metadata.StrategiesUsed = append(metadata.StrategiesUsed, s.strategy)
		}
	}

	receipt = &model.ParsedReceipt{
		MerchantName:  merchant.Value,
		TotalAmount:   total.Value,
		Subtotal:      subtotal.Value,
		Tax:           tax.Value,
		Date:          date.Value,
		Time:          timeOfDay.Value,
		PaymentMethod: payment.Value,
		ReceiptNumber: receiptNo.Value,
		Currency:      currency.Value,
		Items:         items.Items,
		RawText:       rawText,
		Confidence:    ScoreConfidence(metadata.FieldConfidence),
		Metadata:      metadata,
	}

	receipt.Metadata.Warnings = p.validate(receipt)
	receipt.Metadata.DurationMs = p.now().Sub(start).Milliseconds()

	p.logger.Debug("receipt parsed",
		"merchant", receipt.MerchantName,
		"total", totalString(receipt.TotalAmount),
		"items", len(receipt.Items),
		"confidence", receipt.Confidence,
		"warnings", len(receipt.Metadata.Warnings))

	return receipt
}

// ParseBatch parses many texts sequentially, preserving input order. Each
// item is isolated: one bad input never aborts the batch.
func (p *Parser) ParseBatch(ctx context.Context, texts []string) []*model.ParsedReceipt {
	results := make([]*model.ParsedReceipt, len(texts))
	for i, text := range texts {
		results[i] = p.Parse(ctx, text)
	}
	return results
}

// validate checks cross-field invariants and returns human-readable warnings.
// A violated invariant downgrades trust but never aborts the parse.
func (p *Parser) validate(r *model.ParsedReceipt) []string {
	var warnings []string

	if r.Tax != nil && r.TotalAmount != nil && !r.Tax.LessThan(*r.TotalAmount) {
		warnings = append(warnings, fmt.Sprintf("tax %s is not less than total %s", r.Tax, r.TotalAmount))
	}
	if r.Date != nil && r.Date.After(p.now()) {
		warnings = append(warnings, fmt.Sprintf("date %s is in the future", r.Date.Format("2006-01-02")))
	}
	if r.Subtotal != nil && r.Tax != nil && r.TotalAmount != nil {
		derived := r.Subtotal.Add(*r.Tax)
		tolerance := decimal.NewFromFloat(0.05)
		if derived.Sub(*r.TotalAmount).Abs().GreaterThan(tolerance) {
			warnings = append(warnings, fmt.Sprintf("subtotal %s + tax %s does not match total %s", r.Subtotal, r.Tax, r.TotalAmount))
		}
	}
	return warnings
}

// emptyReceipt is the recoverable zero-confidence result for unreadable input.
func (p *Parser) emptyReceipt(rawText string, start time.Time, errMsg string) *model.ParsedReceipt {
	metadata := model.ParsingMetadata{
		ParseTime:       start,
		FieldConfidence: map[string]float64{},
		DurationMs:      p.now().Sub(start).Milliseconds(),
	}
	if errMsg != "" {
		metadata.Errors = append(metadata.Errors, errMsg)
	}
	return &model.ParsedReceipt{
		RawText:  rawText,
		Metadata: metadata,
	}
}

func totalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
