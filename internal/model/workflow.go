package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Weights for combining parse and classification confidence into the
// overall workflow confidence.
const (
	parseConfidenceWeight    = 0.6
	classifyConfidenceWeight = 0.4
)

// ErrWorkflowFailed indicates a workflow result that cannot be converted
// into a transaction record.
var ErrWorkflowFailed = errors.New("workflow did not produce a usable receipt")

// WorkflowResult is the terminal output of the processing pipeline for one
// receipt image. Exactly one is produced per Process call and it is consumed
// once by the persistence or review collaborator.
type WorkflowResult struct {
	ParsedReceipt    *ParsedReceipt
	Classification   *ClassificationResult
	ImagePath        string
	ErrorMessage     string
	ProcessingTimeMs int64
	Success          bool
}

// OverallConfidence combines parse and classification confidence. When
// classification was skipped the parse confidence stands alone.
func (w *WorkflowResult) OverallConfidence() float64 {
	if w.ParsedReceipt == nil {
		return 0
	}
	if w.Classification == nil {
		return w.ParsedReceipt.Confidence
	}
	return parseConfidenceWeight*w.ParsedReceipt.Confidence +
		classifyConfidenceWeight*w.Classification.Confidence
}

// NeedsReview reports whether the result is too weak for unattended use:
// overall confidence below the active minimum, or required fields missing.
func (w *WorkflowResult) NeedsReview(t ConfidenceThresholds) bool {
	if !w.Success || w.ParsedReceipt == nil {
		return true
	}
	if w.ParsedReceipt.TotalAmount == nil || w.ParsedReceipt.MerchantName == "" {
		return true
	}
	return w.OverallConfidence() < t.Minimum
}

// Transaction is the plain record handed to the persistence collaborator.
type Transaction struct {
	Date          time.Time
	Amount        decimal.Decimal
	Category      string
	Merchant      string
	Notes         string
	PaymentMethod string
	ImagePath     string
}

// ToTransaction converts a successful workflow result into a transaction
// record. It fails loudly rather than defaulting when the workflow failed or
// produced no receipt; callers must never persist a failed result.
func (w *WorkflowResult) ToTransaction() (Transaction, error) {
	if !w.Success {
		return Transaction{}, fmt.Errorf("%w: %s", ErrWorkflowFailed, w.ErrorMessage)
	}
	if w.ParsedReceipt == nil {
		return Transaction{}, fmt.Errorf("%w: no parsed receipt", ErrWorkflowFailed)
	}

	txn := Transaction{
		Merchant:      w.ParsedReceipt.MerchantName,
		PaymentMethod: w.ParsedReceipt.PaymentMethod,
		ImagePath:     w.ImagePath,
		Category:      CategoryOther,
	}
	if w.ParsedReceipt.TotalAmount != nil {
		txn.Amount = *w.ParsedReceipt.TotalAmount
	}
	if w.ParsedReceipt.Date != nil {
		txn.Date = *w.ParsedReceipt.Date
	}
	if w.Classification != nil {
		txn.Category = w.Classification.Category
		txn.Notes = w.Classification.Reasoning
	}
	return txn, nil
}
