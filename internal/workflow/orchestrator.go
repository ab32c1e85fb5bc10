// Package workflow sequences the processing pipeline for one receipt image:
// text recognition, parsing, classification, and final result assembly. The
// orchestrator is the error boundary of the system; no stage failure ever
// propagates to the caller as anything but a failed WorkflowResult.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finsight/receipt-pipeline/internal/classify"
	"github.com/finsight/receipt-pipeline/internal/model"
	"github.com/finsight/receipt-pipeline/internal/ocr"
	"github.com/finsight/receipt-pipeline/internal/parser"
)

// Stage identifies a pipeline stage for progress reporting.
type Stage string

// Pipeline stages, in execution order.
const (
	StageOCR      Stage = "ocr"
	StageParse    Stage = "parse"
	StageClassify Stage = "classify"
	StageComplete Stage = "complete"
)

// ProgressFunc is invoked before each stage advances.
type ProgressFunc func(stage Stage)

// Options are the per-call tunables. Nothing here is hidden global state;
// every Process call carries its own thresholds and classifier flag.
type Options struct {
	Progress      ProgressFunc
	OnResult      func(index int, result model.WorkflowResult)
	Thresholds    model.ConfidenceThresholds
	UseClassifier bool
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	engine     ocr.Engine
	parser     *parser.Parser
	classifier *classify.Classifier
	logger     *slog.Logger
	now        func() time.Time
}

// New creates an orchestrator. classifier may be nil when classification is
// never wanted; a nil logger falls back to the default.
func New(engine ocr.Engine, p *parser.Parser, classifier *classify.Classifier, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		engine:     engine,
		parser:     p,
		classifier: classifier,
		logger:     logger,
		now:        time.Now,
	}
}

// Process runs the full pipeline for one image. Any stage failure, including
// a panic, halts processing and yields a failed result with a descriptive
// message; the orchestrator never retries automatically.
func (o *Orchestrator) Process(ctx context.Context, imagePath string, opts Options) (result model.WorkflowResult) {
	start := o.now()
	thresholds := activeThresholds(opts)

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("workflow stage panicked", "image", imagePath, "panic", r)
			result = o.failed(imagePath, start, fmt.Sprintf("internal error: %v", r))
		}
	}()

	report(opts, StageOCR)
	recognized, err := o.engine.Recognize(ctx, imagePath)
	if err != nil {
		o.logger.Warn("text recognition failed", "image", imagePath, "error", err)
		return o.failed(imagePath, start, fmt.Sprintf("text recognition failed: %v", err))
	}

	report(opts, StageParse)
	receipt := o.parser.Parse(ctx, recognized.Text)

	var classification *model.ClassificationResult
	if opts.UseClassifier && o.classifier != nil {
		report(opts, StageClassify)
		cls := o.classifier.Classify(ctx, classificationRequest(receipt), thresholds)
		classification = &cls
	}

	report(opts, StageComplete)
	result = model.WorkflowResult{
		Success:          true,
		ImagePath:        imagePath,
		ParsedReceipt:    receipt,
		Classification:   classification,
		ProcessingTimeMs: o.now().Sub(start).Milliseconds(),
	}

	o.logger.Info("receipt processed",
		"image", imagePath,
		"merchant", receipt.MerchantName,
		"confidence", result.OverallConfidence(),
		"needs_review", result.NeedsReview(thresholds))
	return result
}

// ProcessBatch runs the pipeline over many images sequentially, one result
// per image in input order. Each item is isolated; a failure only fails its
// own entry. Cancellation marks the remaining items failed rather than
// dropping them.
func (o *Orchestrator) ProcessBatch(ctx context.Context, imagePaths []string, opts Options) []model.WorkflowResult {
	results := make([]model.WorkflowResult, len(imagePaths))
	for i, path := range imagePaths {
		if err := ctx.Err(); err != nil {
			results[i] = model.WorkflowResult{
				ImagePath:    path,
				ErrorMessage: fmt.Sprintf("batch canceled: %v", err),
			}
		} else {
			results[i] = o.Process(ctx, path, opts)
		}
		if opts.OnResult != nil {
			opts.OnResult(i, results[i])
		}
	}
	return results
}

// classificationRequest builds the classifier input from a parsed receipt.
// Item names serve as the free-text description.
func classificationRequest(receipt *model.ParsedReceipt) classify.Request {
	names := make([]string, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		names = append(names, item.Name)
	}
	return classify.Request{
		MerchantName: receipt.MerchantName,
		Description:  strings.Join(names, ", "),
		Amount:       receipt.TotalAmount,
	}
}

func (o *Orchestrator) failed(imagePath string, start time.Time, message string) model.WorkflowResult {
	return model.WorkflowResult{
		ImagePath:        imagePath,
		ErrorMessage:     message,
		ProcessingTimeMs: o.now().Sub(start).Milliseconds(),
	}
}

func report(opts Options, stage Stage) {
	if opts.Progress != nil {
		opts.Progress(stage)
	}
}

func activeThresholds(opts Options) model.ConfidenceThresholds {
	if opts.Thresholds == (model.ConfidenceThresholds{}) {
		return model.DefaultThresholds()
	}
	return opts.Thresholds
}
