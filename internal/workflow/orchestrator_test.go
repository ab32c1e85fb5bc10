package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/receipt-pipeline/internal/classify"
	"github.com/finsight/receipt-pipeline/internal/model"
	"github.com/finsight/receipt-pipeline/internal/ocr"
	"github.com/finsight/receipt-pipeline/internal/parser"
)

const walmartText = `WALMART SUPERCENTER
Date: 12/15/2023
Milk 4.99
Bread 2.99
SUBTOTAL 7.98
TAX 0.64
TOTAL 8.62`

// stubEngine returns fixed text or a fixed error regardless of the path.
type stubEngine struct {
	text string
	err  error
}

func (s stubEngine) Recognize(_ context.Context, _ string) (ocr.Result, error) {
	if s.err != nil {
		return ocr.Result{}, s.err
	}
	return ocr.Result{Text: s.text}, nil
}

func newOrchestrator(engine ocr.Engine, client classify.Client) *Orchestrator {
	var classifier *classify.Classifier
	if client != nil {
		classifier = classify.New(client, nil, classify.Config{}, nil)
	}
	return New(engine, parser.New(nil), classifier, nil)
}

func TestProcessFullPipeline(t *testing.T) {
	mock := &classify.MockClient{Response: classify.RemoteResponse{
		Category:   model.CategoryGroceries,
		Confidence: 0.9,
	}}
	o := newOrchestrator(stubEngine{text: walmartText}, mock)

	var stages []Stage
	result := o.Process(context.Background(), "receipt.jpg", Options{
		UseClassifier: true,
		Progress:      func(s Stage) { stages = append(stages, s) },
	})

	assert.True(t, result.Success)
	assert.Equal(t, "receipt.jpg", result.ImagePath)
	require.NotNil(t, result.ParsedReceipt)
	assert.Equal(t, "WALMART SUPERCENTER", result.ParsedReceipt.MerchantName)

	require.NotNil(t, result.Classification)
	assert.Equal(t, model.CategoryGroceries, result.Classification.Category)
	// The merchant hit alone scores 0.6, so the classifier escalates and the
	// agreeing remote answer produces a hybrid result.
	assert.Equal(t, model.MethodHybrid, result.Classification.Method)
	assert.Equal(t, 1, mock.CallCount())

	assert.Equal(t, []Stage{StageOCR, StageParse, StageClassify, StageComplete}, stages)
	assert.Greater(t, result.OverallConfidence(), 0.0)
	assert.False(t, result.NeedsReview(model.DefaultThresholds()))
}

func TestProcessWithoutClassifier(t *testing.T) {
	o := newOrchestrator(stubEngine{text: walmartText}, nil)

	var stages []Stage
	result := o.Process(context.Background(), "receipt.jpg", Options{
		UseClassifier: true,
		Progress:      func(s Stage) { stages = append(stages, s) },
	})

	assert.True(t, result.Success)
	assert.Nil(t, result.Classification)
	assert.Equal(t, []Stage{StageOCR, StageParse, StageComplete}, stages)
	// Parse confidence stands alone when classification is skipped.
	assert.Equal(t, result.ParsedReceipt.Confidence, result.OverallConfidence())
}

func TestProcessClassifierDisabledByOption(t *testing.T) {
	mock := &classify.MockClient{}
	o := newOrchestrator(stubEngine{text: walmartText}, mock)

	result := o.Process(context.Background(), "receipt.jpg", Options{UseClassifier: false})

	assert.True(t, result.Success)
	assert.Nil(t, result.Classification)
	assert.Zero(t, mock.CallCount())
}

func TestProcessRecognitionFailure(t *testing.T) {
	o := newOrchestrator(stubEngine{err: errors.New("engine unavailable")}, nil)

	result := o.Process(context.Background(), "missing.jpg", Options{})

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "text recognition failed")
	assert.Nil(t, result.ParsedReceipt)
	assert.True(t, result.NeedsReview(model.DefaultThresholds()))
}

func TestProcessRecoversFromPanic(t *testing.T) {
	o := newOrchestrator(stubEngine{text: walmartText}, nil)

	result := o.Process(context.Background(), "receipt.jpg", Options{
		Progress: func(s Stage) {
			if s == StageParse {
				panic("progress sink exploded")
			}
		},
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "internal error")
	assert.Contains(t, result.ErrorMessage, "progress sink exploded")
}

func TestProcessBatch(t *testing.T) {
	// The engine fails only for the middle entry.
	engine := pathEngine{
		texts: map[string]string{
			"a.jpg": walmartText,
			"c.jpg": "Corner Cafe\nTOTAL 3.50",
		},
	}
	o := New(engine, parser.New(nil), nil, nil)

	var reported []int
	results := o.ProcessBatch(context.Background(), []string{"a.jpg", "b.jpg", "c.jpg"}, Options{
		OnResult: func(i int, _ model.WorkflowResult) { reported = append(reported, i) },
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success, "one bad image must not abort the batch")
	assert.True(t, results[2].Success)
	assert.Equal(t, "Corner Cafe", results[2].ParsedReceipt.MerchantName)
	assert.Equal(t, []int{0, 1, 2}, reported)
}

func TestProcessBatchCancellation(t *testing.T) {
	o := newOrchestrator(stubEngine{text: walmartText}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	results := o.ProcessBatch(ctx, []string{"a.jpg", "b.jpg", "c.jpg"}, Options{
		OnResult: func(i int, _ model.WorkflowResult) {
			if i == 0 {
				cancel()
			}
		},
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].ErrorMessage, "batch canceled")
	assert.Contains(t, results[2].ErrorMessage, "batch canceled")
}

// pathEngine maps image paths to canned text; unknown paths error.
type pathEngine struct {
	texts map[string]string
}

func (e pathEngine) Recognize(_ context.Context, imagePath string) (ocr.Result, error) {
	text, ok := e.texts[imagePath]
	if !ok {
		return ocr.Result{}, errors.New("unreadable image")
	}
	return ocr.Result{Text: text}, nil
}

func TestClassificationRequestFromReceipt(t *testing.T) {
	o := newOrchestrator(stubEngine{text: walmartText}, &classify.MockClient{})
	result := o.Process(context.Background(), "receipt.jpg", Options{UseClassifier: false})
	require.True(t, result.Success)

	req := classificationRequest(result.ParsedReceipt)
	assert.Equal(t, "WALMART SUPERCENTER", req.MerchantName)
	assert.Equal(t, "Milk, Bread", req.Description)
	require.NotNil(t, req.Amount)
	assert.Equal(t, "8.62", req.Amount.StringFixed(2))
}

func TestActiveThresholdsDefaultsWhenZero(t *testing.T) {
	assert.Equal(t, model.DefaultThresholds(), activeThresholds(Options{}))
	strict := model.StrictThresholds()
	assert.Equal(t, strict, activeThresholds(Options{Thresholds: strict}))
}

func TestProcessBatchEmptyInput(t *testing.T) {
	o := newOrchestrator(stubEngine{text: walmartText}, nil)
	results := o.ProcessBatch(context.Background(), nil, Options{})
	assert.Empty(t, results)
}

func TestProcessingTimeIsRecorded(t *testing.T) {
	o := newOrchestrator(stubEngine{text: walmartText}, nil)
	start := time.Now()
	result := o.Process(context.Background(), "receipt.jpg", Options{})
	assert.GreaterOrEqual(t, result.ProcessingTimeMs, int64(0))
	assert.LessOrEqual(t, result.ProcessingTimeMs, time.Since(start).Milliseconds()+1)
}
