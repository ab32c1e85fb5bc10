// Package ocr defines the seam to the external text recognition engine.
// The engine itself is an external collaborator; this package only fixes the
// contract the workflow depends on and ships a trivial implementation for
// pre-recognized text.
package ocr

import (
	"context"
	"fmt"
	"os"

	"github.com/finsight/receipt-pipeline/internal/common"
)

// Result is the recognized text for one image, with an optional engine
// confidence in [0,1] (zero means the engine reported none). The pipeline
// does not currently consume the confidence but carries it for scoring use.
type Result struct {
	Text       string
	Confidence float64
}

// Engine turns a captured receipt image into raw text.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (Result, error)
}

// TextFileEngine treats the input path as already-recognized text, which is
// how batch reprocessing and tests feed the pipeline without a real engine.
type TextFileEngine struct{}

// Recognize reads the file contents verbatim.
func (TextFileEngine) Recognize(ctx context.Context, imagePath string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: could not read %s: %v", common.ErrOCRFailed, imagePath, err)
	}
	return Result{Text: string(data)}, nil
}
