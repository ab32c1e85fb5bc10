package ocr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/receipt-pipeline/internal/common"
)

func TestTextFileEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.txt")
	require.NoError(t, os.WriteFile(path, []byte("WALMART\nTOTAL 8.62"), 0600))

	result, err := TextFileEngine{}.Recognize(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "WALMART\nTOTAL 8.62", result.Text)
}

func TestTextFileEngineMissingFile(t *testing.T) {
	_, err := TextFileEngine{}.Recognize(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, common.ErrOCRFailed)
}

func TestTextFileEngineCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := TextFileEngine{}.Recognize(ctx, "anything.txt")
	assert.ErrorIs(t, err, context.Canceled)
}
