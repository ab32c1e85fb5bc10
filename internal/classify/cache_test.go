package classify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/receipt-pipeline/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	result := model.NewRuleBasedResult(model.CategoryGroceries, 0.95, map[string]float64{model.CategoryGroceries: 0.95})

	_, ok, err := store.Get(ctx, "walmart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "walmart", result))

	cached, ok, err := store.Get(ctx, "walmart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result.Category, cached.Category)
	assert.Equal(t, result.Confidence, cached.Confidence)
	assert.Equal(t, result.Method, cached.Method)
	assert.Equal(t, 1, store.Size())
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	result := model.NewRuleBasedResult(model.CategoryDining, 0.6, nil)
	require.NoError(t, store.Put(ctx, "starbucks", result))

	time.Sleep(30 * time.Millisecond)

	_, ok, err := store.Get(ctx, "starbucks")
	require.NoError(t, err)
	assert.False(t, ok, "expired entries must not be returned")
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "target", model.NewRuleBasedResult(model.CategoryShopping, 0.6, nil)))
	require.NoError(t, store.Put(ctx, "target", model.NewRuleBasedResult(model.CategoryShopping, 0.9, nil)))

	cached, ok, err := store.Get(ctx, "target")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.9, cached.Confidence, 0.0001)
	assert.Equal(t, 1, store.Size())
}
