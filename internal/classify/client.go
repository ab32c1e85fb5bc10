package classify

import (
	"context"

	"github.com/shopspring/decimal"
)

// Request carries the inputs for one classification.
type Request struct {
	Amount       *decimal.Decimal
	MerchantName string
	Description  string
}

// Client is the remote classification model. It is treated as an opaque
// call with a request/response contract; implementations live behind this
// interface so tests can substitute deterministic fakes.
type Client interface {
	Classify(ctx context.Context, req Request, categories []string) (RemoteResponse, error)
}

// RemoteResponse is the remote model's prediction.
type RemoteResponse struct {
	Category   string
	Reasoning  string
	Confidence float64
}
