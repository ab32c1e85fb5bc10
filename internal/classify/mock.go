package classify

import (
	"context"
	"sync"
	"time"
)

// MockClient is a deterministic Client for tests. It records every call and
// can simulate latency and failures.
type MockClient struct {
	Err      error
	Response RemoteResponse
	Delay    time.Duration
	calls    []Request
	mu       sync.Mutex
}

// Classify returns the configured response after the configured delay,
// honoring context cancellation the way a real HTTP client would.
func (m *MockClient) Classify(ctx context.Context, req Request, _ []string) (RemoteResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return RemoteResponse{}, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if ctx.Err() != nil {
		return RemoteResponse{}, ctx.Err()
	}
	if m.Err != nil {
		return RemoteResponse{}, m.Err
	}
	return m.Response, nil
}

// CallCount returns how many classification calls were issued.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded requests.
func (m *MockClient) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}
