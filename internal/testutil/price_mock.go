package testutil

import (
	"context"
	"maps"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// MockPriceSource is an in-memory quote source for testing.
// It answers with the configured prices for the requested tickers only, so
// unknown tickers are simply missing from the result.
type MockPriceSource struct {
	mu        sync.Mutex
	prices    map[string]float64
	err       error
	calls     int
	requested [][]string
}

// NewMockPriceSource creates a mock answering from prices.
func NewMockPriceSource(prices map[string]float64) *MockPriceSource {
	return &MockPriceSource{prices: maps.Clone(prices)}
}

// FetchPrices returns the configured prices or the configured error.
func (m *MockPriceSource) FetchPrices(_ context.Context, tickers []string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.requested = append(m.requested, append([]string(nil), tickers...))
	if m.err != nil {
		return nil, m.err
	}

	out := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		if p, ok := m.prices[t]; ok {
			out[t] = p
		}
	}
	return out, nil
}

// WithError configures the mock to fail every fetch with err (nil clears it).
func (m *MockPriceSource) WithError(err error) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithPrices replaces the prices the mock answers with.
func (m *MockPriceSource) WithPrices(prices map[string]float64) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices = maps.Clone(prices)
	return m
}

// CallCount returns how many times FetchPrices was called.
func (m *MockPriceSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Requested returns the ticker lists of every call so far.
func (m *MockPriceSource) Requested() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.requested...)
}

// NewTestLogger returns a logger that discards output and a hook recording entries.
func NewTestLogger(t *testing.T) (*logrus.Logger, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}
