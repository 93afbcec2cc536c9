package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/yahoo"
)

// FakeYahooServer serves the Yahoo Finance chart endpoint from canned responses.
// Symbols without a configured response get a Yahoo "Not Found" error body.
type FakeYahooServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]yahoo.Response
	status    int
	requested []string
}

// NewFakeYahooServer starts a fake server that is closed when the test ends.
func NewFakeYahooServer(t *testing.T) *FakeYahooServer {
	t.Helper()
	f := &FakeYahooServer{responses: make(map[string]yahoo.Response)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeYahooServer) handle(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")

	f.mu.Lock()
	f.requested = append(f.requested, symbol)
	status := f.status
	resp, ok := f.responses[symbol]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		resp = CreateMockYahooErrorResponse("No data found, symbol may be delisted")
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// WithQuote answers symbol with closes, oldest first. A nil entry is a null close.
func (f *FakeYahooServer) WithQuote(symbol string, closes ...*float64) *FakeYahooServer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[symbol] = CreateMockYahooResponse(symbol, closes...)
	return f
}

// WithStatus makes every request fail with an empty body and status.
func (f *FakeYahooServer) WithStatus(status int) *FakeYahooServer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	return f
}

// Requested returns the symbols requested so far, in arrival order.
func (f *FakeYahooServer) Requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requested...)
}

// CreateMockYahooResponse builds a chart response with one daily close per
// value, the last one dated yesterday.
func CreateMockYahooResponse(symbol string, closes ...*float64) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, len(closes))
	for i := range closes {
		timestamps[i] = yesterday.AddDate(0, 0, -len(closes)+i+1).Unix()
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:       symbol,
						Currency:     "USD",
						ExchangeName: "NMS",
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{{Close: closes}},
					},
				},
			},
		},
	}
}

// CreateMockYahooErrorResponse creates a Yahoo response carrying an API error.
func CreateMockYahooErrorResponse(description string) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
			Error:  &yahoo.APIError{Code: "Not Found", Description: description},
		},
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
