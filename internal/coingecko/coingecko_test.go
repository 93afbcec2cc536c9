package coingecko

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchPrices(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		gotQuery = r.URL.RawQuery
		resp := map[string]map[string]float64{
			"bitcoin":  {"usd": 87222.51},
			"ethereum": {"usd": 2933.91},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)

	prices, err := c.FetchPrices(t.Context(), []string{"bitcoin", "Ethereum"})

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"bitcoin": 87222.51, "ethereum": 2933.91}, prices)
	assert.Equal(t, "ids=bitcoin%2Cethereum&vs_currencies=usd", gotQuery)
}

func TestClient_FetchPrices_UnknownIDOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]map[string]float64{"bitcoin": {"usd": 68000}})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)

	prices, err := c.FetchPrices(t.Context(), []string{"bitcoin", "notacoin"})

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"bitcoin": 68000}, prices)
}

func TestClient_FetchPrices_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient(server.URL, time.Second)
			_, err := c.FetchPrices(t.Context(), []string{"bitcoin"})
			assert.Error(t, err)
		})
	}
}

func TestClient_FetchPrices_NoTickers(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", time.Second)

	prices, err := c.FetchPrices(t.Context(), nil)

	require.NoError(t, err)
	assert.Empty(t, prices)
}
