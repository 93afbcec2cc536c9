package pricing

import (
	"context"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
)

// Source fetches USD spot prices for a set of lower-case tickers. Tickers the
// source does not know may be left out of the result.
type Source interface {
	FetchPrices(ctx context.Context, tickers []string) (map[string]float64, error)
}

// DefaultStaticPrices is the offline price table used when live quotes are disabled.
var DefaultStaticPrices = map[string]float64{
	"bitcoin":  65000,
	"ethereum": 3500,
}

// StaticSource answers from a fixed table. Unknown tickers are returned with a
// price of 0.
type StaticSource struct {
	prices map[string]float64
}

// NewStaticSource returns a StaticSource over prices, or DefaultStaticPrices when prices is nil.
func NewStaticSource(prices map[string]float64) *StaticSource {
	if prices == nil {
		prices = DefaultStaticPrices
	}
	table := make(map[string]float64, len(prices))
	for k, v := range prices {
		table[model.NormalizeTicker(k)] = v
	}
	return &StaticSource{prices: table}
}

// FetchPrices returns the table entry for every requested ticker.
func (s *StaticSource) FetchPrices(_ context.Context, tickers []string) (map[string]float64, error) {
	out := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		out[t] = s.prices[model.NormalizeTicker(t)]
	}
	return out, nil
}
