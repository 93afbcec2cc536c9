package pricing

import (
	"slices"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
)

// Tickers returns the sorted, deduplicated, lower-case tickers referenced by
// the tradeable assets in the list.
func Tickers(assets []model.Asset) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, a := range assets {
		t := a.Ticker()
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// TickersByType groups Tickers by asset type so each group can be routed to its
// own quote source. A ticker held both as crypto and stock appears in both groups.
func TickersByType(assets []model.Asset) map[model.AssetType][]string {
	grouped := make(map[model.AssetType][]model.Asset)
	for _, a := range assets {
		if a.Type.IsTradeable() {
			grouped[a.Type] = append(grouped[a.Type], a)
		}
	}
	out := make(map[model.AssetType][]string, len(grouped))
	for t, list := range grouped {
		if tickers := Tickers(list); len(tickers) > 0 {
			out[t] = tickers
		}
	}
	return out
}
