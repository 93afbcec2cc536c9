// Package pricing holds the latest known spot price per ticker and keeps it
// fresh from external quote sources.
package pricing

import (
	"maps"
	"sync/atomic"
	"time"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
)

type priceTable struct {
	prices    map[string]float64
	updatedAt time.Time
}

// Cache maps lower-case tickers to their latest known price.
//
// The table is swapped as a whole on every Replace, so readers always see either
// the previous or the next complete set, never a mix.
type Cache struct {
	table atomic.Pointer[priceTable]
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	c := &Cache{}
	c.table.Store(&priceTable{prices: map[string]float64{}})
	return c
}

// Get returns the cached price for ticker, or 0 when the ticker is unknown.
// Lookup is case-insensitive.
func (c *Cache) Get(ticker string) float64 {
	return c.table.Load().prices[model.NormalizeTicker(ticker)]
}

// Lookup is Get with an explicit presence flag.
func (c *Cache) Lookup(ticker string) (float64, bool) {
	p, ok := c.table.Load().prices[model.NormalizeTicker(ticker)]
	return p, ok
}

// Replace swaps the cache content for prices. Keys are normalized to lower case.
func (c *Cache) Replace(prices map[string]float64) {
	next := make(map[string]float64, len(prices))
	for k, v := range prices {
		next[model.NormalizeTicker(k)] = v
	}
	c.table.Store(&priceTable{prices: next, updatedAt: time.Now().UTC()})
}

// Snapshot returns a copy of the cached prices.
func (c *Cache) Snapshot() map[string]float64 {
	return maps.Clone(c.table.Load().prices)
}

// UpdatedAt returns when the cache was last replaced, or the zero time if never.
func (c *Cache) UpdatedAt() time.Time {
	return c.table.Load().updatedAt
}
