package pricing

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
)

var (
	ErrInvalidRefresherConfig = errors.New("invalid refresher config")
)

// AssetLister provides the ledger records whose tickers need prices.
type AssetLister interface {
	List() []model.Asset
}

// Refresher keeps a Cache up to date with the tickers referenced by the ledger.
// Each asset type is routed to its own Source.
type Refresher struct {
	cache    *Cache
	assets   AssetLister
	sources  map[model.AssetType]Source
	interval time.Duration
	timeout  time.Duration
	logger   *logrus.Logger

	group singleflight.Group

	mu       sync.Mutex
	lifetime context.Context // set while Run is active
	inflight sync.WaitGroup
}

type Option func(*Refresher)

// WithSource routes tickers of assets of type t to src.
func WithSource(t model.AssetType, src Source) Option {
	return func(r *Refresher) {
		r.sources[t] = src
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Refresher) {
		r.interval = d
	}
}

func WithTimeout(d time.Duration) Option {
	return func(r *Refresher) {
		r.timeout = d
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(r *Refresher) {
		r.logger = l
	}
}

// NewRefresher creates a Refresher writing into cache. The interval defaults to
// 60s and the per-refresh timeout to 10s.
func NewRefresher(cache *Cache, assets AssetLister, opts ...Option) (*Refresher, error) {
	r := &Refresher{
		cache:    cache,
		assets:   assets,
		sources:  make(map[model.AssetType]Source),
		interval: time.Minute,
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, r.IsValid()
}

func (r *Refresher) IsValid() error {
	switch {
	case r.cache == nil:
		return errors.Wrap(ErrInvalidRefresherConfig, "cache cannot be nil")
	case r.assets == nil:
		return errors.Wrap(ErrInvalidRefresherConfig, "asset lister cannot be nil")
	case r.logger == nil:
		return errors.Wrap(ErrInvalidRefresherConfig, "logger cannot be nil")
	case r.interval <= 0:
		return errors.Wrap(ErrInvalidRefresherConfig, "interval must be positive")
	case r.timeout <= 0:
		return errors.Wrap(ErrInvalidRefresherConfig, "timeout must be positive")
	default:
		return nil
	}
}

// Refresh fetches prices for every ticker currently in the ledger and replaces
// the cache with the result. Concurrent calls share a single fetch.
//
// A source that fails keeps the last known prices of its own tickers. When every
// source fails the cache is left untouched and an error wrapping
// apperrors.ErrPriceSourceUnavailable is returned. With no tradeable assets in
// the ledger nothing is fetched.
func (r *Refresher) Refresh(ctx context.Context) (map[string]float64, error) {
	v, err, _ := r.group.Do("refresh", func() (any, error) {
		// Callers share this flight, so one caller going away must not cancel it
		// for the others. The refresh timeout still bounds it.
		return r.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]float64), nil
}

func (r *Refresher) refresh(ctx context.Context) (map[string]float64, error) {
	byType := TickersByType(r.assets.List())
	if len(byType) == 0 {
		return r.cache.Snapshot(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		fetched = make(map[model.AssetType]map[string]float64)
		failed  = make(map[model.AssetType]error)
		g       errgroup.Group
	)
	for t, tickers := range byType {
		src, ok := r.sources[t]
		if !ok {
			mu.Lock()
			failed[t] = errors.Errorf("no price source for %s", t)
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			prices, err := src.FetchPrices(ctx, tickers)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[t] = errors.Wrapf(err, "%s prices", t)
				return nil
			}
			fetched[t] = prices
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) == len(byType) {
		msgs := make([]string, 0, len(failed))
		for _, t := range model.AssetTypes {
			if err, ok := failed[t]; ok {
				msgs = append(msgs, err.Error())
			}
		}
		return nil, errors.Wrap(apperrors.ErrPriceSourceUnavailable, strings.Join(msgs, "; "))
	}

	// Merge in model.AssetTypes order. A ticker held as both crypto and stock
	// keeps the crypto quote; the cache has one price per ticker.
	previous := r.cache.Snapshot()
	next := make(map[string]float64)
	for _, t := range model.AssetTypes {
		tickers, ok := byType[t]
		if !ok {
			continue
		}
		prices, ok := fetched[t]
		if !ok {
			r.logger.WithError(failed[t]).WithField("type", t).Warn("Keeping last known prices")
			prices = previous
		}
		for _, tk := range tickers {
			p, ok := prices[tk]
			if !ok {
				continue
			}
			if kept, dup := next[tk]; dup {
				if kept != p {
					r.logger.WithFields(logrus.Fields{"ticker": tk, "type": t, "ignored": p, "kept": kept}).
						Warn("Ticker quoted by more than one source")
				}
				continue
			}
			next[tk] = p
		}
	}

	r.cache.Replace(next)
	r.logger.WithField("tickers", len(next)).Debug("Price cache refreshed")
	return next, nil
}

// Run refreshes once, then on every interval until ctx is cancelled. It returns
// only after the schedule is stopped and any in-flight refresh has finished, so
// no refresh writes to the cache once Run has returned.
func (r *Refresher) Run(ctx context.Context) {
	r.mu.Lock()
	r.lifetime = ctx
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.lifetime = nil
		r.mu.Unlock()
		r.inflight.Wait()
	}()

	r.refreshAndLog(ctx)

	logger := cron.PrintfLogger(r.logger)
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Schedule(cron.Every(r.interval), cron.FuncJob(func() {
		r.refreshAndLog(ctx)
	}))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
}

// Trigger starts an asynchronous refresh if Run is active. It never blocks.
func (r *Refresher) Trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lifetime == nil || r.lifetime.Err() != nil {
		return
	}
	ctx := r.lifetime
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		r.refreshAndLog(ctx)
	}()
}

func (r *Refresher) refreshAndLog(ctx context.Context) {
	if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.logger.WithError(err).Warn("Price refresh failed")
	}
}
