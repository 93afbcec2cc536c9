package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches the latest stock closes from the Yahoo Finance chart API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxConcurrency int
}

// NewClient creates a client against baseURL (DefaultBaseURL when empty).
// At most maxConcurrency symbols are queried at once.
func NewClient(baseURL string, timeout time.Duration, maxConcurrency int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(baseURL, "/"),
		maxConcurrency: maxConcurrency,
	}
}

// FetchPrices returns the latest close per ticker, keyed by the lower-case
// ticker. Symbols Yahoo has no close for are left out. A single failing symbol
// fails the whole fetch.
func (c *Client) FetchPrices(ctx context.Context, tickers []string) (map[string]float64, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]float64, len(tickers))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	for _, ticker := range tickers {
		key := strings.ToLower(strings.TrimSpace(ticker))
		g.Go(func() error {
			resp, err := c.QueryFiveDaySymbol(ctx, strings.ToUpper(key))
			if err != nil {
				return errors.Wrapf(err, "symbol %s", key)
			}
			price, ok := resp.LatestClose()
			if !ok {
				return nil
			}
			mu.Lock()
			out[key] = price
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryFiveDaySymbol fetches the last 5 days of daily price data for a symbol.
func (c *Client) QueryFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, url.PathEscape(symbol))
	result, err := c.query(ctx, endpoint)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}
	return result, nil
}

func (c *Client) query(ctx context.Context, endpoint string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Response{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", response.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return response, nil
}
