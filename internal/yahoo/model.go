package yahoo

// Response is the raw JSON answer of the Yahoo Finance chart API.
//
// Close prices are pointers because Yahoo reports null for days without a
// settled close (the current trading day, holidays).
type Response struct {
	Chart Chart `json:"chart"`
}

type Chart struct {
	Result []Result  `json:"result"`
	Error  *APIError `json:"error"`
}

type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

type Meta struct {
	Currency           string   `json:"currency"`
	Symbol             string   `json:"symbol"`
	ExchangeName       string   `json:"exchangeName"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
}

type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

type Quote struct {
	Close []*float64 `json:"close"`
}

// LatestClose returns the most recent non-null close of the first result,
// falling back to the regular market price when every close is null.
func (r Response) LatestClose() (float64, bool) {
	if len(r.Chart.Result) == 0 {
		return 0, false
	}
	result := r.Chart.Result[0]
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] != nil {
				return *closes[i], true
			}
		}
	}
	if result.Meta.RegularMarketPrice != nil {
		return *result.Meta.RegularMarketPrice, true
	}
	return 0, false
}
