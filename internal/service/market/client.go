package market

import (
	"context"
	"fmt"
	"sort"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	xhttp "MacroPulse/pkg/http"
	applogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/util"
)

// Client fetches daily closes from the Yahoo Finance chart API.
type Client struct {
	baseURL string
	http    *xhttp.Client
	log     *applogger.Logger
}

// New creates a market data source.
func New(baseURL string, timeout time.Duration, log *applogger.Logger) drepo.MarketDataSource {
	if log == nil {
		log = applogger.Nop()
	}
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:     log,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDaily returns the daily closing series for a symbol over the lookback
// window. Days without a close (halts, holidays reported as null) are dropped.
func (c *Client) FetchDaily(ctx context.Context, symbol string, lookbackDays int) (models.Series, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, symbol),
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
		},
		QueryParams: map[string][]string{
			"range":    {rangeParam(lookbackDays)},
			"interval": {"1d"},
			"events":   {"history"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s (%s)", symbol, resp.Chart.Error.Description, resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}
	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: no quote data", symbol)
	}
	closes := result.Indicators.Quote[0].Close
	if len(result.Timestamp) != len(closes) {
		c.log.Warn("chart timestamp and close length mismatch",
			applogger.String("symbol", symbol),
			applogger.Int("timestamps", len(result.Timestamp)),
			applogger.Int("closes", len(closes)))
	}

	series := make(models.Series, 0, len(closes))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series = append(series, models.Observation{
			Date:  util.Day(time.Unix(ts, 0)),
			Value: *closes[i],
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("chart %s: no usable closes", symbol)
	}

	// Daily bars can collapse onto one date across sessions; keep the last
	// close per day and ascending order.
	sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	dedup := series[:1]
	for _, obs := range series[1:] {
		if obs.Date.Equal(dedup[len(dedup)-1].Date) {
			dedup[len(dedup)-1] = obs
			continue
		}
		dedup = append(dedup, obs)
	}
	return dedup, nil
}

// rangeParam maps a day count onto the coarse range buckets the chart API
// accepts.
func rangeParam(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 92:
		return "3mo"
	case days <= 183:
		return "6mo"
	case days <= 366:
		return "1y"
	case days <= 732:
		return "2y"
	case days <= 1830:
		return "5y"
	case days <= 3660:
		return "10y"
	default:
		return "max"
	}
}
