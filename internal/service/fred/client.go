package fred

import (
	"context"
	"fmt"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	xhttp "MacroPulse/pkg/http"
	applogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/util"
)

// Client fetches observation series from the FRED REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
	log     *applogger.Logger
}

// New creates a FRED series source.
func New(apiKey, baseURL string, timeout time.Duration, log *applogger.Logger) drepo.SeriesSource {
	if log == nil {
		log = applogger.Nop()
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:     log,
	}
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// FetchSeries returns the chronological observation series for one FRED
// series id. Observations reported as "." (missing) are dropped.
func (c *Client) FetchSeries(ctx context.Context, id string, start, end time.Time) (models.Series, error) {
	var resp observationsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/series/observations",
		QueryParams: map[string][]string{
			"series_id":         {id},
			"api_key":           {c.apiKey},
			"file_type":         {"json"},
			"observation_start": {util.FormatDay(start)},
			"observation_end":   {util.FormatDay(end)},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fred %s: %w", id, err)
	}

	series := make(models.Series, 0, len(resp.Observations))
	for _, obs := range resp.Observations {
		v, ok := util.ParseFloat(obs.Value)
		if !ok {
			continue
		}
		d, ok := util.ParseDay(obs.Date)
		if !ok {
			c.log.Warn("fred observation with bad date",
				applogger.String("series", id),
				applogger.String("date", obs.Date))
			continue
		}
		series = append(series, models.Observation{Date: d, Value: v})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("fred %s: no usable observations", id)
	}
	return series, nil
}
