package fred

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFetchSeriesParsesObservations(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"observations":[
			{"date":"2024-01-01","value":"3.7"},
			{"date":"2024-02-01","value":"."},
			{"date":"not-a-date","value":"4.0"},
			{"date":"2024-03-01","value":"3.9"}]}`)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, 5*time.Second, nil)
	series, err := c.FetchSeries(context.Background(), "UNRATE", day(2024, 1, 1), day(2024, 3, 31))
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}

	if gotPath != "/series/observations" {
		t.Errorf("path = %q, want /series/observations", gotPath)
	}
	for param, want := range map[string]string{
		"series_id":         "UNRATE",
		"api_key":           "test-key",
		"file_type":         "json",
		"observation_start": "2024-01-01",
		"observation_end":   "2024-03-31",
	} {
		if got := gotQuery.Get(param); got != want {
			t.Errorf("query %s = %q, want %q", param, got, want)
		}
	}

	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2 (missing and malformed dropped)", len(series))
	}
	if series[0].Value != 3.7 || !series[0].Date.Equal(day(2024, 1, 1)) {
		t.Errorf("series[0] = %+v", series[0])
	}
	if series[1].Value != 3.9 || !series[1].Date.Equal(day(2024, 3, 1)) {
		t.Errorf("series[1] = %+v", series[1])
	}
}

func TestFetchSeriesAllMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"observations":[{"date":"2024-01-01","value":"."}]}`)
	}))
	defer srv.Close()

	c := New("k", srv.URL, 5*time.Second, nil)
	if _, err := c.FetchSeries(context.Background(), "UNRATE", day(2024, 1, 1), day(2024, 2, 1)); err == nil {
		t.Fatal("expected error when every observation is missing")
	}
}

func TestFetchSeriesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New("k", srv.URL, 5*time.Second, nil)
	if _, err := c.FetchSeries(context.Background(), "UNRATE", day(2024, 1, 1), day(2024, 2, 1)); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}
