package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// noon UTC keeps the date stable regardless of the host timezone.
func tsAt(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Unix()
}

func TestFetchDailyParsesCloses(t *testing.T) {
	var gotPath string
	var gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		fmt.Fprintf(w, `{"chart":{"result":[{
			"timestamp":[%d,%d,%d],
			"indicators":{"quote":[{"close":[4700.5,null,4725.25]}]}
		}],"error":null}}`, tsAt(2024, 1, 2), tsAt(2024, 1, 3), tsAt(2024, 1, 4))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	series, err := c.FetchDaily(context.Background(), "^GSPC", 365)
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}

	if gotPath != "/v8/finance/chart/^GSPC" {
		t.Errorf("path = %q", gotPath)
	}
	if gotRange != "1y" {
		t.Errorf("range = %q, want 1y", gotRange)
	}

	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2 (null close dropped)", len(series))
	}
	if series[0].Value != 4700.5 {
		t.Errorf("series[0].Value = %v", series[0].Value)
	}
	if series[1].Value != 4725.25 {
		t.Errorf("series[1].Value = %v", series[1].Value)
	}
	wantDate := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !series[0].Date.Equal(wantDate) {
		t.Errorf("series[0].Date = %v, want %v", series[0].Date, wantDate)
	}
}

func TestFetchDailyDeduplicatesDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Two bars on the same day: the later close wins.
		fmt.Fprintf(w, `{"chart":{"result":[{
			"timestamp":[%d,%d],
			"indicators":{"quote":[{"close":[100.0,101.0]}]}
		}],"error":null}}`,
			time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC).Unix(),
			time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC).Unix())
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	series, err := c.FetchDaily(context.Background(), "^VIX", 30)
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("len(series) = %d, want 1", len(series))
	}
	if series[0].Value != 101.0 {
		t.Errorf("deduped close = %v, want 101.0", series[0].Value)
	}
}

func TestFetchDailyChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	if _, err := c.FetchDaily(context.Background(), "NOPE", 365); err == nil {
		t.Fatal("expected error on chart error payload")
	}
}

func TestFetchDailyAllNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"chart":{"result":[{
			"timestamp":[%d],
			"indicators":{"quote":[{"close":[null]}]}
		}],"error":null}}`, tsAt(2024, 1, 2))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	if _, err := c.FetchDaily(context.Background(), "^GSPC", 365); err == nil {
		t.Fatal("expected error when no usable closes")
	}
}

func TestRangeParam(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{7, "1mo"},
		{90, "3mo"},
		{180, "6mo"},
		{365, "1y"},
		{730, "2y"},
		{1825, "5y"},
		{3650, "10y"},
		{8000, "max"},
	}
	for _, tc := range cases {
		if got := rangeParam(tc.days); got != tc.want {
			t.Errorf("rangeParam(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}
