// Package openmeteo implements weather.Provider against the Open-Meteo
// historical archive API (https://open-meteo.com/en/docs/historical-weather-api).
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/beanmetrics/beanmetrics/weather"
)

const defaultBaseURL = "https://archive-api.open-meteo.com/v1/archive"

const isoDate = "2006-01-02"

// archiveResponse mirrors the wire shape: a "daily" object holding parallel
// arrays. Measurements are pointers because the archive serves null for
// days without data.
type archiveResponse struct {
	Daily struct {
		Time      []string   `json:"time"`
		TempMean  []*float64 `json:"temperature_2m_mean"`
		PrecipSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Client fetches daily history from the Open-Meteo archive.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a Client against the public archive endpoint.
func New() *Client {
	return &Client{baseURL: defaultBaseURL, httpc: http.DefaultClient}
}

// NewWithBaseURL returns a Client against a custom endpoint. Used by tests.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{baseURL: baseURL, httpc: http.DefaultClient}
}

// DailyHistory fetches mean temperature (°F) and precipitation (inches) for
// each day of the query range. One request, no retries: any transport
// failure, non-200 status, or unexpected JSON shape is returned as an error.
func (c *Client) DailyHistory(ctx context.Context, q weather.Query) ([]weather.DayRecord, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", q.Latitude))
	params.Set("longitude", fmt.Sprintf("%g", q.Longitude))
	params.Set("start_date", q.StartDate.Format(isoDate))
	params.Set("end_date", q.EndDate.Format(isoDate))
	params.Set("daily", "temperature_2m_mean,precipitation_sum")
	params.Set("temperature_unit", "fahrenheit")
	params.Set("precipitation_unit", "inch")
	params.Set("timezone", q.Timezone)

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building archive request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching weather history: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading archive response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("archive API returned %d: %s", resp.StatusCode, string(body))
	}

	var data archiveResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing archive JSON: %w", err)
	}

	return toDayRecords(data)
}

// toDayRecords converts the parallel-array wire shape into one record per
// day. A response without a daily block (or with an empty range) is an
// error — the caller has nothing to correlate against.
func toDayRecords(data archiveResponse) ([]weather.DayRecord, error) {
	d := data.Daily
	if len(d.Time) == 0 {
		return nil, fmt.Errorf("archive response missing daily data")
	}
	if len(d.TempMean) != len(d.Time) || len(d.PrecipSum) != len(d.Time) {
		return nil, fmt.Errorf("archive response arrays misaligned: %d dates, %d temperatures, %d precipitation values",
			len(d.Time), len(d.TempMean), len(d.PrecipSum))
	}

	records := make([]weather.DayRecord, len(d.Time))
	for i, day := range d.Time {
		date, err := time.Parse(isoDate, day)
		if err != nil {
			return nil, fmt.Errorf("parsing archive date %q: %w", day, err)
		}
		records[i] = weather.DayRecord{
			Date:      date,
			TempMeanF: d.TempMean[i],
			PrecipIn:  d.PrecipSum[i],
		}
	}
	return records, nil
}
