package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanmetrics/beanmetrics/weather"
)

func testQuery(t *testing.T) weather.Query {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2023-01-01")
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", "2023-01-03")
	require.NoError(t, err)
	return weather.Query{
		Latitude:  40.7128,
		Longitude: -74.006,
		StartDate: start,
		EndDate:   end,
		Timezone:  "America/New_York",
	}
}

func TestDailyHistoryParsesParallelArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "40.7128", q.Get("latitude"))
		assert.Equal(t, "-74.006", q.Get("longitude"))
		assert.Equal(t, "2023-01-01", q.Get("start_date"))
		assert.Equal(t, "2023-01-03", q.Get("end_date"))
		assert.Equal(t, "temperature_2m_mean,precipitation_sum", q.Get("daily"))
		assert.Equal(t, "fahrenheit", q.Get("temperature_unit"))
		assert.Equal(t, "inch", q.Get("precipitation_unit"))
		assert.Equal(t, "America/New_York", q.Get("timezone"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"daily": {
				"time": ["2023-01-01", "2023-01-02", "2023-01-03"],
				"temperature_2m_mean": [38.6, null, 45.1],
				"precipitation_sum": [0.12, 0.0, null]
			}
		}`))
	}))
	defer srv.Close()

	days, err := NewWithBaseURL(srv.URL).DailyHistory(context.Background(), testQuery(t))
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, "2023-01-01", days[0].Date.Format("2006-01-02"))
	require.NotNil(t, days[0].TempMeanF)
	assert.InDelta(t, 38.6, *days[0].TempMeanF, 1e-9)
	require.NotNil(t, days[0].PrecipIn)
	assert.InDelta(t, 0.12, *days[0].PrecipIn, 1e-9)

	// Nulls survive as nil, they never become zero.
	assert.Nil(t, days[1].TempMeanF)
	require.NotNil(t, days[1].PrecipIn)
	assert.Equal(t, 0.0, *days[1].PrecipIn)
	assert.Nil(t, days[2].PrecipIn)
}

func TestDailyHistoryNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":true,"reason":"Value must be in range"}`))
	}))
	defer srv.Close()

	_, err := NewWithBaseURL(srv.URL).DailyHistory(context.Background(), testQuery(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Value must be in range")
}

func TestDailyHistoryMissingDailyBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latitude": 40.7, "longitude": -74.0}`))
	}))
	defer srv.Close()

	_, err := NewWithBaseURL(srv.URL).DailyHistory(context.Background(), testQuery(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing daily data")
}

func TestDailyHistoryMisalignedArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"daily": {
				"time": ["2023-01-01", "2023-01-02"],
				"temperature_2m_mean": [38.6],
				"precipitation_sum": [0.12, 0.0]
			}
		}`))
	}))
	defer srv.Close()

	_, err := NewWithBaseURL(srv.URL).DailyHistory(context.Background(), testQuery(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misaligned")
}

func TestDailyHistoryMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily": `))
	}))
	defer srv.Close()

	_, err := NewWithBaseURL(srv.URL).DailyHistory(context.Background(), testQuery(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing archive JSON")
}

func TestDailyHistoryUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the call

	_, err := NewWithBaseURL(srv.URL).DailyHistory(context.Background(), testQuery(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching weather history")
}
