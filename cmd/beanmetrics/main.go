package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/beanmetrics/beanmetrics/chart"
	"github.com/beanmetrics/beanmetrics/dataset"
	"github.com/beanmetrics/beanmetrics/report"
	"github.com/beanmetrics/beanmetrics/weather"
	"github.com/beanmetrics/beanmetrics/weather/openmeteo"
)

// ============================================================================
// BEANMETRICS — coffee-shop sales & weather report
// ============================================================================
// Linear flow: load → filter → fetch weather → join → aggregate → print →
// chart → CSV. Every failure is terminal; the report goes to stdout and
// diagnostics go to stderr.
// ============================================================================

// The dataset and window are fixed: Lower Manhattan store, first half of
// 2023, NYC coordinates for the weather archive.
const (
	transactionFile = "coffee-shop-sales-revenue.csv"
	storeLocation   = "Lower Manhattan"
	latitude        = 40.7128
	longitude       = -74.0060
	startDate       = "2023-01-01"
	endDate         = "2023-06-30"
	timezone        = "America/New_York"

	chartFile        = "chart.png"
	combinedFile     = "combined_data.csv"
	dailySummaryFile = "daily_summary.csv"
)

func main() {
	cfg := buildConfig()

	txns, err := dataset.LoadTransactions(transactionFile, cfg.StoreLocation)
	if err != nil {
		log.Fatal("loading transactions", "err", err)
	}
	log.Info("loaded transactions", "rows", len(txns), "store", cfg.StoreLocation)

	days, err := fetchWeather(cfg)
	if err != nil {
		log.Fatal("fetching weather history", "err", err)
	}
	log.Info("fetched weather history", "days", len(days))

	enriched := dataset.Join(txns, days)
	rep := report.Build(cfg, enriched)

	if err := rep.WriteText(os.Stdout); err != nil {
		log.Fatal("writing report", "err", err)
	}

	// Artifacts come after the console report so a write failure never
	// suppresses the analysis itself.
	if err := chart.New(chartFile).Render(rep); err != nil {
		log.Fatal("rendering chart", "err", err)
	}
	if err := dataset.WriteCombined(combinedFile, enriched); err != nil {
		log.Fatal("writing combined data", "err", err)
	}
	if err := dataset.WriteDailySummary(dailySummaryFile, rep.Daily); err != nil {
		log.Fatal("writing daily summary", "err", err)
	}

	fmt.Printf("Files saved: %s, %s, %s\n", chartFile, combinedFile, dailySummaryFile)
}

func buildConfig() report.Config {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		log.Fatal("parsing start date", "err", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		log.Fatal("parsing end date", "err", err)
	}
	return report.Config{
		StoreLocation: storeLocation,
		Latitude:      latitude,
		Longitude:     longitude,
		StartDate:     start,
		EndDate:       end,
		Timezone:      timezone,
	}
}

func fetchWeather(cfg report.Config) ([]weather.DayRecord, error) {
	var provider weather.Provider = openmeteo.New()
	return provider.DailyHistory(context.Background(), weather.Query{
		Latitude:  cfg.Latitude,
		Longitude: cfg.Longitude,
		StartDate: cfg.StartDate,
		EndDate:   cfg.EndDate,
		Timezone:  cfg.Timezone,
	})
}
