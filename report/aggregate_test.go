package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanmetrics/beanmetrics/dataset"
)

// ── Test fixtures ─────────────────────────────────────────────────────────────

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(v float64) *float64 { return &v }

func row(date string, hour, qty int, price float64, category, detail string) dataset.EnrichedTransaction {
	return dataset.EnrichedTransaction{
		Transaction: dataset.Transaction{
			Date:      day(date),
			Hour:      hour,
			Qty:       qty,
			UnitPrice: price,
			Category:  category,
			Detail:    detail,
			Revenue:   float64(qty) * price,
		},
	}
}

func withWeather(r dataset.EnrichedTransaction, temp, rain *float64) dataset.EnrichedTransaction {
	r.TempMeanF = temp
	r.PrecipIn = rain
	return r
}

// ── Scalar metrics ────────────────────────────────────────────────────────────

func TestSummarizeTwoTransactionsSameDate(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-03-01", 9, 2, 3, "Coffee", "Latte"),
		row("2023-03-01", 10, 1, 5, "Coffee", "Mocha"),
	}

	s := Summarize(rows)
	assert.Equal(t, 2, s.TransactionCount)
	assert.InDelta(t, 11.0, s.TotalRevenue, 1e-9)
	assert.InDelta(t, 5.5, s.MeanRevenue, 1e-9)
	assert.Equal(t, 1, s.DayCount)
	assert.InDelta(t, 11.0, s.AvgDailyRevenue, 1e-9)
	assert.InDelta(t, 11.0, s.BusiestDay, 1e-9)
	assert.InDelta(t, 11.0, s.SlowestDay, 1e-9)

	daily := DailySummaries(rows)
	require.Len(t, daily, 1)
	assert.InDelta(t, 11.0, daily[0].Revenue, 1e-9)
	assert.Equal(t, 2, daily[0].Transactions)
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TransactionCount)
	assert.Zero(t, s.TotalRevenue)
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Hours)
}

func TestSummarizeDateRange(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-02-15", 9, 1, 1, "Coffee", "Latte"),
		row("2023-01-03", 9, 1, 1, "Coffee", "Latte"),
		row("2023-06-30", 9, 1, 1, "Coffee", "Latte"),
	}
	s := Summarize(rows)
	assert.Equal(t, day("2023-01-03"), s.FirstDate)
	assert.Equal(t, day("2023-06-30"), s.LastDate)
	assert.Equal(t, 3, s.DayCount)
}

// ── Partition properties ──────────────────────────────────────────────────────

func TestRevenuePartitionsAgree(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-03-01", 7, 2, 3.25, "Coffee", "Latte"),
		row("2023-03-01", 12, 1, 4.75, "Tea", "Chai"),
		row("2023-03-02", 18, 3, 2.00, "Bakery", "Scone"),
		row("2023-03-02", 9, 1, 3.00, "Coffee", "Americano"),
		row("2023-03-03", 15, 2, 5.50, "Tea", "Matcha"),
	}
	s := Summarize(rows)

	var byCategory, byHour float64
	for _, c := range s.Categories {
		byCategory += c.Revenue
	}
	for _, h := range s.Hours {
		byHour += h.Revenue
	}
	assert.InDelta(t, s.TotalRevenue, byCategory, 1e-9)
	assert.InDelta(t, s.TotalRevenue, byHour, 1e-9)
	assert.InDelta(t, s.TotalRevenue, s.MorningRevenue+s.AfternoonRevenue+s.EveningRevenue, 1e-9)

	var pct float64
	for _, c := range s.Categories {
		pct += c.Percent
	}
	assert.InDelta(t, 100.0, pct, 1e-9)
}

func TestCategoriesSortedDescending(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-03-01", 9, 1, 1, "Bakery", "Scone"),
		row("2023-03-01", 9, 1, 10, "Coffee", "Latte"),
		row("2023-03-01", 9, 1, 5, "Tea", "Chai"),
	}
	s := Summarize(rows)
	require.Len(t, s.Categories, 3)
	assert.Equal(t, "Coffee", s.Categories[0].Category)
	assert.Equal(t, "Tea", s.Categories[1].Category)
	assert.Equal(t, "Bakery", s.Categories[2].Category)
}

func TestTopProductsTruncatedAndOrdered(t *testing.T) {
	products := []string{"A", "B", "C", "D", "E", "F", "G"}
	var rows []dataset.EnrichedTransaction
	for i, p := range products {
		rows = append(rows, row("2023-03-01", 9, 1, float64(i+1), "Coffee", p))
	}

	s := Summarize(rows)
	require.Len(t, s.TopProducts, 5)
	assert.Equal(t, "G", s.TopProducts[0].Product)
	for i := 1; i < len(s.TopProducts); i++ {
		assert.GreaterOrEqual(t, s.TopProducts[i-1].Revenue, s.TopProducts[i].Revenue)
	}
}

func TestTopProductsShorterThanLimit(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-03-01", 9, 1, 2, "Coffee", "Latte"),
		row("2023-03-01", 9, 1, 3, "Coffee", "Mocha"),
	}
	s := Summarize(rows)
	assert.Len(t, s.TopProducts, 2)
}

func TestTopProductsTieKeepsInputOrder(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-03-01", 9, 1, 4, "Coffee", "Second"),
		row("2023-03-01", 9, 1, 4, "Coffee", "Third"),
		row("2023-03-01", 9, 1, 9, "Coffee", "First"),
	}
	s := Summarize(rows)
	require.Len(t, s.TopProducts, 3)
	assert.Equal(t, "First", s.TopProducts[0].Product)
	assert.Equal(t, "Second", s.TopProducts[1].Product)
	assert.Equal(t, "Third", s.TopProducts[2].Product)
}

// ── Hours and buckets ─────────────────────────────────────────────────────────

func TestTimeBuckets(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-03-01", 7, 1, 10, "Coffee", "Latte"),  // 07:15 → morning rush
		row("2023-03-01", 18, 1, 20, "Coffee", "Latte"), // 18:00 → evening
		row("2023-03-01", 12, 1, 30, "Coffee", "Latte"), // afternoon
		row("2023-03-01", 6, 1, 40, "Coffee", "Latte"),  // before any bucket
	}
	s := Summarize(rows)
	assert.InDelta(t, 10.0, s.MorningRevenue, 1e-9)
	assert.InDelta(t, 30.0, s.AfternoonRevenue, 1e-9)
	assert.InDelta(t, 20.0, s.EveningRevenue, 1e-9)
}

func TestHourExtremes(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-03-01", 8, 1, 5, "Coffee", "Latte"),
		row("2023-03-01", 10, 1, 50, "Coffee", "Latte"),
		row("2023-03-01", 20, 1, 1, "Coffee", "Latte"),
	}
	s := Summarize(rows)
	assert.Equal(t, 10, s.PeakHour)
	assert.InDelta(t, 50.0, s.PeakHourRevenue, 1e-9)
	assert.Equal(t, 20, s.SlowestHour)
	assert.InDelta(t, 1.0, s.SlowestHourRevenue, 1e-9)
}

func TestHourExtremesTieTakesLowestHour(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-03-01", 14, 1, 5, "Coffee", "Latte"),
		row("2023-03-01", 9, 1, 5, "Coffee", "Latte"),
	}
	s := Summarize(rows)
	assert.Equal(t, 9, s.PeakHour)
	assert.Equal(t, 9, s.SlowestHour)
}

// ── Daily summaries ───────────────────────────────────────────────────────────

func TestDailySummariesCounts(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		row("2023-03-01", 9, 1, 1, "Coffee", "Latte"),
		row("2023-03-02", 9, 1, 1, "Coffee", "Latte"),
		row("2023-03-01", 10, 1, 1, "Coffee", "Latte"),
		row("2023-03-01", 11, 1, 1, "Coffee", "Latte"),
	}
	daily := DailySummaries(rows)
	require.Len(t, daily, 2)
	assert.Equal(t, 3, daily[0].Transactions)
	assert.Equal(t, 1, daily[1].Transactions)
}

func TestDailySummariesTakeFirstWeatherValue(t *testing.T) {
	rows := []dataset.EnrichedTransaction{
		withWeather(row("2023-03-01", 9, 1, 1, "Coffee", "Latte"), nil, nil),
		withWeather(row("2023-03-01", 10, 1, 1, "Coffee", "Latte"), ptr(55), ptr(0.3)),
		withWeather(row("2023-03-01", 11, 1, 1, "Coffee", "Latte"), ptr(99), ptr(9.9)),
	}
	daily := DailySummaries(rows)
	require.Len(t, daily, 1)
	require.NotNil(t, daily[0].Temperature)
	require.NotNil(t, daily[0].Rain)
	assert.InDelta(t, 55.0, *daily[0].Temperature, 1e-9)
	assert.InDelta(t, 0.3, *daily[0].Rain, 1e-9)
}

func TestDailySummariesKeepNilWeather(t *testing.T) {
	daily := DailySummaries([]dataset.EnrichedTransaction{
		row("2023-03-01", 9, 1, 1, "Coffee", "Latte"),
	})
	require.Len(t, daily, 1)
	assert.Nil(t, daily[0].Temperature)
	assert.Nil(t, daily[0].Rain)
}
