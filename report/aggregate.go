package report

import (
	"sort"
	"time"

	"github.com/beanmetrics/beanmetrics/dataset"
)

// ============================================================================
// AGGREGATION — Pure, order-insensitive rollups over the enriched table
// ============================================================================
// Grouping follows the map-plus-order-slice pattern so group order is
// first-seen input order, which is what makes the descending sorts stable
// with respect to the source file.
// ============================================================================

// Time buckets, half-open on the right.
const (
	morningStart   = 7
	afternoonStart = 12
	eveningStart   = 18
	eveningEnd     = 24
)

// CategoryRevenue is one product category's revenue share.
type CategoryRevenue struct {
	Category string
	Revenue  float64
	Percent  float64 // of total category revenue
}

// ProductRevenue is one product's summed revenue.
type ProductRevenue struct {
	Product string
	Revenue float64
}

// HourRevenue is one hour-of-day's summed revenue and transaction count.
type HourRevenue struct {
	Hour    int
	Revenue float64
	Count   int
}

// Stats holds every scalar and grouped metric the console report prints.
type Stats struct {
	TransactionCount int
	TotalRevenue     float64
	MeanRevenue      float64 // per transaction
	FirstDate        time.Time
	LastDate         time.Time

	DayCount        int // distinct dates with at least one transaction
	AvgDailyRevenue float64
	BusiestDay      float64 // highest single-day revenue
	SlowestDay      float64 // lowest single-day revenue

	Categories  []CategoryRevenue // descending by revenue
	TopProducts []ProductRevenue  // descending, at most 5
	Hours       []HourRevenue     // ascending by hour, present hours only

	PeakHour           int
	PeakHourRevenue    float64
	SlowestHour        int
	SlowestHourRevenue float64

	MorningRevenue   float64 // hours [7,12)
	AfternoonRevenue float64 // hours [12,18)
	EveningRevenue   float64 // hours [18,24)
}

// Summarize computes every Stats metric in a handful of passes over the
// enriched table. An empty input yields zero-valued Stats.
func Summarize(rows []dataset.EnrichedTransaction) Stats {
	var s Stats
	if len(rows) == 0 {
		return s
	}

	s.TransactionCount = len(rows)
	s.FirstDate = rows[0].Date
	s.LastDate = rows[0].Date
	for _, r := range rows {
		s.TotalRevenue += r.Revenue
		if r.Date.Before(s.FirstDate) {
			s.FirstDate = r.Date
		}
		if r.Date.After(s.LastDate) {
			s.LastDate = r.Date
		}
	}
	s.MeanRevenue = s.TotalRevenue / float64(len(rows))

	daily := DailySummaries(rows)
	s.DayCount = len(daily)
	s.BusiestDay = daily[0].Revenue
	s.SlowestDay = daily[0].Revenue
	var dailyTotal float64
	for _, d := range daily {
		dailyTotal += d.Revenue
		if d.Revenue > s.BusiestDay {
			s.BusiestDay = d.Revenue
		}
		if d.Revenue < s.SlowestDay {
			s.SlowestDay = d.Revenue
		}
	}
	s.AvgDailyRevenue = dailyTotal / float64(len(daily))

	s.Categories = byCategory(rows, s.TotalRevenue)
	s.TopProducts = topProducts(rows, 5)
	s.Hours = byHour(rows)

	s.PeakHour, s.PeakHourRevenue, s.SlowestHour, s.SlowestHourRevenue = hourExtremes(s.Hours)
	s.MorningRevenue, s.AfternoonRevenue, s.EveningRevenue = bucketRevenue(s.Hours)

	return s
}

// DailySummaries groups the enriched table by calendar date: revenue sum,
// first non-nil temperature and rain, transaction count. One row per
// distinct date, in first-seen order.
func DailySummaries(rows []dataset.EnrichedTransaction) []dataset.DailySummary {
	grouped := make(map[string]*dataset.DailySummary)
	var order []string

	for _, r := range rows {
		key := r.Date.Format("2006-01-02")
		d, ok := grouped[key]
		if !ok {
			d = &dataset.DailySummary{Date: r.Date}
			grouped[key] = d
			order = append(order, key)
		}
		d.Revenue += r.Revenue
		d.Transactions++
		if d.Temperature == nil && r.TempMeanF != nil {
			d.Temperature = r.TempMeanF
		}
		if d.Rain == nil && r.PrecipIn != nil {
			d.Rain = r.PrecipIn
		}
	}

	daily := make([]dataset.DailySummary, 0, len(order))
	for _, key := range order {
		daily = append(daily, *grouped[key])
	}
	return daily
}

func byCategory(rows []dataset.EnrichedTransaction, total float64) []CategoryRevenue {
	sums := make(map[string]float64)
	var order []string
	for _, r := range rows {
		if _, ok := sums[r.Category]; !ok {
			order = append(order, r.Category)
		}
		sums[r.Category] += r.Revenue
	}

	cats := make([]CategoryRevenue, 0, len(order))
	for _, c := range order {
		cr := CategoryRevenue{Category: c, Revenue: sums[c]}
		if total != 0 {
			cr.Percent = sums[c] / total * 100
		}
		cats = append(cats, cr)
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Revenue > cats[j].Revenue })
	return cats
}

func topProducts(rows []dataset.EnrichedTransaction, limit int) []ProductRevenue {
	sums := make(map[string]float64)
	var order []string
	for _, r := range rows {
		if _, ok := sums[r.Detail]; !ok {
			order = append(order, r.Detail)
		}
		sums[r.Detail] += r.Revenue
	}

	products := make([]ProductRevenue, 0, len(order))
	for _, p := range order {
		products = append(products, ProductRevenue{Product: p, Revenue: sums[p]})
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].Revenue > products[j].Revenue })
	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

// byHour returns per-hour revenue and counts, ascending by hour, only for
// hours that actually appear in the data.
func byHour(rows []dataset.EnrichedTransaction) []HourRevenue {
	var sums [24]float64
	var counts [24]int
	for _, r := range rows {
		sums[r.Hour] += r.Revenue
		counts[r.Hour]++
	}

	var hours []HourRevenue
	for h := 0; h < 24; h++ {
		if counts[h] > 0 {
			hours = append(hours, HourRevenue{Hour: h, Revenue: sums[h], Count: counts[h]})
		}
	}
	return hours
}

// hourExtremes finds peak and slowest hours by revenue. Hours is ascending,
// so strict comparisons give the lowest hour on ties.
func hourExtremes(hours []HourRevenue) (peak int, peakRev float64, slow int, slowRev float64) {
	if len(hours) == 0 {
		return 0, 0, 0, 0
	}
	peak, peakRev = hours[0].Hour, hours[0].Revenue
	slow, slowRev = hours[0].Hour, hours[0].Revenue
	for _, h := range hours[1:] {
		if h.Revenue > peakRev {
			peak, peakRev = h.Hour, h.Revenue
		}
		if h.Revenue < slowRev {
			slow, slowRev = h.Hour, h.Revenue
		}
	}
	return peak, peakRev, slow, slowRev
}

func bucketRevenue(hours []HourRevenue) (morning, afternoon, evening float64) {
	for _, h := range hours {
		switch {
		case h.Hour >= morningStart && h.Hour < afternoonStart:
			morning += h.Revenue
		case h.Hour >= afternoonStart && h.Hour < eveningStart:
			afternoon += h.Revenue
		case h.Hour >= eveningStart && h.Hour < eveningEnd:
			evening += h.Revenue
		}
	}
	return morning, afternoon, evening
}
