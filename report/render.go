package report

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ============================================================================
// TEXT RENDERING — the console report
// ============================================================================
// Section order is fixed: header, basic numbers, category breakdown, top-5
// products, hourly breakdown, weather correlation. Currency gets thousands
// separators and 2 decimals, percentages 1 decimal, coefficients 3.
// ============================================================================

const bannerWidth = 60

// WriteText renders the full console report. The message.Printer handles
// thousands separators on both %d and %f verbs.
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	p := message.NewPrinter(language.English)
	banner := strings.Repeat("=", bannerWidth)

	p.Fprintf(bw, "\n%s\n", banner)
	p.Fprintf(bw, "COFFEE SHOP ANALYSIS - %s\n", strings.ToUpper(r.Config.StoreLocation))
	p.Fprintf(bw, "%s\n\n", banner)

	s := r.Stats
	p.Fprintf(bw, "BASIC NUMBERS:\n")
	p.Fprintf(bw, "Total transactions: %d\n", s.TransactionCount)
	p.Fprintf(bw, "Total revenue: $%.2f\n", s.TotalRevenue)
	p.Fprintf(bw, "Average per transaction: $%.2f\n", s.MeanRevenue)
	p.Fprintf(bw, "Date range: %s to %s\n", s.FirstDate.Format("2006-01-02"), s.LastDate.Format("2006-01-02"))
	p.Fprintf(bw, "Time period: %d days\n", s.DayCount)
	p.Fprintf(bw, "Average daily revenue: $%.2f\n", s.AvgDailyRevenue)
	p.Fprintf(bw, "Busiest day: $%.2f\n", s.BusiestDay)
	p.Fprintf(bw, "Slowest day: $%.2f\n\n", s.SlowestDay)

	p.Fprintf(bw, "SALES BY PRODUCT CATEGORY:\n")
	for _, c := range s.Categories {
		p.Fprintf(bw, "  %s: $%.2f (%.1f%% of total)\n", c.Category, c.Revenue, c.Percent)
	}
	p.Fprintf(bw, "\n")

	p.Fprintf(bw, "TOP 5 PRODUCTS:\n")
	for _, prod := range s.TopProducts {
		p.Fprintf(bw, "  %s: $%.2f\n", prod.Product, prod.Revenue)
	}
	p.Fprintf(bw, "\n")

	p.Fprintf(bw, "SALES BY HOUR:\n")
	p.Fprintf(bw, "  Peak hour: %d:00 with $%.2f\n", s.PeakHour, s.PeakHourRevenue)
	p.Fprintf(bw, "  Slowest hour: %d:00 with $%.2f\n", s.SlowestHour, s.SlowestHourRevenue)
	p.Fprintf(bw, "  Morning rush (7-11am): $%.2f\n", s.MorningRevenue)
	p.Fprintf(bw, "  Afternoon (12-5pm): $%.2f\n", s.AfternoonRevenue)
	p.Fprintf(bw, "  Evening (6pm+): $%.2f\n\n", s.EveningRevenue)

	writeWeather(p, bw, r.Weather)

	return bw.Flush()
}

func writeWeather(p *message.Printer, w io.Writer, wr WeatherReport) {
	p.Fprintf(w, "WEATHER CORRELATION:\n")

	p.Fprintf(w, "  Temperature vs Sales Correlation: %s\n", formatCorr(wr.TempCorr))
	p.Fprintf(w, "    %s\n", verdictLine(wr.Temp.Label, wr.Temp.Headline))
	if wr.Temp.Label == "strong positive" {
		if wr.Temp.SplitDefined {
			p.Fprintf(w, "    Cold days (<40F) average daily revenue: $%.2f\n", wr.Temp.ColdDays.Mean)
			p.Fprintf(w, "    Warm days (>70F) average daily revenue: $%.2f\n", wr.Temp.WarmDays.Mean)
			p.Fprintf(w, "    Difference: $%.2f (%.1f%% more on warm days)\n", wr.Temp.Difference, wr.Temp.UpliftPercent)
		} else {
			p.Fprintf(w, "    Cold/warm revenue split: insufficient data\n")
		}
	}

	p.Fprintf(w, "\n  Rainfall vs Sales Correlation: %s\n", formatCorr(wr.RainCorr))
	p.Fprintf(w, "    %s\n", verdictLine(wr.Rain.Label, wr.Rain.Headline))
	if wr.Rain.Label == "weak" {
		if wr.Rain.SplitDefined {
			p.Fprintf(w, "    Rainy days average daily revenue: $%.2f\n", wr.Rain.RainyDays.Mean)
			p.Fprintf(w, "    Clear days average daily revenue: $%.2f\n", wr.Rain.ClearDays.Mean)
			p.Fprintf(w, "    Difference: $%.2f (rain has minimal impact)\n", wr.Rain.Difference)
		} else {
			p.Fprintf(w, "    Rainy/clear revenue split: insufficient data\n")
		}
	}

	if wr.TempStatsDefined {
		p.Fprintf(w, "\n  Temperature Range: %.1fF to %.1fF\n", wr.TempMin, wr.TempMax)
		p.Fprintf(w, "  Average Temperature: %.1fF\n", wr.TempMean)
	} else {
		p.Fprintf(w, "\n  Temperature Range: no weather data\n")
	}
	p.Fprintf(w, "  Rainiest Day: %.2f inches\n", wr.MaxRain)
	p.Fprintf(w, "  Days with Rain: %d out of %d days\n\n", wr.RainyDays, wr.TotalDays)
}

// formatCorr renders a coefficient to 3 decimals, or "undefined" when the
// series had no usable variation.
func formatCorr(c Correlation) string {
	if !c.Defined {
		return "undefined (insufficient variation)"
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.3f", c.R)
}

// verdictLine turns ("strong positive", headline) into
// "STRONG positive correlation - headline", matching the fixed report shape.
func verdictLine(label, headline string) string {
	if label == "undefined" {
		return "Correlation undefined - " + headline
	}
	first, rest, found := strings.Cut(label, " ")
	display := strings.ToUpper(first)
	if found {
		display += " " + rest
	}
	return display + " correlation - " + headline
}
