package report

import (
	"math"

	"github.com/beanmetrics/beanmetrics/dataset"
)

// ============================================================================
// CORRELATION — Pearson r + threshold decision tables
// ============================================================================
// Days whose weather fields are nil (left-join misses) are skipped when
// pairing series, matching how the daily summaries treat them: present in
// the table, absent from the statistics.
// ============================================================================

// Correlation is a Pearson coefficient that may be undefined. It is
// undefined when fewer than two pairs exist or either series is constant —
// never NaN.
type Correlation struct {
	R       float64
	Defined bool
}

// Pearson computes the linear correlation coefficient between two
// equal-length series. Result is in [-1, 1] when defined.
func Pearson(x, y []float64) Correlation {
	n := len(x)
	if n != len(y) || n < 2 {
		return Correlation{}
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return Correlation{}
	}

	r := cov / math.Sqrt(varX*varY)
	// Clamp rounding spill so callers can rely on [-1, 1].
	r = math.Max(-1, math.Min(1, r))
	return Correlation{R: r, Defined: true}
}

// ============================================================================
// CLASSIFICATION DECISION TABLES
// ============================================================================

// Classification thresholds and revenue-split boundaries.
const (
	strongTempCorr   = 0.70
	moderateTempCorr = 0.30
	weakRainCorr     = 0.20

	coldDayMaxF = 40.0 // cold day: temperature < 40°F
	warmDayMinF = 70.0 // warm day: temperature > 70°F
)

// BucketMean is a mean daily revenue over a subset of days. Defined is
// false when the subset is empty.
type BucketMean struct {
	Mean    float64
	Days    int
	Defined bool
}

// TempAssessment is the temperature-correlation verdict plus the extra
// cold/warm split computed only for the strong band.
type TempAssessment struct {
	Label    string // "strong positive", "moderate positive", "weak", "undefined"
	Headline string

	// Populated only when Label is "strong positive".
	ColdDays      BucketMean // days below coldDayMaxF
	WarmDays      BucketMean // days above warmDayMinF
	Difference    float64    // warm mean − cold mean
	UpliftPercent float64    // (warm/cold − 1) × 100
	SplitDefined  bool       // both buckets non-empty and cold mean non-zero
}

// RainAssessment is the rainfall-correlation verdict plus the rainy/clear
// split computed only for the weak band.
type RainAssessment struct {
	Label    string // "weak", "negative", "positive", "undefined"
	Headline string

	// Populated only when Label is "weak".
	RainyDays    BucketMean // days with rain > 0
	ClearDays    BucketMean // days with rain == 0
	Difference   float64    // |clear mean − rainy mean|
	SplitDefined bool
}

// tempBands is the temperature decision table, checked top to bottom;
// first band whose floor the coefficient exceeds wins.
var tempBands = []struct {
	floor    float64 // applies when r > floor
	label    string
	headline string
	split    bool // compute cold/warm revenue split
}{
	{strongTempCorr, "strong positive", "Warmer days = MUCH higher sales", true},
	{moderateTempCorr, "moderate positive", "Warmer days have somewhat higher sales", false},
	{math.Inf(-1), "weak", "Temperature doesn't strongly affect sales", false},
}

// rainBands is the rainfall decision table, checked top to bottom.
var rainBands = []struct {
	matches  func(r float64) bool
	label    string
	headline string
	split    bool // compute rainy/clear revenue split
}{
	{func(r float64) bool { return math.Abs(r) < weakRainCorr }, "weak", "Rain barely affects sales", true},
	{func(r float64) bool { return r < 0 }, "negative", "More rain = less sales", false},
	{func(r float64) bool { return true }, "positive", "More rain = more sales (unusual!)", false},
}

// WeatherReport is the full §weather block of the console report.
type WeatherReport struct {
	TempCorr Correlation
	RainCorr Correlation
	Temp     TempAssessment
	Rain     RainAssessment

	// Descriptive weather stats over days with observations.
	TempMin, TempMax, TempMean float64
	TempStatsDefined           bool
	MaxRain                    float64
	RainyDays                  int
	TotalDays                  int // derived from the summary, never assumed
}

// Correlate computes both correlations, classifies them, and gathers the
// descriptive weather stats from the daily summaries.
func Correlate(daily []dataset.DailySummary) WeatherReport {
	var w WeatherReport
	w.TotalDays = len(daily)

	var revByTemp, temps []float64
	var revByRain, rains []float64
	for _, d := range daily {
		if d.Temperature != nil {
			revByTemp = append(revByTemp, d.Revenue)
			temps = append(temps, *d.Temperature)
		}
		if d.Rain != nil {
			revByRain = append(revByRain, d.Revenue)
			rains = append(rains, *d.Rain)
		}
	}

	w.TempCorr = Pearson(revByTemp, temps)
	w.RainCorr = Pearson(revByRain, rains)
	w.Temp = classifyTemp(w.TempCorr, daily)
	w.Rain = classifyRain(w.RainCorr, daily)

	if len(temps) > 0 {
		w.TempStatsDefined = true
		w.TempMin, w.TempMax = temps[0], temps[0]
		var sum float64
		for _, t := range temps {
			sum += t
			if t < w.TempMin {
				w.TempMin = t
			}
			if t > w.TempMax {
				w.TempMax = t
			}
		}
		w.TempMean = sum / float64(len(temps))
	}

	for _, r := range rains {
		if r > w.MaxRain {
			w.MaxRain = r
		}
		if r > 0 {
			w.RainyDays++
		}
	}

	return w
}

func classifyTemp(corr Correlation, daily []dataset.DailySummary) TempAssessment {
	if !corr.Defined {
		return TempAssessment{Label: "undefined", Headline: "Not enough variation to measure a temperature effect"}
	}

	for _, band := range tempBands {
		if corr.R <= band.floor {
			continue
		}
		a := TempAssessment{Label: band.label, Headline: band.headline}
		if band.split {
			a.ColdDays = meanRevenueWhere(daily, func(d dataset.DailySummary) bool {
				return d.Temperature != nil && *d.Temperature < coldDayMaxF
			})
			a.WarmDays = meanRevenueWhere(daily, func(d dataset.DailySummary) bool {
				return d.Temperature != nil && *d.Temperature > warmDayMinF
			})
			if a.ColdDays.Defined && a.WarmDays.Defined && a.ColdDays.Mean != 0 {
				a.Difference = a.WarmDays.Mean - a.ColdDays.Mean
				a.UpliftPercent = (a.WarmDays.Mean/a.ColdDays.Mean - 1) * 100
				a.SplitDefined = true
			}
		}
		return a
	}

	// Unreachable: the last band's floor is -Inf.
	return TempAssessment{Label: "weak"}
}

func classifyRain(corr Correlation, daily []dataset.DailySummary) RainAssessment {
	if !corr.Defined {
		return RainAssessment{Label: "undefined", Headline: "Not enough variation to measure a rainfall effect"}
	}

	for _, band := range rainBands {
		if !band.matches(corr.R) {
			continue
		}
		a := RainAssessment{Label: band.label, Headline: band.headline}
		if band.split {
			a.RainyDays = meanRevenueWhere(daily, func(d dataset.DailySummary) bool {
				return d.Rain != nil && *d.Rain > 0
			})
			a.ClearDays = meanRevenueWhere(daily, func(d dataset.DailySummary) bool {
				return d.Rain != nil && *d.Rain == 0
			})
			if a.RainyDays.Defined && a.ClearDays.Defined {
				a.Difference = math.Abs(a.ClearDays.Mean - a.RainyDays.Mean)
				a.SplitDefined = true
			}
		}
		return a
	}

	// Unreachable: the last band matches everything.
	return RainAssessment{Label: "positive"}
}

func meanRevenueWhere(daily []dataset.DailySummary, keep func(dataset.DailySummary) bool) BucketMean {
	var sum float64
	var n int
	for _, d := range daily {
		if keep(d) {
			sum += d.Revenue
			n++
		}
	}
	if n == 0 {
		return BucketMean{}
	}
	return BucketMean{Mean: sum / float64(n), Days: n, Defined: true}
}
