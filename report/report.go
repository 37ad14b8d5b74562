package report

import (
	"github.com/beanmetrics/beanmetrics/dataset"
)

// ============================================================================
// REPORT ASSEMBLY
// ============================================================================
// Build is the whole Report Engine: aggregate → summarize per day →
// correlate. It never touches the network, the filesystem, or a rendering
// library, so every number the report prints is testable in isolation.
// ============================================================================

// Report is the complete computed output for one store and window.
type Report struct {
	Config  Config
	Stats   Stats
	Daily   []dataset.DailySummary
	Weather WeatherReport
}

// Sink consumes a finished report and produces an artifact (a chart file,
// a rendered document). The engine stays free of rendering dependencies.
type Sink interface {
	Render(rep *Report) error
}

// Build computes all metrics for the enriched transaction table.
func Build(cfg Config, rows []dataset.EnrichedTransaction) *Report {
	daily := DailySummaries(rows)
	return &Report{
		Config:  cfg,
		Stats:   Summarize(rows),
		Daily:   daily,
		Weather: Correlate(daily),
	}
}
