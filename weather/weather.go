// Package weather defines the daily-history contract the report pipeline
// consumes. Concrete providers live in subpackages.
package weather

import (
	"context"
	"time"
)

// DayRecord is one calendar day of observed weather. The archive API
// returns JSON nulls for days it has no data for, so both measurements are
// pointers; a nil value means "not observed", not zero.
type DayRecord struct {
	Date      time.Time
	TempMeanF *float64 // daily mean temperature, °F
	PrecipIn  *float64 // daily precipitation total, inches
}

// Query describes the history window to fetch.
type Query struct {
	Latitude  float64
	Longitude float64
	StartDate time.Time
	EndDate   time.Time
	Timezone  string // IANA name, e.g. "America/New_York"
}

// Provider fetches daily weather history for a fixed coordinate and range.
type Provider interface {
	DailyHistory(ctx context.Context, q Query) ([]DayRecord, error)
}
