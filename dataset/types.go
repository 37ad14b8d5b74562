package dataset

import "time"

// ============================================================================
// DATASET TYPES — Transaction, EnrichedTransaction, DailySummary
// ============================================================================
// All three tables are immutable once built: every transformation in this
// module produces a new slice rather than mutating in place.
// ============================================================================

// Transaction is a single sales line after filtering and derivation.
// Date holds the calendar day only (midnight, location-local); the original
// time of day survives as Hour (0–23). Revenue is always Qty × UnitPrice.
type Transaction struct {
	ID            string
	StoreLocation string
	Date          time.Time
	Hour          int
	Qty           int
	UnitPrice     float64
	Category      string
	Detail        string
	Revenue       float64
}

// EnrichedTransaction is a Transaction joined with the weather observed on
// its calendar date. The join is a left join: transactions whose date has no
// weather row keep nil weather fields.
type EnrichedTransaction struct {
	Transaction
	TempMeanF *float64 // mean temperature, °F
	PrecipIn  *float64 // total precipitation, inches
}

// DailySummary is one aggregated row per distinct calendar date present in
// the enriched table. Temperature and Rain carry the first non-nil value
// seen for the date, or nil when no transaction on that date had weather.
type DailySummary struct {
	Date         time.Time
	Revenue      float64
	Temperature  *float64
	Rain         *float64
	Transactions int
}
