package report

import "time"

// Config identifies the store and observation window the report covers.
// The binary builds one from compile-time constants; tests build arbitrary
// ones — nothing in this package reads globals.
type Config struct {
	StoreLocation string
	Latitude      float64
	Longitude     float64
	StartDate     time.Time
	EndDate       time.Time
	Timezone      string
}
