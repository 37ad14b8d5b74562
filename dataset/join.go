package dataset

import (
	"github.com/beanmetrics/beanmetrics/weather"
)

// ============================================================================
// JOIN — Transactions ⟕ daily weather on calendar date
// ============================================================================

const dayKey = "2006-01-02"

// Join left-joins transactions with daily weather on calendar date.
// Every transaction survives; dates absent from the weather set keep nil
// weather fields. Output order matches input order.
func Join(txns []Transaction, days []weather.DayRecord) []EnrichedTransaction {
	byDay := make(map[string]weather.DayRecord, len(days))
	for _, d := range days {
		byDay[d.Date.Format(dayKey)] = d
	}

	enriched := make([]EnrichedTransaction, 0, len(txns))
	for _, txn := range txns {
		e := EnrichedTransaction{Transaction: txn}
		if d, ok := byDay[txn.Date.Format(dayKey)]; ok {
			e.TempMeanF = d.TempMeanF
			e.PrecipIn = d.PrecipIn
		}
		enriched = append(enriched, e)
	}
	return enriched
}
