package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// ============================================================================
// CSV ARTIFACTS — combined_data.csv and daily_summary.csv
// ============================================================================
// Both files are comma-separated and overwrite any existing file. Nil
// weather fields serialize as empty strings and read back as nil, so the
// daily summary round-trips exactly (modulo float formatting, which uses
// strconv's shortest representation and loses nothing).
// ============================================================================

var combinedHeader = []string{
	"transaction_id", "store_location", "date", "hour",
	"transaction_qty", "unit_price", "product_category", "product_detail",
	"revenue", "temperature", "rain",
}

var dailySummaryHeader = []string{"date", "revenue", "temperature", "rain", "transactions"}

// WriteCombined writes the enriched transaction table.
func WriteCombined(path string, rows []EnrichedTransaction) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(combinedHeader); err != nil {
			return err
		}
		for _, r := range rows {
			record := []string{
				r.ID,
				r.StoreLocation,
				r.Date.Format("2006-01-02"),
				strconv.Itoa(r.Hour),
				strconv.Itoa(r.Qty),
				formatFloat(r.UnitPrice),
				r.Category,
				r.Detail,
				formatFloat(r.Revenue),
				formatOptional(r.TempMeanF),
				formatOptional(r.PrecipIn),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteDailySummary writes one row per calendar date.
func WriteDailySummary(path string, daily []DailySummary) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(dailySummaryHeader); err != nil {
			return err
		}
		for _, d := range daily {
			record := []string{
				d.Date.Format("2006-01-02"),
				formatFloat(d.Revenue),
				formatOptional(d.Temperature),
				formatOptional(d.Rain),
				strconv.Itoa(d.Transactions),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadDailySummary reads a daily_summary.csv back into memory. Used by
// consumers that post-process the artifact, and by the round-trip tests.
func ReadDailySummary(path string) ([]DailySummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil { // header
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	var daily []DailySummary
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		d, err := parseDailyRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		daily = append(daily, d)
	}
	return daily, nil
}

func parseDailyRow(row []string) (DailySummary, error) {
	if len(row) != len(dailySummaryHeader) {
		return DailySummary{}, fmt.Errorf("expected %d fields, got %d", len(dailySummaryHeader), len(row))
	}

	date, err := time.Parse("2006-01-02", row[0])
	if err != nil {
		return DailySummary{}, fmt.Errorf("field date: %w", err)
	}
	revenue, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return DailySummary{}, fmt.Errorf("field revenue: %w", err)
	}
	temp, err := parseOptional(row[2])
	if err != nil {
		return DailySummary{}, fmt.Errorf("field temperature: %w", err)
	}
	rain, err := parseOptional(row[3])
	if err != nil {
		return DailySummary{}, fmt.Errorf("field rain: %w", err)
	}
	count, err := strconv.Atoi(row[4])
	if err != nil {
		return DailySummary{}, fmt.Errorf("field transactions: %w", err)
	}

	return DailySummary{
		Date:         date,
		Revenue:      revenue,
		Temperature:  temp,
		Rain:         rain,
		Transactions: count,
	}, nil
}

func writeCSV(path string, write func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// formatFloat uses the shortest representation that parses back exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func parseOptional(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
