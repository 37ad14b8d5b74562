package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// LOADER — Pipe-delimited transaction file → []Transaction
// ============================================================================
// Pipeline: read header → map column names to indices → row loop with
// filter, parse, derive. Any malformed value aborts the whole load with an
// error naming the file, field, and line — there is no row-level recovery.
// ============================================================================

// requiredColumns are the header names the transaction file must carry.
// Extra columns are silently ignored.
var requiredColumns = []string{
	"transaction_id",
	"store_location",
	"transaction_date",
	"transaction_time",
	"transaction_qty",
	"unit_price",
	"product_category",
	"product_detail",
}

// dateLayouts are tried in order when parsing transaction_date. The source
// data ships both ISO and US-style dates depending on export.
var dateLayouts = []string{"2006-01-02", "1/2/2006", "01/02/2006"}

const timeLayout = "15:04:05"

// LoadTransactions reads a pipe-separated sales file and returns the rows
// for a single store location, order-preserving, with Date, Hour, and
// Revenue derived. Rows for other locations are dropped, not errored.
func LoadTransactions(path, storeLocation string) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transaction file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '|'

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	cols, err := mapColumns(path, headers)
	if err != nil {
		return nil, err
	}

	var txns []Transaction
	line := 1 // header was line 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		if strings.TrimSpace(row[cols["store_location"]]) != storeLocation {
			continue
		}

		txn, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		txns = append(txns, txn)
	}

	return txns, nil
}

// mapColumns builds a header-name → index map and verifies every required
// column is present.
func mapColumns(path string, headers []string) (map[string]int, error) {
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range requiredColumns {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, want)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (Transaction, error) {
	field := func(name string) string {
		return strings.TrimSpace(row[cols[name]])
	}

	date, err := parseDate(field("transaction_date"))
	if err != nil {
		return Transaction{}, fmt.Errorf("field transaction_date: %w", err)
	}

	clock, err := time.Parse(timeLayout, field("transaction_time"))
	if err != nil {
		return Transaction{}, fmt.Errorf("field transaction_time: %w", err)
	}

	qty, err := strconv.Atoi(field("transaction_qty"))
	if err != nil {
		return Transaction{}, fmt.Errorf("field transaction_qty: %w", err)
	}

	price, err := strconv.ParseFloat(field("unit_price"), 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("field unit_price: %w", err)
	}

	return Transaction{
		ID:            field("transaction_id"),
		StoreLocation: field("store_location"),
		Date:          date,
		Hour:          clock.Hour(),
		Qty:           qty,
		UnitPrice:     price,
		Category:      field("product_category"),
		Detail:        field("product_detail"),
		Revenue:       float64(qty) * price,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
