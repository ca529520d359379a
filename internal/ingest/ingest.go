// Package ingest turns raw case records into the daily numeric series the
// simulation output is compared against.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
)

// DateLayout is the date format of the Date column.
const DateLayout = "2006-01-02"

// Column order of the case CSV.
const (
	colDisease = iota
	colDate
	colCity
	colTownship
	colGender
	colForeign
	colAge
	colCases
	numColumns
)

// Record is one row of the case CSV.
type Record struct {
	Disease  string
	Date     time.Time
	City     string
	Township string
	Gender   string
	Foreign  string
	Age      string
	Cases    float64
}

// ReadRecords parses a case CSV. The first row is a header and is skipped.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numColumns
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("ingest: header: %w", err)
	}
	var out []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: %w", err)
		}
		date, err := time.Parse(DateLayout, strings.TrimSpace(row[colDate]))
		if err != nil {
			return nil, fmt.Errorf("ingest: line %d: date: %w", line, err)
		}
		cases, err := strconv.ParseFloat(strings.TrimSpace(row[colCases]), 64)
		if err != nil {
			return nil, fmt.Errorf("ingest: line %d: cases: %w", line, err)
		}
		out = append(out, Record{
			Disease:  row[colDisease],
			Date:     date,
			City:     row[colCity],
			Township: row[colTownship],
			Gender:   row[colGender],
			Foreign:  row[colForeign],
			Age:      row[colAge],
			Cases:    cases,
		})
	}
}

// Filter selects records by inclusive date range and place. Zero values match
// everything.
type Filter struct {
	From, To time.Time
	City     string
	Township string
}

// Match reports whether rec passes the filter.
func (f Filter) Match(rec Record) bool {
	if !f.From.IsZero() && rec.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && rec.Date.After(f.To) {
		return false
	}
	if f.City != "" && rec.City != f.City {
		return false
	}
	if f.Township != "" && rec.Township != f.Township {
		return false
	}
	return true
}

// DailyCount is the summed case count of one date.
type DailyCount struct {
	Date  time.Time
	Cases float64
}

// DailyTotals sums the cases of matching records per date, sorted by date.
// Dates without records are absent, not zero.
func DailyTotals(records []Record, f Filter) []DailyCount {
	byDate := map[time.Time]float64{}
	for _, rec := range records {
		if f.Match(rec) {
			byDate[rec.Date] += rec.Cases
		}
	}
	out := make([]DailyCount, 0, len(byDate))
	for d, c := range byDate {
		out = append(out, DailyCount{Date: d, Cases: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Values extracts the case counts of a daily series.
func Values(days []DailyCount) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = d.Cases
	}
	return out
}

// MovingAverage replaces x[i] by the mean of x[i:i+window] for every i with
// i+window < len(x); the trailing values are kept as they are.
func MovingAverage(x []float64, window int) []float64 {
	out := append([]float64(nil), x...)
	if window <= 1 {
		return out
	}
	for i := 0; i+window < len(x); i++ {
		out[i] = floats.Sum(x[i:i+window]) / float64(window)
	}
	return out
}

// Window returns x[offset:offset+length].
func Window(x []float64, offset, length int) ([]float64, error) {
	if offset < 0 || length < 0 || offset+length > len(x) {
		return nil, fmt.Errorf("ingest: window [%d,%d) outside series of %d days", offset, offset+length, len(x))
	}
	return append([]float64(nil), x[offset:offset+length]...), nil
}

// WriteSeries writes x as a JSON list.
func WriteSeries(w io.Writer, x []float64) error {
	if err := json.NewEncoder(w).Encode(x); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	return nil
}

// ReadSeries reads a JSON list of numbers.
func ReadSeries(r io.Reader) ([]float64, error) {
	var x []float64
	if err := json.NewDecoder(r).Decode(&x); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return x, nil
}
