package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"pca-sim/internal/ingest"
	"pca-sim/internal/report"
)

func main() {
	in := flag.String("in", "", "case CSV to read")
	from := flag.String("from", "2022-01-01", "first date to keep (inclusive)")
	to := flag.String("to", "2023-12-31", "last date to keep (inclusive)")
	city := flag.String("city", "", "keep only this city")
	township := flag.String("township", "", "keep only this township")
	window := flag.Int("window", 7, "moving-average window in days (1 disables smoothing)")
	offset := flag.Int("offset", 0, "first day of the output window")
	length := flag.Int("length", 0, "days in the output window (0 keeps the rest of the series)")
	out := flag.String("out", "", "write the series as a JSON list (stdout when empty)")
	chartOut := flag.String("chart", "", "write the series as a PNG line chart")
	flag.Parse()

	if *in == "" {
		log.Fatal("missing -in")
	}

	filter := ingest.Filter{City: *city, Township: *township}
	var err error
	if filter.From, err = parseDate(*from); err != nil {
		log.Fatal(err)
	}
	if filter.To, err = parseDate(*to); err != nil {
		log.Fatal(err)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal(err)
	}
	records, err := ingest.ReadRecords(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	daily := ingest.DailyTotals(records, filter)
	series := ingest.MovingAverage(ingest.Values(daily), *window)
	n := *length
	if n == 0 {
		n = len(series) - *offset
	}
	series, err = ingest.Window(series, *offset, n)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stderr, "%d records, %d dates, %d days kept\n", len(records), len(daily), len(series))

	dst := os.Stdout
	if *out != "" {
		if dst, err = os.Create(*out); err != nil {
			log.Fatal(err)
		}
		defer dst.Close()
	}
	if err := ingest.WriteSeries(dst, series); err != nil {
		log.Fatal(err)
	}

	if *chartOut != "" {
		cf, err := os.Create(*chartOut)
		if err != nil {
			log.Fatal(err)
		}
		defer cf.Close()
		title := "Daily cases"
		if *township != "" {
			title += " (" + *township + ")"
		}
		if err := report.SeriesChart(cf, title, series); err != nil {
			log.Fatal(err)
		}
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(ingest.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	return t, nil
}
