package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"pca-sim/internal/app"
	"pca-sim/internal/epidemic"
	"pca-sim/internal/logging"
	"pca-sim/internal/report"
	"pca-sim/internal/trace"
	rng "pca-sim/pkg/core"
)

// placement seeds one cell before the first day.
type placement struct {
	row, col int
	mode     epidemic.InitMode
}

type placements []placement

func (p *placements) String() string {
	parts := make([]string, len(*p))
	for i, pl := range *p {
		parts[i] = fmt.Sprintf("%d,%d:%s", pl.row, pl.col, pl.mode)
	}
	return strings.Join(parts, " ")
}

// Set parses "row,col" or "row,col:mode".
func (p *placements) Set(value string) error {
	coords, modeText, hasMode := strings.Cut(value, ":")
	mode := epidemic.InitInfected
	if hasMode {
		m, err := epidemic.ParseInitMode(modeText)
		if err != nil {
			return err
		}
		mode = m
	}
	rowText, colText, ok := strings.Cut(coords, ",")
	if !ok {
		return fmt.Errorf("expected row,col[:mode], got %q", value)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowText))
	if err != nil {
		return fmt.Errorf("row: %w", err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colText))
	if err != nil {
		return fmt.Errorf("col: %w", err)
	}
	*p = append(*p, placement{row: row, col: col, mode: mode})
	return nil
}

func main() {
	overrides := app.Overrides{}
	var cells placements
	preset := flag.String("preset", "pca", "base configuration (pca or classic)")
	days := flag.Int("days", 100, "days to simulate per run")
	reportEvery := flag.Int("report", 10, "log the population every N days (0 disables)")
	runs := flag.Int("runs", 1, "independent runs; more than one produces an ensemble")
	seed := flag.Int64("seed", 0, "random seed (0 keeps the configured seed)")
	clockSeed := flag.Bool("random-seed", false, "seed from the wall clock")
	showParams := flag.Bool("params", false, "print the resolved parameters and exit")
	traceOut := flag.String("trace", "", "write the full virus/antibody trace as JSON")
	chartOut := flag.String("chart", "", "write the population (or ensemble) chart as PNG")
	heatOut := flag.String("heatmap", "", "write the final-day heat map as PNG")
	videoOut := flag.String("video", "", "write a heat-map animation of the trace as AVI")
	fps := flag.Int("fps", 8, "animation frames per second")
	replay := flag.String("replay", "", "render -heatmap/-video from a saved trace instead of simulating")
	flag.Var(overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Var(&cells, "place", "seed a cell as row,col[:infected|recovered] (repeatable)")
	flag.Parse()

	logger := logging.NewFromEnv()

	if *replay != "" {
		if err := renderTrace(*replay, *heatOut, *videoOut, *fps); err != nil {
			log.Fatal(err)
		}
		return
	}

	overrides["preset"] = *preset
	cfg, err := epidemic.FromMap(overrides)
	if err != nil {
		log.Fatal(err)
	}
	switch {
	case *clockSeed:
		cfg.Seed = time.Now().UnixNano()
	case *seed != 0:
		cfg.Seed = *seed
	}

	if *showParams {
		if _, err := cfg.Parameters().WriteTo(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	board, err := epidemic.NewBoard(cfg, rng.NewRNG(cfg.Seed))
	if err != nil {
		log.Fatal(err)
	}
	for _, pl := range cells {
		if err := board.Place(pl.row, pl.col, pl.mode); err != nil {
			log.Fatal(err)
		}
	}

	wantTrace := *traceOut != "" || *videoOut != ""
	runner := epidemic.NewRunner(board, epidemic.RunOptions{FullTrace: wantTrace, Logger: logger})
	logger.Info(ctx, "starting",
		logging.String("model", cfg.Model.String()),
		logging.Int("size", cfg.Size),
		logging.Int("days", *days),
		logging.Int("runs", *runs),
		logging.Any("seed", cfg.Seed),
	)

	start := time.Now()
	if *runs > 1 {
		if len(cells) > 0 {
			logger.Warn(ctx, "placements are discarded by ensemble resets")
		}
		ens, err := runner.RunMultiple(ctx, *days, *runs)
		if err != nil {
			log.Fatal(err)
		}
		printSummary(ens)
		if *chartOut != "" {
			writeFile(*chartOut, func(f *os.File) error { return report.EnsembleChart(f, ens) })
		}
		logger.Info(ctx, "finished", logging.Any("elapsed", time.Since(start)))
		return
	}

	res, err := runner.Run(ctx, *days, *reportEvery)
	if err != nil {
		log.Fatal(err)
	}
	if n := len(res.Counts); n > 0 {
		fmt.Printf("Final day %d: %s\n", n-1, res.Counts[n-1])
	}
	if *traceOut != "" {
		if err := trace.Save(*traceOut, res.Trace); err != nil {
			log.Fatal(err)
		}
	}
	if *chartOut != "" {
		writeFile(*chartOut, func(f *os.File) error { return report.PopulationChart(f, res) })
	}
	if *heatOut != "" {
		caption := fmt.Sprintf("day %d", board.Day())
		writeFile(*heatOut, func(f *os.File) error {
			return report.HeatmapPNG(f, board.VirusGrid(), board.AntibodyGrid(), caption, report.DefaultFrameOptions())
		})
	}
	if *videoOut != "" {
		opts := report.DefaultFrameOptions()
		opts.FPS = *fps
		if err := report.Animation(*videoOut, res.Trace, opts); err != nil {
			log.Fatal(err)
		}
	}
	logger.Info(ctx, "finished", logging.Any("elapsed", time.Since(start)))
}

func renderTrace(path, heatOut, videoOut string, fps int) error {
	tr, err := trace.Load(path)
	if err != nil {
		return err
	}
	opts := report.DefaultFrameOptions()
	opts.FPS = fps
	if heatOut != "" && tr.Days() > 0 {
		last := tr.Days() - 1
		caption := fmt.Sprintf("day %d", last)
		writeFile(heatOut, func(f *os.File) error {
			return report.HeatmapPNG(f, tr.Virus[last], tr.Antibody[last], caption, opts)
		})
	}
	if videoOut != "" {
		return report.Animation(videoOut, tr, opts)
	}
	return nil
}

func printSummary(ens *epidemic.Ensemble) {
	summary := ens.Summary()
	inf := summary[epidemic.Infected]
	peakDays, peakCounts := ens.PeakInfected()
	for i := range peakDays {
		fmt.Printf("Run %d: peak infected %d on day %d\n", i+1, peakCounts[i], peakDays[i])
	}
	if last := ens.Days - 1; last >= 0 {
		fmt.Printf("Final day infected: %.1f ± %.1f\n", inf.Mean[last], inf.StdDev[last])
	}
}

func writeFile(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	if err := write(f); err != nil {
		f.Close()
		log.Fatalf("%s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}
