package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"sync"
	"time"

	"pca-sim/internal/epidemic"
	"pca-sim/internal/logging"
	rng "pca-sim/pkg/core"

	"gonum.org/v1/gonum/stat"
)

type paramSet struct {
	index      int
	virusSelf  float64
	virusAnti  float64
	antiVirus  float64
	antiDecay  float64
	saturation float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("rate_vv=%.2f rate_va=%.2f rate_av=%.2f rate_decay=%.3f saturation=%.2f",
		p.virusSelf, p.virusAnti, p.antiVirus, p.antiDecay, p.saturation)
}

type scenarioResult struct {
	params      paramSet
	peakMean    float64
	peakDayMean float64
	attackRate  float64 // mean fraction of cells recovered on the final day
	err         error
}

func main() {
	preset := flag.String("preset", "pca", "base configuration")
	days := flag.Int("days", 100, "days to simulate per run")
	runs := flag.Int("runs", 3, "independent runs per scenario")
	size := flag.Int("size", 60, "board size override (0 keeps the preset)")
	seed := flag.Int64("seed", 1337, "base seed; scenario i uses seed+i")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "results to print")
	flag.Parse()

	if err := checkFlags(*workers, *runs, *days); err != nil {
		log.Fatal(err)
	}

	logger := logging.NewFromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base, err := epidemic.Preset(*preset)
	if err != nil {
		log.Fatal(err)
	}
	if *size > 0 {
		base.Size = *size
	}
	if err := base.Validate(); err != nil {
		log.Fatal(err)
	}

	selfOptions := []float64{0.3, 0.5, 0.8}
	antiOptions := []float64{1.0, 2.0, 4.0}
	responseOptions := []float64{0.5, 1.0, 2.0}
	decayOptions := []float64{0.0, 0.03, 0.1}
	saturationOptions := []float64{0.25, 0.5, 1.0}

	var sets []paramSet
	for _, vv := range selfOptions {
		for _, va := range antiOptions {
			for _, av := range responseOptions {
				for _, decay := range decayOptions {
					for _, sat := range saturationOptions {
						sets = append(sets, paramSet{
							index:      len(sets),
							virusSelf:  vv,
							virusAnti:  va,
							antiVirus:  av,
							antiDecay:  decay,
							saturation: sat,
						})
					}
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d runs x %d days)\n", len(sets), *workers, *runs, *days)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(ctx, base, params, *seed, *days, *runs)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, params := range sets {
			select {
			case jobs <- params:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			logger.Warn(ctx, "scenario failed", logging.String("params", res.params.String()), logging.Err(res.err))
			continue
		}
		all = append(all, res)
		if len(all)%25 == 0 {
			logger.Info(ctx, "progress", logging.Int("done", len(all)), logging.Int("total", len(sets)))
		}
	}
	if err := ctx.Err(); err != nil {
		log.Fatal(err)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].peakMean != all[j].peakMean {
			return all[i].peakMean > all[j].peakMean
		}
		return all[i].params.index < all[j].params.index
	})
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d by peak infected (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) peak=%.1f day=%.1f attack=%.3f %s\n",
			i+1, res.peakMean, res.peakDayMean, res.attackRate, res.params)
	}
}

// checkFlags rejects settings that would leave the pool without workers or
// the scenarios without runs.
func checkFlags(workers, runs, days int) error {
	if workers < 1 {
		return fmt.Errorf("-workers must be at least 1, got %d", workers)
	}
	if runs < 1 {
		return fmt.Errorf("-runs must be at least 1, got %d", runs)
	}
	if days < 0 {
		return fmt.Errorf("-days must be non-negative, got %d", days)
	}
	return nil
}

func runScenario(ctx context.Context, base epidemic.Config, params paramSet, seed int64, days, runs int) scenarioResult {
	cfg := base
	cfg.Rates = epidemic.Rates{
		VirusSelf:     params.virusSelf,
		VirusAntibody: params.virusAnti,
		AntibodyVirus: params.antiVirus,
		AntibodyDecay: params.antiDecay,
	}
	cfg.Saturation = params.saturation
	cfg.Seed = seed + int64(params.index)

	res := scenarioResult{params: params}
	board, err := epidemic.NewBoard(cfg, rng.NewRNG(cfg.Seed))
	if err != nil {
		res.err = err
		return res
	}
	ens, err := epidemic.NewRunner(board, epidemic.RunOptions{}).RunMultiple(ctx, days, runs)
	if err != nil {
		res.err = err
		return res
	}

	peakDays, peakCounts := ens.PeakInfected()
	res.peakMean = stat.Mean(toFloats(peakCounts), nil)
	res.peakDayMean = stat.Mean(toFloats(peakDays), nil)
	if days > 0 {
		recovered := ens.Summary()[epidemic.Recovered].Mean[days-1]
		res.attackRate = recovered / float64(cfg.Size*cfg.Size)
	}
	return res
}

func toFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
