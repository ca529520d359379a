package epidemic

import (
	"context"
	"fmt"

	"pca-sim/internal/logging"
)

// Trace is the full spatial history of a run, indexed [day][row][col].
type Trace struct {
	Virus    [][][]float64 `json:"virus"`
	Antibody [][][]float64 `json:"antibody"`
}

// Days returns the number of recorded days.
func (t *Trace) Days() int {
	if t == nil {
		return 0
	}
	return len(t.Virus)
}

// Result holds the output of a single run.
type Result struct {
	Counts []PopulationCount
	Trace  *Trace // nil unless the runner records full traces
}

// Susceptible returns the daily susceptible counts as floats for plotting.
func (r *Result) Susceptible() []float64 { return r.series(Susceptible) }

// Infected returns the daily infected counts as floats for plotting.
func (r *Result) Infected() []float64 { return r.series(Infected) }

// Recovered returns the daily recovered counts as floats for plotting.
func (r *Result) Recovered() []float64 { return r.series(Recovered) }

func (r *Result) series(c Category) []float64 {
	out := make([]float64, len(r.Counts))
	for d, p := range r.Counts {
		out[d] = float64(p.Get(c))
	}
	return out
}

// RunOptions configures a Runner.
type RunOptions struct {
	// FullTrace records the virus and antibody grids after every day.
	FullTrace bool
	Logger    logging.Logger
}

// Runner drives a board over many days and many independent runs.
type Runner struct {
	board *Board
	trace bool
	log   logging.Logger
}

// NewRunner wraps board.
func NewRunner(board *Board, opts RunOptions) *Runner {
	log := opts.Logger
	if log == nil {
		log = logging.Noop()
	}
	return &Runner{board: board, trace: opts.FullTrace, log: log}
}

// Board returns the board being driven.
func (r *Runner) Board() *Board { return r.board }

// Run advances the board numDays days from its current state. A progress line
// is logged on every day index divisible by reportEvery; 0 disables them.
// Cancelling ctx abandons the run between days.
func (r *Runner) Run(ctx context.Context, numDays, reportEvery int) (*Result, error) {
	return r.run(ctx, numDays, reportEvery, r.trace)
}

func (r *Runner) run(ctx context.Context, numDays, reportEvery int, trace bool) (*Result, error) {
	if numDays < 0 {
		return nil, fmt.Errorf("epidemic: numDays must be non-negative, got %d", numDays)
	}
	res := &Result{Counts: make([]PopulationCount, 0, numDays)}
	if trace {
		res.Trace = &Trace{
			Virus:    make([][][]float64, 0, numDays),
			Antibody: make([][][]float64, 0, numDays),
		}
	}
	for d := 0; d < numDays; d++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.board.Step()
		count := r.board.Count()
		res.Counts = append(res.Counts, count)
		if reportEvery > 0 && d%reportEvery == 0 {
			r.log.Info(ctx, "population",
				logging.Int("day", d),
				logging.Int("susceptible", count.Susceptible),
				logging.Int("infected", count.Infected),
				logging.Int("recovered", count.Recovered),
			)
		}
		if trace {
			res.Trace.Virus = append(res.Trace.Virus, r.board.VirusGrid())
			res.Trace.Antibody = append(res.Trace.Antibody, r.board.AntibodyGrid())
		}
	}
	return res, nil
}

// RunMultiple performs numRuns independent runs of numDays days. The board is
// reset before every run, so each run starts from a fresh random state drawn
// from the shared stream. Full traces are not recorded.
func (r *Runner) RunMultiple(ctx context.Context, numDays, numRuns int) (*Ensemble, error) {
	if numRuns < 1 {
		return nil, fmt.Errorf("epidemic: numRuns must be at least 1, got %d", numRuns)
	}
	ens := &Ensemble{Days: numDays, Runs: make([][]PopulationCount, 0, numRuns)}
	for i := 0; i < numRuns; i++ {
		if err := r.board.Reset(); err != nil {
			return nil, err
		}
		res, err := r.run(ctx, numDays, 0, false)
		if err != nil {
			return nil, err
		}
		ens.Runs = append(ens.Runs, res.Counts)
		r.log.Info(ctx, "run complete", logging.Int("run", i+1), logging.Int("runs", numRuns))
	}
	return ens, nil
}
