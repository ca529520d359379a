package epidemic

import (
	"errors"
	"fmt"
	"math"

	"pca-sim/internal/core"
	rng "pca-sim/pkg/core"
)

// Board owns a size×size grid of cells and advances it one day at a time.
// Every random draw comes from the RNG handed to NewBoard, in row-major cell
// order, then sub-step order, then day order.
type Board struct {
	cfg Config
	dyn *Dynamics
	rng *rng.RNG

	n        int
	cells    []Cell
	virus    *core.Grid
	exposure *core.Grid
	day      int
}

// NewBoard validates cfg and seeds every cell in random mode.
func NewBoard(cfg Config, r *rng.RNG) (*Board, error) {
	if r == nil {
		return nil, errors.New("epidemic: NewBoard requires an RNG")
	}
	dyn, err := NewDynamics(cfg)
	if err != nil {
		return nil, err
	}
	b := &Board{
		cfg:      cfg,
		dyn:      dyn,
		rng:      r,
		n:        cfg.Size,
		cells:    make([]Cell, cfg.Size*cfg.Size),
		virus:    core.NewGrid(cfg.Size),
		exposure: core.NewGrid(cfg.Size),
	}
	if err := b.Reset(); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset re-creates every cell from the shared stream: per cell, rates are
// sampled first (when Variation > 0), then the infection draw.
func (b *Board) Reset() error {
	b.day = 0
	for i := range b.cells {
		var c Cell
		if b.cfg.Variation > 0 {
			rates, err := b.sampleRates()
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", i/b.n, i%b.n, err)
			}
			c.Rates = rates
		}
		b.cells[i] = b.seed(c, InitRandom)
	}
	return nil
}

func (b *Board) sampleRates() (*Rates, error) {
	g := b.cfg.Rates
	sigma := b.cfg.Variation
	r := &Rates{
		VirusSelf:     g.VirusSelf * b.rng.LogNormal(0, sigma),
		VirusAntibody: g.VirusAntibody * b.rng.LogNormal(0, sigma),
		AntibodyVirus: g.AntibodyVirus * b.rng.LogNormal(0, sigma),
		AntibodyDecay: g.AntibodyDecay * b.rng.LogNormal(0, sigma),
	}
	for _, v := range [...]float64{r.VirusSelf, r.VirusAntibody, r.AntibodyVirus, r.AntibodyDecay} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: sampled rate is not finite (variation %v)", ErrInvalidConfig, sigma)
		}
	}
	return r, nil
}

// seed sets the loads of c according to mode, keeping its rates.
func (b *Board) seed(c Cell, mode InitMode) Cell {
	switch mode {
	case InitInfected:
		c.Virus, c.Antibody = b.cfg.VirusInit, 0
	case InitRecovered:
		c.Virus, c.Antibody = 0, 1
	default:
		c.Virus, c.Antibody = 0, 0
		if b.rng.Float64() < b.cfg.ProbInfected {
			c.Virus = b.cfg.VirusInit
		}
	}
	return c
}

// Place re-seeds the cell at (row, col) with the given mode. InitRandom
// consumes one draw from the stream; the other modes are deterministic.
func (b *Board) Place(row, col int, mode InitMode) error {
	if row < 0 || row >= b.n || col < 0 || col >= b.n {
		return fmt.Errorf("epidemic: cell (%d,%d) outside %dx%d board", row, col, b.n, b.n)
	}
	if mode > InitRecovered {
		return fmt.Errorf("epidemic: unknown init mode %v", mode)
	}
	idx := row*b.n + col
	b.cells[idx] = b.seed(b.cells[idx], mode)
	return nil
}

// Step advances the board by one reported day.
func (b *Board) Step() {
	for s := 0; s < b.cfg.SubSteps; s++ {
		b.subStep()
	}
	b.day++
}

// subStep is one synchronous update: the exposure grid is computed in full
// from the current virus loads before any cell changes.
func (b *Board) subStep() {
	snapshot := b.virus.Values()
	for i := range b.cells {
		snapshot[i] = b.cells[i].Virus
	}
	b.cfg.Kernel.Apply(b.exposure, b.virus)

	exposure := b.exposure.Values()
	for i := range b.cells {
		fluct := b.rng.LogNormal(0, b.cfg.Fluctuation)
		b.cells[i] = b.cells[i].Next(b.dyn, exposure[i], fluct)
	}
}

// Count classifies every cell.
func (b *Board) Count() PopulationCount {
	var p PopulationCount
	for _, c := range b.cells {
		p.add(b.cfg.Thresholds.Classify(c))
	}
	return p
}

// Classify returns the category of the cell at (row, col).
func (b *Board) Classify(row, col int) Category {
	return b.cfg.Thresholds.Classify(b.cells[row*b.n+col])
}

// Cell returns a copy of the cell at (row, col).
func (b *Board) Cell(row, col int) Cell { return b.cells[row*b.n+col] }

// Size is the board's edge length.
func (b *Board) Size() int { return b.n }

// Day is the number of days stepped since the last reset.
func (b *Board) Day() int { return b.day }

// Config returns the configuration the board was built with.
func (b *Board) Config() Config { return b.cfg }

// VirusGrid copies the current virus loads as [row][col].
func (b *Board) VirusGrid() [][]float64 {
	return b.layer(func(c Cell) float64 { return c.Virus })
}

// AntibodyGrid copies the current antibody loads as [row][col].
func (b *Board) AntibodyGrid() [][]float64 {
	return b.layer(func(c Cell) float64 { return c.Antibody })
}

func (b *Board) layer(pick func(Cell) float64) [][]float64 {
	out := make([][]float64, b.n)
	for r := range out {
		row := make([]float64, b.n)
		for c := range row {
			row[c] = pick(b.cells[r*b.n+c])
		}
		out[r] = row
	}
	return out
}
