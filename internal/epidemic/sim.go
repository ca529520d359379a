package epidemic

import (
	"pca-sim/internal/core"
	rng "pca-sim/pkg/core"
)

// Sim adapts a Board to the viewer's core.Sim contract. Cells reports one
// category index per cell.
type Sim struct {
	cfg     Config
	board   *Board
	display []uint8

	virus, antibody []float64
}

// NewSim builds a board seeded from cfg.Seed.
func NewSim(cfg Config) (*Sim, error) {
	board, err := NewBoard(cfg, rng.NewRNG(cfg.Seed))
	if err != nil {
		return nil, err
	}
	n := cfg.Size * cfg.Size
	s := &Sim{
		cfg:      cfg,
		board:    board,
		display:  make([]uint8, n),
		virus:    make([]float64, n),
		antibody: make([]float64, n),
	}
	s.refresh()
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "pca" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Size, H: s.cfg.Size} }

// Cells exposes the category of every cell.
func (s *Sim) Cells() []uint8 { return s.display }

// VirusField returns the virus load of every cell, row-major.
func (s *Sim) VirusField() []float64 { return s.virus }

// AntibodyField returns the antibody load of every cell, row-major.
func (s *Sim) AntibodyField() []float64 { return s.antibody }

// Board exposes the underlying board.
func (s *Sim) Board() *Board { return s.board }

// Reset rebuilds the board from a new stream. A zero seed reuses cfg.Seed.
func (s *Sim) Reset(seed int64) error {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	board, err := NewBoard(s.cfg, rng.NewRNG(seed))
	if err != nil {
		return err
	}
	s.cfg.Seed = seed
	s.board = board
	s.refresh()
	return nil
}

// Step advances one day.
func (s *Sim) Step() {
	s.board.Step()
	s.refresh()
}

func (s *Sim) refresh() {
	n := s.board.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			i := r*n + c
			cell := s.board.Cell(r, c)
			s.display[i] = uint8(s.board.Classify(r, c))
			s.virus[i] = cell.Virus
			s.antibody[i] = cell.Antibody
		}
	}
}

func init() {
	core.Register("pca", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewSim(c)
	})
}
