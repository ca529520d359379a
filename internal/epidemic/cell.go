package epidemic

import (
	"fmt"
	"strings"
)

// InitMode decides how a cell is seeded at board construction or reset.
type InitMode uint8

const (
	// InitRandom infects the cell with probability ProbInfected.
	InitRandom InitMode = iota
	// InitInfected starts the cell at VirusInit with no antibody.
	InitInfected
	// InitRecovered starts the cell with full antibody and no virus.
	InitRecovered
)

func (m InitMode) String() string {
	switch m {
	case InitRandom:
		return "random"
	case InitInfected:
		return "infected"
	case InitRecovered:
		return "recovered"
	}
	return fmt.Sprintf("InitMode(%d)", uint8(m))
}

// ParseInitMode parses the lowercase name of an init mode.
func ParseInitMode(s string) (InitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return InitRandom, nil
	case "infected":
		return InitInfected, nil
	case "recovered":
		return InitRecovered, nil
	}
	return 0, fmt.Errorf("epidemic: unknown init mode %q", s)
}

// Cell is one grid site. Rates is nil when the cell uses the board's shared
// rates and points at the cell's own sampled copy otherwise.
type Cell struct {
	Virus    float64
	Antibody float64
	Rates    *Rates
}

// Next returns the cell after one forward-Euler sub-step. Both deltas are
// computed from the current loads; fluct scales them together.
func (c Cell) Next(d *Dynamics, exposure, fluct float64) Cell {
	r := &d.rates
	if c.Rates != nil {
		r = c.Rates
	}
	k := fluct * d.scale / d.subSteps
	dv := k * d.virusDelta(r, c.Virus, c.Antibody, exposure)
	da := k * d.antibodyDelta(r, c.Virus, c.Antibody)
	c.Virus = clamp01(c.Virus + dv)
	c.Antibody = clamp01(c.Antibody + da)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
