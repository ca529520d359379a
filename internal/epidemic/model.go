package epidemic

import (
	"fmt"
	"strings"
)

// ModelKind selects the reaction formula governing antibody production. The
// zero value is invalid so an unset model fails validation.
type ModelKind uint8

const (
	// ModelLinear produces antibody linearly in the virus load.
	ModelLinear ModelKind = iota + 1
	// ModelSaturating produces antibody at a rate that levels off as the
	// virus load grows.
	ModelSaturating
)

// ParseModelKind maps a configuration string onto a ModelKind.
func ParseModelKind(s string) (ModelKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return ModelLinear, nil
	case "saturating", "saturation":
		return ModelSaturating, nil
	}
	return 0, fmt.Errorf("%w: unknown model %q", ErrInvalidConfig, s)
}

func (m ModelKind) String() string {
	switch m {
	case ModelLinear:
		return "linear"
	case ModelSaturating:
		return "saturating"
	}
	return fmt.Sprintf("ModelKind(%d)", uint8(m))
}

func (m ModelKind) valid() bool {
	return m == ModelLinear || m == ModelSaturating
}

// Rates are the four reaction coefficients of a cell.
type Rates struct {
	VirusSelf     float64 // virus growth per unit of exposure
	VirusAntibody float64 // virus clearance by antibody
	AntibodyVirus float64 // antibody production driven by virus
	AntibodyDecay float64
}

// Dynamics is the board-wide, read-only part of the reaction model. Cells
// receive a pointer to it on every update and never modify it.
type Dynamics struct {
	model      ModelKind
	rates      Rates
	saturation float64
	coupling   bool
	scale      float64
	subSteps   float64
}

// NewDynamics validates cfg and extracts the reaction parameters from it.
func NewDynamics(cfg Config) (*Dynamics, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Dynamics{
		model:      cfg.Model,
		rates:      cfg.Rates,
		saturation: cfg.Saturation,
		coupling:   cfg.VirusLoadCoupling,
		scale:      cfg.Scale,
		subSteps:   float64(cfg.SubSteps),
	}, nil
}

// virusDelta is identical for every model.
func (d *Dynamics) virusDelta(r *Rates, v, a, exposure float64) float64 {
	clearance := r.VirusAntibody * a
	if d.coupling {
		clearance *= v
	}
	return r.VirusSelf*exposure - clearance
}

func (d *Dynamics) antibodyDelta(r *Rates, v, a float64) float64 {
	var production float64
	switch d.model {
	case ModelLinear:
		production = r.AntibodyVirus * v
	case ModelSaturating:
		production = r.AntibodyVirus * v / (1 + d.saturation*v)
	default:
		// NewDynamics rejects unknown kinds; only a zero Dynamics reaches here.
		panic(fmt.Sprintf("epidemic: unhandled model %v", d.model))
	}
	return production - r.AntibodyDecay*a
}
