package epidemic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every configuration error. Configuration is
// checked before a board exists, never mid-run.
var ErrInvalidConfig = errors.New("invalid configuration")

// Thresholds decide how a cell is classified.
type Thresholds struct {
	Infected  float64
	Recovered float64
}

// Config holds every tunable of a board. It is copied into the board at
// construction and never changes afterwards.
type Config struct {
	Size     int
	SubSteps int     // integration sub-steps per reported day
	Scale    float64 // global multiplier on both deltas

	Model             ModelKind
	Rates             Rates
	Saturation        float64
	VirusLoadCoupling bool // multiply antibody clearance by the virus load
	Kernel            Kernel

	ProbInfected float64
	VirusInit    float64
	Variation    float64 // log-space spread of per-cell rates; 0 disables sampling
	Fluctuation  float64 // log-space spread of per-update noise; 0 disables it

	Thresholds Thresholds

	Seed int64
}

// DefaultConfig returns the sub-stepped, heterogeneous board the project
// normally runs.
func DefaultConfig() Config {
	return Config{
		Size:     100,
		SubSteps: 10,
		Scale:    0.5,
		Model:    ModelSaturating,
		Rates: Rates{
			VirusSelf:     0.5,
			VirusAntibody: 2.0,
			AntibodyVirus: 1.0,
			AntibodyDecay: 0.03,
		},
		Saturation:        0.5,
		VirusLoadCoupling: true,
		Kernel:            MustKernel(kernelPresets["pca"]),
		ProbInfected:      0.001,
		VirusInit:         0.01,
		Variation:         0.25,
		Fluctuation:       0.25,
		Thresholds:        Thresholds{Infected: 0.1, Recovered: 0.5},
		Seed:              1337,
	}
}

// ClassicConfig returns the earlier homogeneous model: one update per day with
// a fixed 0.01 timestep, clearance independent of the virus load, and no
// per-cell or per-update noise.
func ClassicConfig() Config {
	return Config{
		Size:     20,
		SubSteps: 1,
		Scale:    0.01,
		Model:    ModelLinear,
		Rates: Rates{
			VirusSelf:     0.5,
			VirusAntibody: 4,
			AntibodyVirus: 2,
			AntibodyDecay: 0,
		},
		Kernel:       MustKernel(kernelPresets["classic"]),
		ProbInfected: 0.01,
		VirusInit:    0.5,
		Thresholds:   Thresholds{Infected: 0.5, Recovered: 0.5},
		Seed:         1337,
	}
}

// Preset returns a named configuration.
func Preset(name string) (Config, error) {
	switch strings.ToLower(name) {
	case "", "pca", "default":
		return DefaultConfig(), nil
	case "classic":
		return ClassicConfig(), nil
	}
	return Config{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
}

// Validate reports the first configuration error, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, c.Size)
	}
	if c.SubSteps < 1 {
		return fmt.Errorf("%w: sub_steps must be at least 1, got %d", ErrInvalidConfig, c.SubSteps)
	}
	if !c.Model.valid() {
		return fmt.Errorf("%w: unknown model %v", ErrInvalidConfig, c.Model)
	}
	if !c.Kernel.valid() {
		return fmt.Errorf("%w: kernel is missing or not odd-sized", ErrInvalidConfig)
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"scale", c.Scale},
		{"rate_vv", c.Rates.VirusSelf},
		{"rate_va", c.Rates.VirusAntibody},
		{"rate_av", c.Rates.AntibodyVirus},
		{"rate_decay", c.Rates.AntibodyDecay},
		{"saturation", c.Saturation},
		{"variation", c.Variation},
		{"fluctuation", c.Fluctuation},
	}
	for _, p := range nonNegative {
		if p.v < 0 || math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	unit := []struct {
		name string
		v    float64
	}{
		{"prob_infected", c.ProbInfected},
		{"virus_init", c.VirusInit},
		{"threshold_infected", c.Thresholds.Infected},
		{"threshold_recovered", c.Thresholds.Recovered},
	}
	for _, p := range unit {
		if !(p.v >= 0 && p.v <= 1) {
			return fmt.Errorf("%w: %s must lie in [0,1], got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	return nil
}

// keyAliases maps alternative parameter names onto their canonical key.
var keyAliases = map[string]string{
	"w":         "size",
	"precision": "sub_steps",
}

// FromMap builds a Config from flag-style key/value pairs. The "preset" key
// picks the starting point; every other key overrides one field. Unknown keys,
// unparsable values and a key given under two of its names are errors.
func FromMap(cfg map[string]string) (Config, error) {
	c, err := Preset(cfg["preset"])
	if err != nil {
		return Config{}, err
	}
	canonical := make(map[string]string, len(cfg))
	for key, raw := range cfg {
		name := key
		if alias, ok := keyAliases[key]; ok {
			name = alias
		}
		if _, dup := canonical[name]; dup {
			return Config{}, fmt.Errorf("%w: %q given more than once (aliases %v)", ErrInvalidConfig, name, aliasesOf(name))
		}
		canonical[name] = strings.TrimSpace(raw)
	}
	for key, raw := range canonical {
		if err := c.set(key, raw); err != nil {
			return Config{}, err
		}
	}
	return c, c.Validate()
}

func aliasesOf(name string) []string {
	names := []string{name}
	for alias, canon := range keyAliases {
		if canon == name {
			names = append(names, alias)
		}
	}
	return names
}

func (c *Config) set(key, raw string) error {
	var err error
	switch key {
	case "preset":
	case "size":
		c.Size, err = strconv.Atoi(raw)
	case "sub_steps":
		c.SubSteps, err = strconv.Atoi(raw)
	case "seed":
		c.Seed, err = strconv.ParseInt(raw, 10, 64)
	case "model":
		c.Model, err = ParseModelKind(raw)
	case "kernel":
		c.Kernel, err = ParseKernel(raw)
	case "coupling":
		c.VirusLoadCoupling, err = strconv.ParseBool(raw)
	default:
		field := c.floatField(key)
		if field == nil {
			return fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, key)
		}
		*field, err = strconv.ParseFloat(raw, 64)
	}
	if err != nil {
		if errors.Is(err, ErrInvalidConfig) {
			return err
		}
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, raw, err)
	}
	return nil
}

func (c *Config) floatField(key string) *float64 {
	switch key {
	case "scale":
		return &c.Scale
	case "rate_vv":
		return &c.Rates.VirusSelf
	case "rate_va":
		return &c.Rates.VirusAntibody
	case "rate_av":
		return &c.Rates.AntibodyVirus
	case "rate_decay":
		return &c.Rates.AntibodyDecay
	case "saturation":
		return &c.Saturation
	case "prob_infected":
		return &c.ProbInfected
	case "virus_init":
		return &c.VirusInit
	case "variation":
		return &c.Variation
	case "fluctuation":
		return &c.Fluctuation
	case "threshold_infected":
		return &c.Thresholds.Infected
	case "threshold_recovered":
		return &c.Thresholds.Recovered
	}
	return nil
}

// ParamKeys lists every key FromMap understands, in display order.
func ParamKeys() []string {
	return []string{
		"preset", "size", "sub_steps", "scale", "model",
		"rate_vv", "rate_va", "rate_av", "rate_decay", "saturation", "coupling",
		"kernel", "prob_infected", "virus_init", "variation", "fluctuation",
		"threshold_infected", "threshold_recovered", "seed",
	}
}
