package app

import (
	"flag"
	"fmt"
	"strings"
)

// Overrides collects repeatable key=value flags into the map the sim
// factories accept.
type Overrides map[string]string

func (o Overrides) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (o Overrides) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	o[strings.TrimSpace(key)] = strings.TrimSpace(val)
	return nil
}

// Config represents the command-line parameters of the viewer.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	DPS   float64
	Seed  int64
	Set   Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "pca", Scale: 6, TPS: 60, DPS: 4, Set: Overrides{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Float64Var(&c.DPS, "dps", c.DPS, "simulated days per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 keeps the configured seed)")
	fs.Var(c.Set, "set", "parameter override in key=value form (repeatable)")
}
