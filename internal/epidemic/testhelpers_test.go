package epidemic

import (
	"testing"

	rng "pca-sim/pkg/core"
)

// deterministicConfig is a board with no stochastic draws after seeding.
func deterministicConfig(size int, kernel string) Config {
	k, err := ParseKernel(kernel)
	if err != nil {
		panic(err)
	}
	return Config{
		Size:              size,
		SubSteps:          1,
		Scale:             1,
		Model:             ModelLinear,
		Rates:             Rates{VirusSelf: 0.5, VirusAntibody: 4, AntibodyVirus: 2},
		VirusLoadCoupling: true,
		Kernel:            k,
		VirusInit:         0.5,
		Thresholds:        Thresholds{Infected: 0.1, Recovered: 0.5},
	}
}

func mustBoard(t *testing.T, cfg Config, seed int64) *Board {
	t.Helper()
	b, err := NewBoard(cfg, rng.NewRNG(seed))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}
