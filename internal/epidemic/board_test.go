package epidemic

import (
	"context"
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"

	rng "pca-sim/pkg/core"
)

func TestIdentityKernelSingleInfectedCell(t *testing.T) {
	b := mustBoard(t, deterministicConfig(3, "identity"), 1)
	if err := b.Place(1, 1, InitInfected); err != nil {
		t.Fatal(err)
	}

	b.Step()
	centre := b.Cell(1, 1)
	if centre.Virus != 0.75 || centre.Antibody != 1 {
		t.Fatalf("after day 1 expected virus 0.75 antibody 1, got %+v", centre)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if r == 1 && c == 1 {
				continue
			}
			if got := b.Cell(r, c); got.Virus != 0 || got.Antibody != 0 {
				t.Fatalf("cell (%d,%d) should stay clean without off-centre weights, got %+v", r, c, got)
			}
		}
	}
	if got := b.Count(); got != (PopulationCount{Susceptible: 8, Infected: 1}) {
		t.Fatalf("unexpected day 1 count %v", got)
	}

	b.Step()
	if got := b.Cell(1, 1); got.Virus != 0 || got.Antibody != 1 {
		t.Fatalf("antibody should clear the virus on day 2, got %+v", got)
	}
	if got := b.Count(); got != (PopulationCount{Susceptible: 8, Recovered: 1}) {
		t.Fatalf("unexpected day 2 count %v", got)
	}
	if b.Day() != 2 {
		t.Fatalf("expected day 2, got %d", b.Day())
	}
}

func TestSubStepUsesPreviousSnapshot(t *testing.T) {
	// Exposure of each cell is its left neighbour's virus load, which a
	// row-major sweep would already have overwritten.
	cfg := deterministicConfig(3, "0,0,0;0,0,1;0,0,0")
	cfg.Rates = Rates{VirusSelf: 1}
	b := mustBoard(t, cfg, 1)
	if err := b.Place(0, 0, InitInfected); err != nil {
		t.Fatal(err)
	}
	if err := b.Place(0, 1, InitInfected); err != nil {
		t.Fatal(err)
	}

	b.Step()

	want := []float64{0.5, 1, 0.5}
	for c, w := range want {
		if got := b.Cell(0, c).Virus; got != w {
			t.Fatalf("cell (0,%d) virus = %v, want %v (updates must be simultaneous)", c, got, w)
		}
	}
	for c := 0; c < 3; c++ {
		if got := b.Cell(1, c).Virus; got != 0 {
			t.Fatalf("row 1 must not receive exposure from row 0, got %v at col %d", got, c)
		}
	}
}

func TestInitModes(t *testing.T) {
	cfg := deterministicConfig(2, "identity")
	cfg.VirusInit = 0.3
	b := mustBoard(t, cfg, 1)

	if err := b.Place(0, 0, InitInfected); err != nil {
		t.Fatal(err)
	}
	if err := b.Place(1, 1, InitRecovered); err != nil {
		t.Fatal(err)
	}
	if got := b.Cell(0, 0); got.Virus != 0.3 || got.Antibody != 0 {
		t.Fatalf("infected cell = %+v", got)
	}
	if got := b.Cell(1, 1); got.Virus != 0 || got.Antibody != 1 {
		t.Fatalf("recovered cell = %+v", got)
	}
	if err := b.Place(2, 0, InitInfected); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if err := b.Place(0, 0, InitMode(9)); err == nil {
		t.Fatal("expected unknown mode error")
	}
}

func TestRandomSeedingProbabilityBounds(t *testing.T) {
	cfg := deterministicConfig(10, "identity")
	cfg.ProbInfected = 1
	b := mustBoard(t, cfg, 4)
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			if got := b.Cell(r, c); got.Virus != cfg.VirusInit || got.Antibody != 0 {
				t.Fatalf("prob 1 should infect every cell, got %+v", got)
			}
		}
	}
}

func TestLoadsStayInUnitInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 16
	cfg.ProbInfected = 0.2
	cfg.VirusInit = 0.9
	cfg.Rates = Rates{VirusSelf: 5, VirusAntibody: 10, AntibodyVirus: 8, AntibodyDecay: 1}
	cfg.Fluctuation = 1
	b := mustBoard(t, cfg, 99)

	res, err := NewRunner(b, RunOptions{FullTrace: true}).Run(context.Background(), 25, 0)
	if err != nil {
		t.Fatal(err)
	}
	for d := range res.Counts {
		if got := res.Counts[d].Total(); got != cfg.Size*cfg.Size {
			t.Fatalf("day %d counts sum to %d", d, got)
		}
		for r := 0; r < cfg.Size; r++ {
			for c := 0; c < cfg.Size; c++ {
				v, a := res.Trace.Virus[d][r][c], res.Trace.Antibody[d][r][c]
				if v < 0 || v > 1 || a < 0 || a > 1 {
					t.Fatalf("day %d cell (%d,%d) out of range: virus %v antibody %v", d, r, c, v, a)
				}
			}
		}
	}
}

func TestNoSpontaneousInfection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 12
	cfg.ProbInfected = 0
	b := mustBoard(t, cfg, 5)
	for d := 0; d < 20; d++ {
		b.Step()
		for r := 0; r < cfg.Size; r++ {
			for c := 0; c < cfg.Size; c++ {
				if got := b.Cell(r, c); got.Virus != 0 || got.Antibody != 0 {
					t.Fatalf("day %d cell (%d,%d) = %+v, want untouched", d, r, c, got)
				}
			}
		}
	}
}

func TestSameSeedSameRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 20
	cfg.ProbInfected = 0.05
	cfg.VirusInit = 0.3

	run := func() *Result {
		b := mustBoard(t, cfg, 2024)
		res, err := NewRunner(b, RunOptions{FullTrace: true}).Run(context.Background(), 15, 0)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	a, b := run(), run()
	if !slices.Equal(a.Counts, b.Counts) {
		t.Fatal("identical seeds produced different population series")
	}
	if !reflect.DeepEqual(a.Trace, b.Trace) {
		t.Fatal("identical seeds produced different traces")
	}

	first := mustBoard(t, cfg, 2024).Cell(0, 0).Rates
	second := mustBoard(t, cfg, 2025).Cell(0, 0).Rates
	if reflect.DeepEqual(first, second) {
		t.Fatal("different seeds should sample different per-cell rates")
	}
}

func TestStreamConsumptionWithoutNoise(t *testing.T) {
	cfg := deterministicConfig(4, "pca")
	cfg.ProbInfected = 0.5

	board := rng.NewRNG(8)
	if _, err := NewBoard(cfg, board); err != nil {
		t.Fatal(err)
	}
	ref := rng.NewRNG(8)
	for i := 0; i < cfg.Size*cfg.Size; i++ {
		ref.Float64()
	}
	if board.Float64() != ref.Float64() {
		t.Fatal("seeding without variation should consume exactly one draw per cell")
	}
}

func TestPerCellRatesSampled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 5
	b := mustBoard(t, cfg, 3)
	seen := map[float64]bool{}
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			rates := b.Cell(r, c).Rates
			if rates == nil {
				t.Fatal("variation > 0 must give each cell its own rates")
			}
			if rates.VirusSelf <= 0 || rates.AntibodyDecay <= 0 {
				t.Fatalf("sampled rates must stay positive: %+v", rates)
			}
			seen[rates.VirusSelf] = true
		}
	}
	if len(seen) < 2 {
		t.Fatal("expected heterogeneous per-cell rates")
	}

	cfg.Variation = 0
	if got := mustBoard(t, cfg, 3).Cell(0, 0).Rates; got != nil {
		t.Fatalf("variation 0 should share board rates, got %+v", got)
	}
}

func TestNewBoardRejectsBadConfig(t *testing.T) {
	cfg := deterministicConfig(3, "identity")
	cfg.Model = 0
	if _, err := NewBoard(cfg, rng.NewRNG(1)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for unset model, got %v", err)
	}
	if _, err := NewBoard(deterministicConfig(3, "identity"), nil); err == nil {
		t.Fatal("expected error for nil RNG")
	}
}

func TestResetRestartsDayAndState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 8
	cfg.ProbInfected = 0.3
	b := mustBoard(t, cfg, 12)
	b.Step()
	b.Step()
	if err := b.Reset(); err != nil {
		t.Fatal(err)
	}
	if b.Day() != 0 {
		t.Fatalf("reset should rewind the day counter, got %d", b.Day())
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			got := b.Cell(r, c)
			if got.Antibody != 0 || (got.Virus != 0 && got.Virus != cfg.VirusInit) {
				t.Fatalf("cell (%d,%d) not freshly seeded: %+v", r, c, got)
			}
		}
	}
}

func TestClassificationPriority(t *testing.T) {
	th := Thresholds{Infected: 0.1, Recovered: 0.5}
	cases := []struct {
		cell Cell
		want Category
	}{
		{Cell{Virus: 0.1, Antibody: 0.9}, Infected},
		{Cell{Virus: 0.09, Antibody: 0.5}, Recovered},
		{Cell{Virus: 0.05, Antibody: 0.2}, Susceptible},
		{Cell{}, Susceptible},
	}
	for _, tc := range cases {
		if got := th.Classify(tc.cell); got != tc.want {
			t.Fatalf("Classify(%+v) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestSaturatingVersusLinear(t *testing.T) {
	cfg := deterministicConfig(1, "identity")
	cfg.Saturation = 0.5

	linear := mustBoard(t, cfg, 1)
	_ = linear.Place(0, 0, InitInfected)
	linear.Step()

	cfg.Model = ModelSaturating
	sat := mustBoard(t, cfg, 1)
	_ = sat.Place(0, 0, InitInfected)
	sat.Step()

	if got := linear.Cell(0, 0).Antibody; got != 1 {
		t.Fatalf("linear antibody = %v, want 1", got)
	}
	if got := sat.Cell(0, 0).Antibody; math.Abs(got-0.8) > 1e-12 {
		t.Fatalf("saturating antibody = %v, want 0.8", got)
	}
}

func TestParseInitMode(t *testing.T) {
	for _, m := range []InitMode{InitRandom, InitInfected, InitRecovered} {
		got, err := ParseInitMode(" " + m.String())
		if err != nil || got != m {
			t.Fatalf("ParseInitMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseInitMode("zombie"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestRightNeighbourFeedsCell(t *testing.T) {
	cfg := deterministicConfig(3, "0,0,0;1,0,0;0,0,0")
	cfg.Rates = Rates{VirusSelf: 1}
	b := mustBoard(t, cfg, 1)
	if err := b.Place(1, 2, InitInfected); err != nil {
		t.Fatal(err)
	}

	b.Step()

	if got := b.Cell(1, 1).Virus; got != 0.5 {
		t.Fatalf("cell (1,1) virus = %v, want 0.5 from its right neighbour", got)
	}
	if got := b.Cell(1, 2).Virus; got != 0.5 {
		t.Fatalf("source cell has no right neighbour, want 0.5, got %v", got)
	}
}
