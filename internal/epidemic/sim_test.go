package epidemic

import (
	"slices"
	"testing"

	"pca-sim/internal/core"
)

func TestSimRegisteredAndDeterministic(t *testing.T) {
	factory, err := core.Lookup("pca")
	if err != nil {
		t.Fatal(err)
	}
	sim, err := factory(map[string]string{"size": "12", "prob_infected": "0.1", "seed": "5"})
	if err != nil {
		t.Fatal(err)
	}
	if s := sim.Size(); s.W != 12 || s.H != 12 {
		t.Fatalf("unexpected size %+v", s)
	}
	initial := append([]uint8(nil), sim.Cells()...)
	sim.Step()
	sim.Step()
	if err := sim.Reset(0); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(initial, sim.Cells()) {
		t.Fatal("Reset with config seed should reproduce the initial display")
	}
	for _, v := range sim.Cells() {
		if int(v) >= len(sim.(*Sim).Palette()) {
			t.Fatalf("display value %d has no palette entry", v)
		}
	}
	if _, err := factory(map[string]string{"size": "0"}); err == nil {
		t.Fatal("expected configuration error from factory")
	}
}

func TestSimLoadFieldsTrackBoard(t *testing.T) {
	cfg := deterministicConfig(3, "identity")
	sim, err := NewSim(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Board().Place(1, 1, InitInfected); err != nil {
		t.Fatal(err)
	}
	sim.Step()
	b := sim.Board()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			i := r*3 + c
			if sim.VirusField()[i] != b.Cell(r, c).Virus || sim.AntibodyField()[i] != b.Cell(r, c).Antibody {
				t.Fatalf("field mismatch at (%d,%d)", r, c)
			}
		}
	}
	if sim.VirusField()[4] == 0 {
		t.Fatal("placed cell should carry virus after one day")
	}
}

func TestSimLegendMatchesPalette(t *testing.T) {
	sim, err := NewSim(deterministicConfig(2, "identity"))
	if err != nil {
		t.Fatal(err)
	}
	legend := sim.Legend()
	if len(legend) != len(sim.Palette()) {
		t.Fatalf("legend has %d entries, palette %d", len(legend), len(sim.Palette()))
	}
	if legend[Infected] != Infected.String() {
		t.Fatalf("legend out of order: %v", legend)
	}
}
