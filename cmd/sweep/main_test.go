package main

import (
	"context"
	"testing"

	"pca-sim/internal/epidemic"
)

func TestCheckFlags(t *testing.T) {
	cases := []struct {
		name                string
		workers, runs, days int
		ok                  bool
	}{
		{"defaults", 4, 3, 100, true},
		{"no workers", 0, 3, 100, false},
		{"negative workers", -2, 3, 100, false},
		{"no runs", 4, 0, 100, false},
		{"negative days", 4, 3, -1, false},
		{"zero days", 1, 1, 0, true},
	}
	for _, tc := range cases {
		err := checkFlags(tc.workers, tc.runs, tc.days)
		if (err == nil) != tc.ok {
			t.Fatalf("%s: checkFlags error = %v, want ok=%v", tc.name, err, tc.ok)
		}
	}
}

func TestRunScenarioDeterministic(t *testing.T) {
	base := epidemic.DefaultConfig()
	base.Size = 10
	base.ProbInfected = 0.05
	params := paramSet{index: 3, virusSelf: 0.5, virusAnti: 2, antiVirus: 1, antiDecay: 0.03, saturation: 0.5}

	a := runScenario(context.Background(), base, params, 7, 6, 2)
	b := runScenario(context.Background(), base, params, 7, 6, 2)
	if a.err != nil || b.err != nil {
		t.Fatalf("unexpected errors: %v, %v", a.err, b.err)
	}
	if a.peakMean != b.peakMean || a.peakDayMean != b.peakDayMean || a.attackRate != b.attackRate {
		t.Fatalf("same seed and params gave different results: %+v vs %+v", a, b)
	}
	if a.attackRate < 0 || a.attackRate > 1 {
		t.Fatalf("attack rate out of range: %v", a.attackRate)
	}
}
