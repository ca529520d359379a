package epidemic

import (
	"errors"
	"testing"

	"pca-sim/internal/core"
)

func TestNewKernelValidation(t *testing.T) {
	cases := map[string][][]float64{
		"empty":    {},
		"even":     {{1, 1}, {1, 1}},
		"ragged":   {{1, 1, 1}, {1, 1}, {1, 1, 1}},
		"negative": {{-0.1}},
		"even-row": {{1, 1, 1}, {1, 1, 1}},
	}
	for name, w := range cases {
		if _, err := NewKernel(w); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
	if _, err := NewKernel([][]float64{{0, 1, 0}}); err != nil {
		t.Fatalf("1x3 kernel should be valid: %v", err)
	}
}

func TestParseKernel(t *testing.T) {
	k, err := ParseKernel("classic")
	if err != nil {
		t.Fatal(err)
	}
	if r, c := k.Dims(); r != 5 || c != 5 || k.Weight(2, 2) != 1 {
		t.Fatalf("classic preset parsed wrong: %dx%d centre %v", r, c, k.Weight(2, 2))
	}

	k, err = ParseKernel("0, 0.1, 0; 0.1, 0.6, 0.1; 0, 0.1, 0")
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseKernel(k.String())
	if err != nil {
		t.Fatal(err)
	}
	if k.String() != again.String() {
		t.Fatalf("String round trip changed kernel: %q vs %q", k.String(), again.String())
	}
	if _, err := ParseKernel("1,x,1"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestApplyZeroPadding(t *testing.T) {
	k, _ := ParseKernel("1,1,1;1,1,1;1,1,1")
	src := core.NewGrid(3)
	for i := range src.Values() {
		src.Values()[i] = 1
	}
	dst := core.NewGrid(3)
	k.Apply(dst, src)

	want := [][]float64{
		{4, 6, 4},
		{6, 9, 6},
		{4, 6, 4},
	}
	for r := range want {
		for c := range want[r] {
			if got := dst.At(r, c); got != want[r][c] {
				t.Fatalf("exposure (%d,%d) = %v, want %v", r, c, got, want[r][c])
			}
		}
	}
}

func TestApplyIsConvolution(t *testing.T) {
	// Flipped weight on the left column feeds each cell from its right
	// neighbour.
	k, _ := ParseKernel("0,0,0;1,0,0;0,0,0")
	src := core.NewGrid(3)
	src.Set(1, 2, 0.5)
	dst := core.NewGrid(3)
	k.Apply(dst, src)
	if got := dst.At(1, 1); got != 0.5 {
		t.Fatalf("expected right neighbour load at (1,1), got %v", got)
	}
	if got := dst.At(1, 2); got != 0 {
		t.Fatalf("expected zero padding at (1,2), got %v", got)
	}
	for _, rc := range [][2]int{{0, 1}, {2, 1}, {1, 0}} {
		if got := dst.At(rc[0], rc[1]); got != 0 {
			t.Fatalf("unexpected exposure %v at %v", got, rc)
		}
	}
}

func TestApplyAsymmetricKernelOrientation(t *testing.T) {
	// Same-size convolve2d of a single unit impulse reproduces the kernel
	// unflipped around the impulse.
	k, _ := ParseKernel("1,2,3;4,5,6;7,8,9")
	src := core.NewGrid(3)
	src.Set(1, 1, 1)
	dst := core.NewGrid(3)
	k.Apply(dst, src)
	want := k.Weights()
	for r := range want {
		for c := range want[r] {
			if got := dst.At(r, c); got != want[r][c] {
				t.Fatalf("exposure (%d,%d) = %v, want %v", r, c, got, want[r][c])
			}
		}
	}
}
