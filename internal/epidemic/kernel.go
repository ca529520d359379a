package epidemic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"pca-sim/internal/core"
)

// Kernel weights how much of each neighbour's virus load reaches a cell.
// Dimensions are odd so the kernel has a well-defined centre.
type Kernel struct {
	rows, cols int
	w          []float64
}

// NewKernel copies weights into a Kernel after validating its shape.
func NewKernel(weights [][]float64) (Kernel, error) {
	if len(weights) == 0 || len(weights[0]) == 0 {
		return Kernel{}, fmt.Errorf("%w: kernel is empty", ErrInvalidConfig)
	}
	rows, cols := len(weights), len(weights[0])
	if rows%2 == 0 || cols%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: kernel must have odd dimensions, got %dx%d", ErrInvalidConfig, rows, cols)
	}
	k := Kernel{rows: rows, cols: cols, w: make([]float64, 0, rows*cols)}
	for i, row := range weights {
		if len(row) != cols {
			return Kernel{}, fmt.Errorf("%w: kernel row %d has %d weights, want %d", ErrInvalidConfig, i, len(row), cols)
		}
		for j, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return Kernel{}, fmt.Errorf("%w: kernel weight [%d][%d] = %v", ErrInvalidConfig, i, j, v)
			}
			k.w = append(k.w, v)
		}
	}
	return k, nil
}

// MustKernel is NewKernel for package-level presets.
func MustKernel(weights [][]float64) Kernel {
	k, err := NewKernel(weights)
	if err != nil {
		panic(err)
	}
	return k
}

var kernelPresets = map[string][][]float64{
	"pca": {
		{0.0, 0.0, 0.0, 0.0, 0.0},
		{0.0, 0.0, 0.1, 0.0, 0.0},
		{0.0, 0.1, 0.6, 0.1, 0.0},
		{0.0, 0.0, 0.1, 0.0, 0.0},
		{0.0, 0.0, 0.0, 0.0, 0.0},
	},
	"classic": {
		{0.3, 0.3, 0.3, 0.3, 0.3},
		{0.3, 0.6, 0.6, 0.6, 0.3},
		{0.3, 0.6, 1.0, 0.6, 0.3},
		{0.3, 0.6, 0.6, 0.6, 0.3},
		{0.3, 0.3, 0.3, 0.3, 0.3},
	},
	"identity": {{1}},
}

// ParseKernel accepts a preset name (pca, classic, identity) or explicit
// weights with rows separated by ';' and columns by ','.
func ParseKernel(s string) (Kernel, error) {
	s = strings.TrimSpace(s)
	if preset, ok := kernelPresets[strings.ToLower(s)]; ok {
		return NewKernel(preset)
	}
	var weights [][]float64
	for _, rowText := range strings.Split(s, ";") {
		var row []float64
		for _, field := range strings.Split(rowText, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return Kernel{}, fmt.Errorf("%w: kernel %q: %v", ErrInvalidConfig, s, err)
			}
			row = append(row, v)
		}
		weights = append(weights, row)
	}
	return NewKernel(weights)
}

// Dims returns the kernel's row and column counts.
func (k Kernel) Dims() (rows, cols int) { return k.rows, k.cols }

// Weight returns the weight at kernel position (i, j).
func (k Kernel) Weight(i, j int) float64 { return k.w[i*k.cols+j] }

// Weights returns a copy of the weights as nested rows.
func (k Kernel) Weights() [][]float64 {
	out := make([][]float64, k.rows)
	for i := range out {
		out[i] = append([]float64(nil), k.w[i*k.cols:(i+1)*k.cols]...)
	}
	return out
}

// String renders the kernel in the form ParseKernel accepts.
func (k Kernel) String() string {
	rows := make([]string, k.rows)
	for i := range rows {
		fields := make([]string, k.cols)
		for j := range fields {
			fields[j] = strconv.FormatFloat(k.Weight(i, j), 'g', -1, 64)
		}
		rows[i] = strings.Join(fields, ",")
	}
	return strings.Join(rows, ";")
}

func (k Kernel) valid() bool {
	return k.rows > 0 && k.cols > 0 && k.rows%2 == 1 && k.cols%2 == 1 && len(k.w) == k.rows*k.cols
}

// Apply writes the same-size 2-D convolution of src with the kernel into dst.
// The kernel is flipped in both axes, so weight (i, j) reads the source cell
// offset by (cr-i, cc-j). Positions outside src contribute nothing (zero
// padding, no wraparound).
func (k Kernel) Apply(dst, src *core.Grid) {
	n := src.N
	cr, cc := k.rows/2, k.cols/2
	in := src.Values()
	out := dst.Values()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			sum := 0.0
			for i := 0; i < k.rows; i++ {
				sr := r + cr - i
				if sr < 0 || sr >= n {
					continue
				}
				for j := 0; j < k.cols; j++ {
					sc := c + cc - j
					if sc < 0 || sc >= n {
						continue
					}
					sum += k.w[i*k.cols+j] * in[sr*n+sc]
				}
			}
			out[r*n+c] = sum
		}
	}
}
