package core

// Grid stores a square field of float64 values in row-major order.
type Grid struct {
	N    int
	data []float64
}

// NewGrid allocates an n×n grid of zeros.
func NewGrid(n int) *Grid {
	if n <= 0 {
		n = 1
	}
	return &Grid{N: n, data: make([]float64, n*n)}
}

// Values exposes the backing slice so callers can read/write values directly.
func (g *Grid) Values() []float64 { return g.data }

// Set writes v at (row, col).
func (g *Grid) Set(row, col int, v float64) { g.data[row*g.N+col] = v }

// At returns the value at (row, col), or 0 outside the grid.
func (g *Grid) At(row, col int) float64 {
	if row < 0 || row >= g.N || col < 0 || col >= g.N {
		return 0
	}
	return g.data[row*g.N+col]
}
