package core

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// RNG is the single random stream shared by every stochastic draw of a
// simulation. It wraps a PCG source so that a seed reproduces a run exactly.
type RNG struct {
	src *rand.PCG
	r   *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	src := rand.NewPCG(uint64(seed), 0)
	return &RNG{src: src, r: rand.New(src)}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// LogNormal draws exp(mu + sigma*N(0,1)). A zero sigma returns exp(mu)
// without consuming the stream.
func (r *RNG) LogNormal(mu, sigma float64) float64 {
	dist := distuv.LogNormal{Mu: mu, Sigma: sigma, Src: r.src}
	if sigma == 0 {
		return dist.Median()
	}
	return dist.Rand()
}
