// Package randengine centralizes every stochastic draw the traffic core
// makes, so that a fixed seed makes a run bit-reproducible (spec §5).
// Nothing in model/ is allowed to reach for ambient/global randomness;
// every draw goes through an *Engine handed to the model at construction.
package randengine

import (
	"flag"

	"golang.org/x/exp/rand"
)

var seedOffset = flag.Uint64("rand.seed_offset", 0, "offset added to every seed, for running parallel variants of one scenario")

// Engine wraps golang.org/x/exp/rand with the handful of draws the traffic
// core needs: uniform floats and a couple of named helpers that document
// *why* a draw is being made in call sites (decide's acceleration noise,
// the spawner's regularized inter-arrival and truck/car classification).
type Engine struct {
	*rand.Rand
}

// New creates an engine seeded deterministically from seed (plus any
// process-wide -rand.seed_offset).
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// Uniform draws a value uniformly from [lo, hi).
func (e *Engine) Uniform(lo, hi float64) float64 {
	return lo + e.Float64()*(hi-lo)
}

// PTrue returns true with probability p.
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// Bernoulli is an alias for PTrue used at spawn-classification call sites,
// where "is this draw a truck" reads better than "is this draw true".
func (e *Engine) Bernoulli(p float64) bool {
	return e.PTrue(p)
}
