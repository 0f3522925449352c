// Package lootgen decides how many loot items to spawn on a tick. It is a
// pure function of accumulated simulation time, never of the wall clock, so
// replaying the same tick deltas yields the same spawn counts.
package lootgen

import (
	"math"
	"time"
)

// RandomFunc supplies the stochastic factor in [0,1]. The default always
// returns 1, which keeps the generator deterministic for tests and matches
// the configured probability exactly over one period.
type RandomFunc func() float64

type Generator struct {
	period      time.Duration
	probability float64
	random      RandomFunc

	unspawned time.Duration // time accumulated since the last spawn
}

// New returns a generator with the deterministic random factor. period is
// the base spawn interval; probability is the chance of at least one spawn
// event per period, in [0,1].
func New(period time.Duration, probability float64) *Generator {
	return NewWithRandom(period, probability, func() float64 { return 1.0 })
}

func NewWithRandom(period time.Duration, probability float64, random RandomFunc) *Generator {
	return &Generator{period: period, probability: probability, random: random}
}

// Generate returns how many new items to spawn after delta has elapsed,
// given the current item count and the number of potential looters. The
// result is non-negative and never exceeds looterCount-lootCount: an item
// without a potential collector is never spawned. The internal time
// accumulator resets only when something spawns.
func (g *Generator) Generate(delta time.Duration, lootCount, looterCount int) int {
	if g.period <= 0 {
		return 0
	}
	g.unspawned += delta

	shortage := looterCount - lootCount
	if shortage <= 0 {
		return 0
	}

	ratio := float64(g.unspawned) / float64(g.period)
	chance := clamp((1.0-math.Pow(1.0-g.probability, ratio))*g.random(), 0.0, 1.0)
	spawned := int(math.Round(float64(shortage) * chance))
	if spawned > 0 {
		g.unspawned = 0
	}
	return spawned
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
