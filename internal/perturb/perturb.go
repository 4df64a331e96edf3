// Package perturb generates random nearby variants of a color.
package perturb

import (
	"errors"
	"math/rand"
	"time"

	"fixthecolor/pkg/colorutil"
)

// DefaultDelta is the per-channel offset bound.
const DefaultDelta = 8

// ErrNoBaseColor is returned when there is no color to perturb.
var ErrNoBaseColor = errors.New("no base color")

// Generator offsets each channel by a uniform integer in [-Delta, +Delta].
type Generator struct {
	Delta int
	rng   *rand.Rand
}

// New returns a generator using rng, or a time-seeded source if rng is nil.
// A non-positive delta selects DefaultDelta.
func New(delta int, rng *rand.Rand) *Generator {
	if delta <= 0 {
		delta = DefaultDelta
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{Delta: delta, rng: rng}
}

// Next returns a variant of base. A nil base is ErrNoBaseColor.
func (g *Generator) Next(base *colorutil.RGB) (colorutil.RGB, error) {
	if base == nil {
		return colorutil.RGB{}, ErrNoBaseColor
	}
	return colorutil.RGB{
		R: g.channel(base.R),
		G: g.channel(base.G),
		B: g.channel(base.B),
	}, nil
}

func (g *Generator) channel(v uint8) uint8 {
	off := g.rng.Intn(2*g.Delta+1) - g.Delta
	return colorutil.ClampInt(int(v) + off)
}
