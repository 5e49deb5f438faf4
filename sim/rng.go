package sim

import (
	"gonum.org/v1/gonum/mathext/prng"
)

// UniformSource is the only capability the simulator needs from a random
// generator: a reproducible stream of floats in [0,1).
type UniformSource interface {
	Float64() float64
}

// MTSource draws uniforms from a 32-bit Mersenne Twister.
// Float64 scales one 32-bit output by 2^-32, the same mapping as the
// classic genrand(), so a given seed replays the reference arrival stream.
//
// Thread-safety: NOT thread-safe. Each Simulator owns its own MTSource.
type MTSource struct {
	seed int64
	mt   *prng.MT19937
}

// NewMTSource seeds a generator with the low 32 bits of seed.
func NewMTSource(seed int64) *MTSource {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))
	return &MTSource{seed: seed, mt: mt}
}

// Float64 returns the next draw in [0,1).
func (s *MTSource) Float64() float64 {
	return float64(s.mt.Uint32()) / (1 << 32)
}

// Uint32 returns the raw generator output behind the next draw.
func (s *MTSource) Uint32() uint32 {
	return s.mt.Uint32()
}

// Seed returns the seed the source was created with.
func (s *MTSource) Seed() int64 {
	return s.seed
}
