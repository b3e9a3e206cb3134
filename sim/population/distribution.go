package population

import (
	"math"
	"math/rand"
)

// Sampler generates non-negative integer draws (durations or amounts).
type Sampler interface {
	// Sample returns a value within the sampler's range.
	Sample(rng *rand.Rand) int64
}

// UniformSampler draws uniformly from the closed interval [min, max].
type UniformSampler struct {
	min, max int64
}

// NewSampler returns a ConstantSampler for degenerate ranges and a
// UniformSampler otherwise. r must already be validated.
func NewSampler(r Range) Sampler {
	if r.Min == r.Max {
		return ConstantSampler(r.Min)
	}
	return &UniformSampler{min: r.Min, max: r.Max}
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	span := s.max - s.min
	if span == math.MaxInt64 {
		// [0, MaxInt64] has 2^63 values, one more than Int63n accepts.
		return rng.Int63()
	}
	return s.min + rng.Int63n(span+1)
}

// ConstantSampler always returns the same value and consumes no randomness.
type ConstantSampler int64

func (s ConstantSampler) Sample(*rand.Rand) int64 {
	return int64(s)
}

// Bernoulli returns true with probability p. p <= 0 and p >= 1 short-circuit
// without consuming randomness, so disabling a behavior never shifts the
// random stream of the others.
func Bernoulli(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}
