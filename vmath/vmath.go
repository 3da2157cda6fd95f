package vmath

import (
	"math"
)

// --- Randomness ---

// FastRand is a xorshift64 generator
// Deterministic for a given seed so simulations can be replayed in tests
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a uniform value in [0, 1) using the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a uniform value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// UnitSphere returns a uniformly distributed direction on the unit sphere
// Inverse-CDF sampling: theta uniform in [0, 2π), phi = acos(2u-1)
func (r *FastRand) UnitSphere() Vec3F {
	theta := r.Float64() * 2 * math.Pi
	phi := math.Acos(2*r.Float64() - 1)
	sinPhi := math.Sin(phi)
	return Vec3F{
		X: sinPhi * math.Cos(theta),
		Y: sinPhi * math.Sin(theta),
		Z: math.Cos(phi),
	}
}

// Disc returns a uniformly distributed point in a disc of given radius on the XZ plane
func (r *FastRand) Disc(radius float64) (x, z float64) {
	d := radius * math.Sqrt(r.Float64())
	theta := r.Float64() * 2 * math.Pi
	return d * math.Cos(theta), d * math.Sin(theta)
}

// --- Scalars ---

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
