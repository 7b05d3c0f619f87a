package core

import "math/rand"

// maxRejectionDraws bounds rejection sampling loops
const maxRejectionDraws = 100

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic stream
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// RowSeed derives the seed of one row's private stream from the render seed.
// The two values are mixed with splitmix64 so that renders with neighbouring
// seeds do not share row streams.
func RowSeed(seed int64, row int) int64 {
	z := uint64(seed) ^ (uint64(row) * 0x9E3779B97F4A7C15)
	z += 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get3D returns three random float64 values in [0, 1), drawn in X, Y, Z order
func (r *RandomSampler) Get3D() Vec3 {
	x := r.random.Float64()
	y := r.random.Float64()
	z := r.random.Float64()
	return NewVec3(x, y, z)
}

// SamplePointInUnitSphere returns a uniformly distributed point strictly inside
// the unit ball by rejection from the [-1,1]^3 cube.
// After maxRejectionDraws rejected draws it gives up and returns the origin.
func SamplePointInUnitSphere(sampler Sampler) Vec3 {
	for range maxRejectionDraws {
		p := sampler.Get3D().Multiply(2.0).AddScalar(-1.0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
	return Vec3{}
}
