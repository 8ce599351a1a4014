// Package sampling provides the seeded random source shared by every generation
// stage, plus the distributions and categorical tables they draw from.
package sampling

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// pcgStream is the fixed second PCG word; only the seed varies between runs
const pcgStream = 0x9e3779b97f4a7c15

// Sampler draws every random value of a generation run from one seeded generator
type Sampler struct {
	rng *rand.Rand
}

// New creates a sampler whose output is fully determined by seed
func New(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(uint64(seed), pcgStream))}
}

// Float64 returns a uniform value in [0, 1)
func (s *Sampler) Float64() float64 {
	return s.rng.Float64()
}

// Normal draws from a normal distribution
func (s *Sampler) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: s.rng}.Rand()
}

// Poisson draws a non-negative count from a Poisson distribution
func (s *Sampler) Poisson(lambda float64) int {
	return int(distuv.Poisson{Lambda: lambda, Src: s.rng}.Rand())
}

// Beta draws from a beta distribution, always within [0, 1]
func (s *Sampler) Beta(alpha, beta float64) float64 {
	return distuv.Beta{Alpha: alpha, Beta: beta, Src: s.rng}.Rand()
}

// Bernoulli returns true with probability p
func (s *Sampler) Bernoulli(p float64) bool {
	return distuv.Bernoulli{P: p, Src: s.rng}.Rand() == 1
}

// Uniform draws a real value in [min, max)
func (s *Sampler) Uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: s.rng}.Rand()
}

// IntBetween draws an integer in [min, max], both ends inclusive.
// It returns min when max < min.
func (s *Sampler) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}

// Perm returns a random permutation of [0, n)
func (s *Sampler) Perm(n int) []int {
	return s.rng.Perm(n)
}

// DateBetween draws a whole-day date in [start, end], both ends inclusive
func (s *Sampler) DateBetween(start, end time.Time) time.Time {
	return start.AddDate(0, 0, s.IntBetween(0, DaysBetween(start, end)))
}

// DaysBetween returns the number of whole days from a to b
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// ClampInt bounds v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// ClampFloat bounds v to [lo, hi]
func ClampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
