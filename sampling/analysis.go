package sampling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FrequencyCheck compares observed outcome frequencies against the expected probabilities
type FrequencyCheck struct {
	Name         string
	Labels       []string
	Expected     []float64 // Probabilities
	Observed     []int     // Counts
	Trials       int
	ChiSquare    float64
	PValue       float64
	MaxDeviation float64 // Largest absolute gap between observed rate and probability
}

// Passed reports whether every outcome rate is within tolerance of its probability
func (c FrequencyCheck) Passed(tolerance float64) bool {
	return c.MaxDeviation <= tolerance
}

// ObservedRate returns the observed frequency of outcome i
func (c FrequencyCheck) ObservedRate(i int) float64 {
	if c.Trials == 0 {
		return 0
	}
	return float64(c.Observed[i]) / float64(c.Trials)
}

// CheckCategorical samples a table trials times and measures goodness of fit
func CheckCategorical[T ~string](name string, s *Sampler, c *Categorical[T], trials int) FrequencyCheck {
	index := make(map[T]int, len(c.options))
	labels := make([]string, len(c.options))
	for i, opt := range c.options {
		index[opt.Value] = i
		labels[i] = string(opt.Value)
	}

	observed := make([]int, len(c.options))
	for i := 0; i < trials; i++ {
		observed[index[c.Sample(s)]]++
	}

	return newFrequencyCheck(name, labels, c.weights, observed, trials)
}

// CheckBernoulli runs trials Bernoulli(p) draws and measures goodness of fit
func CheckBernoulli(name string, s *Sampler, p float64, trials int) FrequencyCheck {
	observed := make([]int, 2)
	for i := 0; i < trials; i++ {
		if s.Bernoulli(p) {
			observed[0]++
		} else {
			observed[1]++
		}
	}

	return newFrequencyCheck(name, []string{"true", "false"}, []float64{p, 1 - p}, observed, trials)
}

// CheckUniform buckets trials Float64 draws into equal-width bins over [0, 1)
func CheckUniform(name string, s *Sampler, buckets, trials int) FrequencyCheck {
	labels := make([]string, buckets)
	probs := make([]float64, buckets)
	for i := range buckets {
		labels[i] = fmt.Sprintf("[%.2f,%.2f)", float64(i)/float64(buckets), float64(i+1)/float64(buckets))
		probs[i] = 1 / float64(buckets)
	}

	observed := make([]int, buckets)
	for i := 0; i < trials; i++ {
		bucket := min(int(s.Float64()*float64(buckets)), buckets-1)
		observed[bucket]++
	}

	return newFrequencyCheck(name, labels, probs, observed, trials)
}

func newFrequencyCheck(name string, labels []string, probs []float64, observed []int, trials int) FrequencyCheck {
	check := FrequencyCheck{
		Name:     name,
		Labels:   labels,
		Expected: append([]float64(nil), probs...),
		Observed: observed,
		Trials:   trials,
	}
	if trials == 0 {
		return check
	}

	obs := make([]float64, 0, len(observed))
	exp := make([]float64, 0, len(observed))
	for i, count := range observed {
		deviation := math.Abs(float64(count)/float64(trials) - probs[i])
		check.MaxDeviation = math.Max(check.MaxDeviation, deviation)

		// Zero-probability outcomes carry no information for chi-squared
		if probs[i] == 0 {
			continue
		}
		obs = append(obs, float64(count))
		exp = append(exp, probs[i]*float64(trials))
	}

	check.ChiSquare = stat.ChiSquare(obs, exp)
	if dof := len(obs) - 1; dof > 0 {
		check.PValue = distuv.ChiSquared{K: float64(dof)}.Survival(check.ChiSquare)
	} else {
		check.PValue = 1
	}

	return check
}
