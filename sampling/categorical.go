package sampling

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// probabilityTolerance bounds how far a table's total may drift from 1
const probabilityTolerance = 1e-9

// ErrInvalidDistribution is returned when a categorical table is malformed
var ErrInvalidDistribution = errors.New("invalid categorical distribution")

// Option is one labeled outcome of a categorical table
type Option[T ~string] struct {
	Value       T
	Probability float64
}

// Categorical is a fixed table of labeled outcomes whose probabilities sum to 1
type Categorical[T ~string] struct {
	options []Option[T]
	weights []float64
}

// NewCategorical validates and builds a categorical table
func NewCategorical[T ~string](options ...Option[T]) (*Categorical[T], error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: no options", ErrInvalidDistribution)
	}

	weights := make([]float64, len(options))
	total := 0.0
	seen := make(map[T]struct{}, len(options))
	for i, opt := range options {
		if opt.Probability < 0 || math.IsNaN(opt.Probability) {
			return nil, fmt.Errorf("%w: option %q has probability %v", ErrInvalidDistribution, opt.Value, opt.Probability)
		}
		if _, dup := seen[opt.Value]; dup {
			return nil, fmt.Errorf("%w: duplicate option %q", ErrInvalidDistribution, opt.Value)
		}
		seen[opt.Value] = struct{}{}
		weights[i] = opt.Probability
		total += opt.Probability
	}

	if math.Abs(total-1) > probabilityTolerance {
		return nil, fmt.Errorf("%w: probabilities sum to %v, want 1", ErrInvalidDistribution, total)
	}

	return &Categorical[T]{
		options: append([]Option[T](nil), options...),
		weights: weights,
	}, nil
}

// MustCategorical is like NewCategorical but panics on a malformed table.
// Tables are compile-time constants, so a bad one is a programming error.
func MustCategorical[T ~string](options ...Option[T]) *Categorical[T] {
	c, err := NewCategorical(options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Sample draws one outcome using the sampler's generator
func (c *Categorical[T]) Sample(s *Sampler) T {
	idx := int(distuv.NewCategorical(c.weights, s.rng).Rand())
	return c.options[idx].Value
}

// Options returns a copy of the table
func (c *Categorical[T]) Options() []Option[T] {
	return append([]Option[T](nil), c.options...)
}
