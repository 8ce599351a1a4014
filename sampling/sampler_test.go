package sampling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Normal(45, 12), b.Normal(45, 12))
		assert.Equal(t, a.Poisson(1.5), b.Poisson(1.5))
		assert.Equal(t, a.Beta(2, 8), b.Beta(2, 8))
		assert.Equal(t, a.IntBetween(1, 30), b.IntBetween(1, 30))
	}
}

func TestSampler_DifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := 0
	for i := 0; i < 50; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 50)
}

func TestSampler_IntBetween(t *testing.T) {
	s := New(7)

	t.Run("inclusive bounds", func(t *testing.T) {
		seen := map[int]bool{}
		for i := 0; i < 2000; i++ {
			v := s.IntBetween(1, 5)
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, 5)
			seen[v] = true
		}
		assert.Len(t, seen, 5, "both ends should be reachable")
	})

	t.Run("degenerate range", func(t *testing.T) {
		assert.Equal(t, 3, s.IntBetween(3, 3))
		assert.Equal(t, 9, s.IntBetween(9, 2))
	})
}

func TestSampler_DateBetween(t *testing.T) {
	s := New(11)
	start := time.Date(2023, 10, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sawStart, sawEnd := false, false
	for i := 0; i < 5000; i++ {
		d := s.DateBetween(start, end)
		require.False(t, d.Before(start))
		require.False(t, d.After(end))
		sawStart = sawStart || d.Equal(start)
		sawEnd = sawEnd || d.Equal(end)
	}
	assert.True(t, sawStart)
	assert.True(t, sawEnd)
}

func TestSampler_BetaWithinUnitInterval(t *testing.T) {
	s := New(3)
	for i := 0; i < 1000; i++ {
		v := s.Beta(2, 8)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestSampler_PoissonMean(t *testing.T) {
	s := New(5)
	const trials = 20000

	total := 0
	for i := 0; i < trials; i++ {
		v := s.Poisson(1.5)
		require.GreaterOrEqual(t, v, 0)
		total += v
	}

	mean := float64(total) / trials
	assert.InDelta(t, 1.5, mean, 0.05)
}

func TestSampler_NormalMoments(t *testing.T) {
	s := New(9)
	const trials = 20000

	total := 0.0
	for i := 0; i < trials; i++ {
		total += s.Normal(45, 12)
	}
	assert.InDelta(t, 45.0, total/trials, 0.5)
}

func TestSampler_Perm(t *testing.T) {
	s := New(13)
	perm := s.Perm(10)

	assert.Len(t, perm, 10)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, perm)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 730, DaysBetween(start, end))
	assert.Equal(t, -730, DaysBetween(end, start))
	assert.Equal(t, 0, DaysBetween(start, start))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, ClampInt(-2, 0, 6))
	assert.Equal(t, 6, ClampInt(9, 0, 6))
	assert.Equal(t, 4, ClampInt(4, 0, 6))
	assert.Equal(t, 25.0, ClampFloat(12.5, 25, 75))
	assert.Equal(t, 75.0, ClampFloat(80.1, 25, 75))
}
