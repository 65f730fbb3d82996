package algorithms

import (
	"math"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

func countOnes(ind *framework.Individual[int]) float64 {
	n := 0.0
	for _, g := range ind.Chromosome() {
		n += float64(g)
	}
	return n
}

func binaryPopulation(t *testing.T, chromosomes ...[]int) *framework.Population[int] {
	t.Helper()
	p := framework.NewPopulation[int](len(chromosomes))
	for i, c := range chromosomes {
		require.NoError(t, p.SetIndividual(i, framework.NewIndividual(c)))
	}
	return p
}

func TestEvaluateAggregates(t *testing.T) {
	tests := []struct {
		name      string
		aggregate Aggregate
		want      float64
	}{
		{name: "sum", aggregate: AggregateSum, want: 6},
		{name: "mean", aggregate: AggregateMean, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := binaryPopulation(t, []int{1, 1, 1}, []int{0, 1, 1}, []int{1, 0, 0})
			assert.Equal(t, framework.UnsetFitness, p.Fitness())

			calls, err := Evaluate(p, countOnes, tt.aggregate)
			require.NoError(t, err)
			assert.Equal(t, 3, calls)
			assert.Equal(t, tt.want, p.Fitness())

			got := make([]float64, 0, 3)
			for _, ind := range p.Individuals() {
				got = append(got, ind.Fitness())
			}
			assert.Equal(t, []float64{3, 2, 1}, got)
		})
	}
}

func TestEvaluateRejectsNonFiniteFitness(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		p := binaryPopulation(t, []int{1}, []int{0})
		_, err := Evaluate(p, func(*framework.Individual[int]) float64 { return bad }, AggregateSum)
		assert.ErrorIs(t, err, framework.ErrInvalidFitness)
	}
}

func TestEvaluateEmptySlot(t *testing.T) {
	p := framework.NewPopulation[int](2)
	require.NoError(t, p.SetIndividual(0, framework.NewIndividual([]int{1})))

	calls, err := Evaluate(p, countOnes, AggregateSum)
	assert.ErrorIs(t, err, framework.ErrIndexOutOfRange)
	assert.Equal(t, 1, calls)
}

func TestCachedEvaluator(t *testing.T) {
	calls := 0
	cached := NewCachedEvaluator(func(ind *framework.Individual[int]) float64 {
		calls++
		return countOnes(ind)
	})

	p := binaryPopulation(t, []int{1, 1, 0}, []int{1, 1, 0}, []int{0, 0, 1})
	_, err := Evaluate(p, cached.Evaluator(), AggregateSum)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(1), cached.Hits())
	assert.Equal(t, int64(2), cached.Misses())
	assert.Equal(t, 2, cached.Len())
	assert.Equal(t, 5.0, p.Fitness())

	_, err = Evaluate(p, cached.Evaluator(), AggregateSum)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(4), cached.Hits())

	cached.Flush()
	assert.Zero(t, cached.Len())
	assert.Equal(t, 2.0, cached.Evaluate(framework.NewIndividual([]int{1, 1, 0})))
	assert.Equal(t, 3, calls)
}

func TestCachedEvaluatorBounded(t *testing.T) {
	calls := 0
	evaluator := func(ind *framework.Individual[int]) float64 {
		calls++
		return countOnes(ind)
	}

	t.Run("defaults", func(t *testing.T) {
		cached := NewCachedEvaluator(evaluator)
		assert.Equal(t, DefaultCacheMaxEntries, cached.maxEntries)
	})

	t.Run("flushes at the entry cap", func(t *testing.T) {
		calls = 0
		cached := NewBoundedCachedEvaluator(evaluator, cache.NoExpiration, 3)
		chromosomes := [][]int{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}}
		for _, genes := range chromosomes {
			assert.Equal(t, countOnes(framework.NewIndividual(genes)), cached.Evaluate(framework.NewIndividual(genes)))
			assert.LessOrEqual(t, cached.Len(), 3)
		}
		assert.Equal(t, 5, calls)
		assert.Equal(t, int64(5), cached.Misses())
		assert.Equal(t, 2, cached.Len())

		// {0,0,0} went with the flush.
		cached.Evaluate(framework.NewIndividual([]int{0, 0, 0}))
		assert.Equal(t, 6, calls)
	})

	t.Run("entries expire", func(t *testing.T) {
		calls = 0
		cached := NewBoundedCachedEvaluator(evaluator, time.Millisecond, 0)
		ind := framework.NewIndividual([]int{1, 0, 1})
		assert.Equal(t, 2.0, cached.Evaluate(ind))
		time.Sleep(10 * time.Millisecond)
		assert.Equal(t, 2.0, cached.Evaluate(ind))
		assert.Equal(t, 2, calls)
		assert.Zero(t, cached.Hits())
	})
}

func TestChromosomeKeyDistinguishesGenes(t *testing.T) {
	a := chromosomeKey(framework.NewIndividual([]string{"a|b", "c"}))
	b := chromosomeKey(framework.NewIndividual([]string{"a", "b|c"}))
	assert.NotEqual(t, a, b)
	assert.Equal(t, "1|2|3", chromosomeKey(framework.NewIndividual([]int{1, 2, 3})))
}

func TestComputeStats(t *testing.T) {
	p := populationWithFitness(2, 4, 4, 4, 5, 5, 7, 9)

	s := ComputeStats(3, p)
	assert.Equal(t, 3, s.Generation)
	assert.Equal(t, 9.0, s.Best)
	assert.Equal(t, 2.0, s.Worst)
	assert.Equal(t, 5.0, s.Mean)
	// Sample standard deviation of the classic 2,4,4,4,5,5,7,9 set.
	assert.InDelta(t, 2.138, s.StdDev, 1e-3)
	assert.Equal(t, 40.0, s.Aggregate)
}

func TestComputeStatsSingleMember(t *testing.T) {
	s := ComputeStats(1, populationWithFitness(0.5))
	assert.Equal(t, 0.5, s.Best)
	assert.Equal(t, 0.5, s.Mean)
	assert.Zero(t, s.StdDev)
}
