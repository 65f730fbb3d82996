package algorithms

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

func TestResetMutationUnique(t *testing.T) {
	rng := newTestRand(20)
	domain := framework.IntRange(1, 10)
	mutate := ResetMutation(domain, framework.Unique)

	for i := 0; i < 500; i++ {
		ind, err := framework.NewRandomUniqueIndividual(rng, 6, domain)
		require.NoError(t, err)
		before := ind.Chromosome()

		offset := rng.IntN(6)
		require.NoError(t, mutate(rng, ind, offset))

		after := ind.Chromosome()
		require.False(t, hasDuplicates(after), "mutation of %v produced %v", before, after)
		assert.NotContains(t, before, after[offset])
		for j := range after {
			if j != offset {
				assert.Equal(t, before[j], after[j])
			}
		}
	}
}

func TestResetMutationUniqueOneValueLeft(t *testing.T) {
	rng := newTestRand(21)
	domain := framework.IntRange(0, 4)
	mutate := ResetMutation(domain, framework.Unique)

	ind := framework.NewIndividual([]int{0, 1, 2, 3})
	require.NoError(t, mutate(rng, ind, 2))
	assert.Equal(t, []int{0, 1, 4, 3}, ind.Chromosome())
}

func TestResetMutationUniqueInsufficientDomain(t *testing.T) {
	rng := newTestRand(22)
	domain := framework.IntRange(0, 3)
	mutate := ResetMutation(domain, framework.Unique)

	ind := framework.NewIndividual([]int{3, 1, 0, 2})
	err := mutate(rng, ind, 0)
	assert.ErrorIs(t, err, framework.ErrInsufficientDomain)
	assert.Equal(t, []int{3, 1, 0, 2}, ind.Chromosome())
}

func TestResetMutationFlipsBits(t *testing.T) {
	rng := newTestRand(23)
	mutate := ResetMutation(framework.NewDomain(0, 1), framework.Unconstrained)

	ind := framework.NewIndividual([]int{0, 1, 0, 1})
	for offset := 0; offset < ind.Len(); offset++ {
		require.NoError(t, mutate(rng, ind, offset))
	}
	assert.Equal(t, []int{1, 0, 1, 0}, ind.Chromosome())
}

func TestSwapMutationKeepsPermutation(t *testing.T) {
	rng := newTestRand(24)
	mutate := SwapMutation[int]()

	ind, err := framework.NewRandomUniqueIndividual(rng, 9, framework.IntRange(0, 8))
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		require.NoError(t, mutate(rng, ind, rng.IntN(9)))
		require.True(t, isPermutation(ind.Chromosome(), 9))
	}
}

func TestMutationOutOfRange(t *testing.T) {
	rng := newTestRand(25)
	ind := framework.NewIndividual([]int{0, 1, 2})

	assert.ErrorIs(t, SwapMutation[int]()(rng, ind, 3), framework.ErrIndexOutOfRange)
	assert.ErrorIs(t, ResetMutation(framework.IntRange(0, 5), framework.Unconstrained)(rng, ind, -1), framework.ErrIndexOutOfRange)
}

func TestMutatePopulationSkipsElites(t *testing.T) {
	rng := newTestRand(26)
	domain := framework.NewDomain(0, 1)
	population := framework.NewRandomPopulation(rng, 10, 16, domain)
	before := make([][]int, population.Size())
	for i, ind := range population.Individuals() {
		ind.SetFitness(float64(i))
		before[i] = ind.Chromosome()
	}

	err := MutatePopulation(rng, population, MutationOptions[int]{
		Rate:         1,
		ElitismCount: 3,
		Mutate:       ResetMutation(domain, framework.Unconstrained),
	})
	require.NoError(t, err)

	for i, ind := range population.Individuals() {
		if i < 3 {
			assert.Equal(t, before[i], ind.Chromosome(), "elite %d mutated", i)
			assert.Equal(t, float64(i), ind.Fitness())
			continue
		}
		// A certain mutation of a binary gene is a flip.
		for j, g := range ind.Chromosome() {
			assert.Equal(t, 1-before[i][j], g)
		}
		assert.Equal(t, framework.UnsetFitness, ind.Fitness())
	}
}

func TestMutatePopulationZeroRate(t *testing.T) {
	rng := newTestRand(27)
	population := populationWithFitness(1, 2, 3)
	calls := 0

	err := MutatePopulation(rng, population, MutationOptions[int]{
		Rate: 0,
		Mutate: func(*rand.Rand, *framework.Individual[int], int) error {
			calls++
			return nil
		},
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
	for i, ind := range population.Individuals() {
		assert.Equal(t, float64(i+1), ind.Fitness())
	}
}

func TestMutatePopulationPropagatesErrors(t *testing.T) {
	rng := newTestRand(28)
	population := framework.NewPopulation[int](2)
	require.NoError(t, population.SetIndividual(0, framework.NewIndividual([]int{0, 1})))
	require.NoError(t, population.SetIndividual(1, framework.NewIndividual([]int{1, 0})))

	err := MutatePopulation(rng, population, MutationOptions[int]{
		Rate:   1,
		Mutate: ResetMutation(framework.IntRange(0, 1), framework.Unique),
	})
	assert.ErrorIs(t, err, framework.ErrInsufficientDomain)
}
