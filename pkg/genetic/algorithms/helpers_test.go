package algorithms

import (
	"math/rand/v2"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// populationWithFitness builds a population whose i-th member has the single
// gene i and the i-th fitness value. The aggregate is their sum.
func populationWithFitness(values ...float64) *framework.Population[int] {
	p := framework.NewPopulation[int](len(values))
	total := 0.0
	for i, f := range values {
		ind := framework.NewIndividual([]int{i})
		ind.SetFitness(f)
		_ = p.SetIndividual(i, ind)
		total += f
	}
	p.SetFitness(total)
	return p
}

func isPermutation(chromosome []int, n int) bool {
	if len(chromosome) != n {
		return false
	}
	seen := make([]bool, n)
	for _, g := range chromosome {
		if g < 0 || g >= n || seen[g] {
			return false
		}
		seen[g] = true
	}
	return true
}

func hasDuplicates[G comparable](chromosome []G) bool {
	seen := make(map[G]bool, len(chromosome))
	for _, g := range chromosome {
		if seen[g] {
			return true
		}
		seen[g] = true
	}
	return false
}
