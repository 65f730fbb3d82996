package algorithms

import (
	"fmt"
	"math/rand/v2"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

// maxRejectionDraws bounds the random redraws of a unique gene before the
// remaining values are enumerated directly.
const maxRejectionDraws = 64

// MutateFunc mutates the gene at offset of ind in place.
type MutateFunc[G comparable] func(rng *rand.Rand, ind *framework.Individual[G], offset int) error

// ResetMutation replaces a gene with another value of the domain. Under the
// Unique constraint the new value must not already be present in the
// chromosome; otherwise any value different from the current one is drawn,
// which for a two valued domain is a bit flip.
func ResetMutation[G comparable](domain framework.Domain[G], constraint framework.GeneConstraint) MutateFunc[G] {
	if constraint == framework.Unique {
		return func(rng *rand.Rand, ind *framework.Individual[G], offset int) error {
			gene, err := drawAbsentGene(rng, ind, domain)
			if err != nil {
				return err
			}
			return ind.SetGene(offset, gene)
		}
	}
	return func(rng *rand.Rand, ind *framework.Individual[G], offset int) error {
		current, err := ind.Gene(offset)
		if err != nil {
			return err
		}
		return ind.SetGene(offset, domain.RandomOther(rng, current))
	}
}

// SwapMutation exchanges the gene at offset with a gene at a random position.
// It keeps the set of genes intact, so permutations stay permutations.
func SwapMutation[G comparable]() MutateFunc[G] {
	return func(rng *rand.Rand, ind *framework.Individual[G], offset int) error {
		other := rng.IntN(ind.Len())
		a, err := ind.Gene(offset)
		if err != nil {
			return err
		}
		b, err := ind.Gene(other)
		if err != nil {
			return err
		}
		if err := ind.SetGene(offset, b); err != nil {
			return err
		}
		return ind.SetGene(other, a)
	}
}

// drawAbsentGene uses rejection sampling first and falls back to picking
// among the values still missing from the chromosome.
func drawAbsentGene[G comparable](rng *rand.Rand, ind *framework.Individual[G], domain framework.Domain[G]) (G, error) {
	var zero G
	if domain.Len() == 0 {
		return zero, fmt.Errorf("%w: empty domain", framework.ErrInsufficientDomain)
	}
	for i := 0; i < maxRejectionDraws; i++ {
		gene := domain.Random(rng)
		if !ind.ContainsGene(gene) {
			return gene, nil
		}
	}

	var absent []G
	for _, v := range domain.Values() {
		if !ind.ContainsGene(v) {
			absent = append(absent, v)
		}
	}
	if len(absent) == 0 {
		return zero, fmt.Errorf("%w: every one of the %d domain values is already in the chromosome",
			framework.ErrInsufficientDomain, domain.Len())
	}
	return absent[rng.IntN(len(absent))], nil
}

// MutationOptions configures a mutation pass.
type MutationOptions[G comparable] struct {
	Rate         float64
	ElitismCount int
	Mutate       MutateFunc[G]
}

// MutatePopulation visits every gene of every individual past the first
// ElitismCount slots and mutates it with probability Rate. The population is
// expected to be the output of CrossoverPopulation, which places the elites
// first. Mutated individuals lose their fitness.
func MutatePopulation[G comparable](rng *rand.Rand, population *framework.Population[G], opts MutationOptions[G]) error {
	if rng == nil {
		return errNoRand
	}
	for i := max(opts.ElitismCount, 0); i < population.Size(); i++ {
		ind, err := population.Individual(i)
		if err != nil {
			return err
		}
		if ind == nil {
			return fmt.Errorf("%w: slot %d is empty", framework.ErrIndexOutOfRange, i)
		}

		mutated := false
		for offset := 0; offset < ind.Len(); offset++ {
			if opts.Rate > rng.Float64() {
				if err := opts.Mutate(rng, ind, offset); err != nil {
					return fmt.Errorf("mutating slot %d gene %d: %w", i, offset, err)
				}
				mutated = true
			}
		}
		if mutated {
			ind.SetFitness(framework.UnsetFitness)
		}
	}
	return nil
}
