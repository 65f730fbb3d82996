package algorithms

import (
	"fmt"
	"math/rand/v2"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

// CrossoverFunc builds one offspring from two parents.
type CrossoverFunc[G comparable] func(rng *rand.Rand, parent1, parent2 *framework.Individual[G]) (*framework.Individual[G], error)

// UniformCrossover takes every gene from either parent with equal probability.
// Suitable for unconstrained chromosomes only.
func UniformCrossover[G comparable](rng *rand.Rand, parent1, parent2 *framework.Individual[G]) (*framework.Individual[G], error) {
	a, b, err := parentChromosomes(parent1, parent2)
	if err != nil {
		return nil, err
	}

	chromosome := make([]G, len(a))
	for i := range chromosome {
		if rng.Float64() < 0.5 {
			chromosome[i] = a[i]
		} else {
			chromosome[i] = b[i]
		}
	}
	return framework.NewIndividual(chromosome), nil
}

// SinglePointCrossover takes [0, cut) from parent1 and [cut, L) from parent2,
// with the cut drawn from [0, L]. Suitable for unconstrained chromosomes only.
func SinglePointCrossover[G comparable](rng *rand.Rand, parent1, parent2 *framework.Individual[G]) (*framework.Individual[G], error) {
	a, b, err := parentChromosomes(parent1, parent2)
	if err != nil {
		return nil, err
	}

	cut := rng.IntN(len(a) + 1)
	chromosome := make([]G, len(a))
	copy(chromosome[:cut], a[:cut])
	copy(chromosome[cut:], b[cut:])
	return framework.NewIndividual(chromosome), nil
}

// SinglePointUniqueCrossover is a single point crossover that never repeats a
// gene. A coin flip decides which parent supplies the head [0, cut); genes of
// the tail already present in the offspring are replaced through
// FindBestGene over both parents.
func SinglePointUniqueCrossover[G comparable](rng *rand.Rand, parent1, parent2 *framework.Individual[G]) (*framework.Individual[G], error) {
	a, b, err := parentChromosomes(parent1, parent2)
	if err != nil {
		return nil, err
	}

	length := len(a)
	cut := rng.IntN(length + 1)
	head, tail := a, b
	if rng.Float64() >= 0.5 {
		head, tail = b, a
	}

	offspring := framework.NewBlankIndividual[G](length)
	for i := 0; i < cut; i++ {
		if err := offspring.SetGene(i, head[i]); err != nil {
			return nil, err
		}
	}
	for i := cut; i < length; i++ {
		gene := tail[i]
		if offspring.ContainsGene(gene) {
			gene = offspring.FindBestGene(a, b)
		}
		if err := offspring.SetGene(i, gene); err != nil {
			return nil, err
		}
	}
	return framework.NewIndividual(offspring.Chromosome()), nil
}

// OrderedCrossover copies a random substring of parent1 in place and fills
// the remaining slots, left to right, with the genes of parent2 taken in
// order starting right after the substring. Both parents must hold the same
// set of genes.
func OrderedCrossover[G comparable](rng *rand.Rand, parent1, parent2 *framework.Individual[G]) (*framework.Individual[G], error) {
	a, b, err := parentChromosomes(parent1, parent2)
	if err != nil {
		return nil, err
	}

	length := len(a)
	start, end := rng.IntN(length), rng.IntN(length)
	if start > end {
		start, end = end, start
	}

	offspring := framework.NewBlankIndividual[G](length)
	filled := make([]bool, length)
	for i := start; i < end; i++ {
		if err := offspring.SetGene(i, a[i]); err != nil {
			return nil, err
		}
		filled[i] = true
	}

	slot := 0
	for i := 0; i < length; i++ {
		gene := b[(i+end)%length]
		if offspring.ContainsGene(gene) {
			continue
		}
		for slot < length && filled[slot] {
			slot++
		}
		if slot == length {
			break
		}
		if err := offspring.SetGene(slot, gene); err != nil {
			return nil, err
		}
		filled[slot] = true
	}
	return framework.NewIndividual(offspring.Chromosome()), nil
}

func parentChromosomes[G comparable](parent1, parent2 *framework.Individual[G]) ([]G, []G, error) {
	if parent1 == nil || parent2 == nil {
		return nil, nil, fmt.Errorf("crossover needs two parents")
	}
	if parent1.Len() != parent2.Len() {
		return nil, nil, fmt.Errorf("%w: parent chromosome lengths %d and %d differ",
			framework.ErrIndexOutOfRange, parent1.Len(), parent2.Len())
	}
	if parent1.Len() == 0 {
		return nil, nil, fmt.Errorf("crossover needs non-empty chromosomes")
	}
	return parent1.Chromosome(), parent2.Chromosome(), nil
}

// CrossoverOptions configures a crossover pass over a ranked population.
type CrossoverOptions[G comparable] struct {
	Rate         float64
	ElitismCount int
	Crossover    CrossoverFunc[G]
	Select       SelectFunc[G]
}

// CrossoverPopulation builds the next population from a ranking. The slot of
// rank i in the result holds either the unchanged rank i individual (elites,
// and non-elites that lost the crossover draw) or its offspring with a
// selected second parent. Elites therefore lead the returned population.
//
// Every slot holds a fresh individual: nothing is shared with the ranked
// population.
func CrossoverPopulation[G comparable](rng *rand.Rand, ranked *framework.Ranked[G], opts CrossoverOptions[G]) (*framework.Population[G], error) {
	if rng == nil {
		return nil, errNoRand
	}
	population := ranked.Population()
	next := framework.NewPopulation[G](ranked.Size())

	for i := 0; i < ranked.Size(); i++ {
		parent1, err := ranked.FittestByOffset(i)
		if err != nil {
			return nil, err
		}

		child := parent1.Clone()
		if i >= opts.ElitismCount && opts.Rate > rng.Float64() {
			parent2, err := opts.Select(rng, population)
			if err != nil {
				return nil, fmt.Errorf("selecting second parent for rank %d: %w", i, err)
			}
			child, err = opts.Crossover(rng, parent1, parent2)
			if err != nil {
				return nil, fmt.Errorf("crossing rank %d: %w", i, err)
			}
		}

		if err := next.SetIndividual(i, child); err != nil {
			return nil, err
		}
	}
	return next, nil
}
