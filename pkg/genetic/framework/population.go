package framework

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// Population is a fixed-size collection of individuals for one generation.
type Population[G comparable] struct {
	individuals []*Individual[G]
	fitness     float64
}

// NewPopulation creates a population of size empty slots, to be filled by an operator.
func NewPopulation[G comparable](size int) *Population[G] {
	return &Population[G]{
		individuals: make([]*Individual[G], size),
		fitness:     UnsetFitness,
	}
}

// NewRandomPopulation fills size slots with independently drawn chromosomes.
func NewRandomPopulation[G comparable](rng *rand.Rand, size, length int, domain Domain[G]) *Population[G] {
	p := NewPopulation[G](size)
	for i := range p.individuals {
		p.individuals[i] = NewRandomIndividual(rng, length, domain)
	}
	return p
}

// NewRandomUniquePopulation fills size slots with chromosomes holding no
// repeated genes.
func NewRandomUniquePopulation[G comparable](rng *rand.Rand, size, length int, domain Domain[G]) (*Population[G], error) {
	p := NewPopulation[G](size)
	for i := range p.individuals {
		ind, err := NewRandomUniqueIndividual(rng, length, domain)
		if err != nil {
			return nil, err
		}
		p.individuals[i] = ind
	}
	return p, nil
}

func (p *Population[G]) Size() int {
	return len(p.individuals)
}

// Individuals returns the slots in their current order. The slice is a copy,
// the individuals are not.
func (p *Population[G]) Individuals() []*Individual[G] {
	out := make([]*Individual[G], len(p.individuals))
	copy(out, p.individuals)
	return out
}

func (p *Population[G]) Individual(offset int) (*Individual[G], error) {
	if offset < 0 || offset >= len(p.individuals) {
		return nil, fmt.Errorf("%w: individual offset %d, population size %d", ErrIndexOutOfRange, offset, len(p.individuals))
	}
	return p.individuals[offset], nil
}

// SetIndividual replaces the slot at offset.
func (p *Population[G]) SetIndividual(offset int, ind *Individual[G]) error {
	if offset < 0 || offset >= len(p.individuals) {
		return fmt.Errorf("%w: individual offset %d, population size %d", ErrIndexOutOfRange, offset, len(p.individuals))
	}
	p.individuals[offset] = ind
	return nil
}

// Shuffle permutes the slot order in place (Fisher-Yates).
func (p *Population[G]) Shuffle(rng *rand.Rand) {
	for i := len(p.individuals) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		p.individuals[i], p.individuals[j] = p.individuals[j], p.individuals[i]
	}
}

// Sort orders the population by fitness, best first, and returns the ranked
// view. Equal fitness keeps the previous relative order. Empty slots go last.
func (p *Population[G]) Sort() *Ranked[G] {
	sort.SliceStable(p.individuals, func(i, j int) bool {
		return rankFitness(p.individuals[i]) > rankFitness(p.individuals[j])
	})
	order := make([]*Individual[G], len(p.individuals))
	copy(order, p.individuals)
	return &Ranked[G]{population: p, order: order}
}

// Fittest scans the population and returns the individual with the highest
// fitness, independently of any previous Sort. Ties go to the earliest slot.
func (p *Population[G]) Fittest() *Individual[G] {
	var best *Individual[G]
	for _, ind := range p.individuals {
		if ind == nil {
			continue
		}
		if best == nil || ind.fitness > best.fitness {
			best = ind
		}
	}
	return best
}

// Fitness returns the aggregate fitness set by the last evaluation pass.
func (p *Population[G]) Fitness() float64 {
	return p.fitness
}

func (p *Population[G]) SetFitness(fitness float64) {
	p.fitness = fitness
}

func rankFitness[G comparable](ind *Individual[G]) float64 {
	if ind == nil {
		return math.Inf(-1)
	}
	return ind.fitness
}

// Ranked is the fitness ordering of a population captured by Sort.
//
// The order is a snapshot: later shuffles of the population, like the ones
// done by tournament selection, don't change it.
type Ranked[G comparable] struct {
	population *Population[G]
	order      []*Individual[G]
}

// Population returns the population this ranking was taken from.
func (r *Ranked[G]) Population() *Population[G] {
	return r.population
}

func (r *Ranked[G]) Size() int {
	return len(r.order)
}

// FittestByOffset returns the individual at rank k, 0 being the best.
func (r *Ranked[G]) FittestByOffset(k int) (*Individual[G], error) {
	if k < 0 || k >= len(r.order) {
		return nil, fmt.Errorf("%w: rank %d, population size %d", ErrIndexOutOfRange, k, len(r.order))
	}
	return r.order[k], nil
}
