package framework

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// UnsetFitness is the fitness of an individual that was never evaluated.
const UnsetFitness = -1.0

// Individual represents a candidate solution in the population.
//
// The chromosome length is fixed at construction. Individuals built with
// NewBlankIndividual track which slots were assigned so that ContainsGene
// ignores the placeholders.
type Individual[G comparable] struct {
	chromosome []G
	assigned   []bool
	fitness    float64
}

// NewIndividual wraps the given chromosome. No validation is performed, the
// caller guarantees the chromosome satisfies the problem constraints.
func NewIndividual[G comparable](chromosome []G) *Individual[G] {
	return &Individual[G]{
		chromosome: chromosome,
		fitness:    UnsetFitness,
	}
}

// NewRandomIndividual draws every gene independently from domain.
func NewRandomIndividual[G comparable](rng *rand.Rand, length int, domain Domain[G]) *Individual[G] {
	chromosome := make([]G, length)
	for i := range chromosome {
		chromosome[i] = domain.Random(rng)
	}
	return NewIndividual(chromosome)
}

// NewRandomUniqueIndividual draws length distinct values from domain
// without replacement.
func NewRandomUniqueIndividual[G comparable](rng *rand.Rand, length int, domain Domain[G]) (*Individual[G], error) {
	if domain.Len() < length {
		return nil, fmt.Errorf("%w: %d distinct genes requested from a domain of %d values",
			ErrInsufficientDomain, length, domain.Len())
	}

	// Partial Fisher-Yates over the domain positions.
	pool := domain.Values()
	chromosome := make([]G, length)
	for i := 0; i < length; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		chromosome[i] = pool[i]
	}
	return NewIndividual(chromosome), nil
}

// NewBlankIndividual returns an offspring buffer of the given length with
// every slot unassigned.
func NewBlankIndividual[G comparable](length int) *Individual[G] {
	return &Individual[G]{
		chromosome: make([]G, length),
		assigned:   make([]bool, length),
		fitness:    UnsetFitness,
	}
}

func (ind *Individual[G]) Len() int {
	return len(ind.chromosome)
}

// Chromosome returns a copy of the gene sequence.
func (ind *Individual[G]) Chromosome() []G {
	out := make([]G, len(ind.chromosome))
	copy(out, ind.chromosome)
	return out
}

func (ind *Individual[G]) Gene(offset int) (G, error) {
	if offset < 0 || offset >= len(ind.chromosome) {
		var zero G
		return zero, fmt.Errorf("%w: gene offset %d, chromosome length %d", ErrIndexOutOfRange, offset, len(ind.chromosome))
	}
	return ind.chromosome[offset], nil
}

func (ind *Individual[G]) SetGene(offset int, gene G) error {
	if offset < 0 || offset >= len(ind.chromosome) {
		return fmt.Errorf("%w: gene offset %d, chromosome length %d", ErrIndexOutOfRange, offset, len(ind.chromosome))
	}
	ind.chromosome[offset] = gene
	if ind.assigned != nil {
		ind.assigned[offset] = true
	}
	return nil
}

// ContainsGene reports whether gene is present in an assigned slot.
func (ind *Individual[G]) ContainsGene(gene G) bool {
	for i, g := range ind.chromosome {
		if ind.assigned != nil && !ind.assigned[i] {
			continue
		}
		if g == gene {
			return true
		}
	}
	return false
}

// FindBestGene walks both sources from the end towards the start and returns
// the first value not yet present in this individual. It falls back to a[0]
// when every value of both sources is already present, and to the zero value
// when a is empty.
func (ind *Individual[G]) FindBestGene(a, b []G) G {
	n := min(len(a), len(b))
	for i := n - 1; i >= 0; i-- {
		if !ind.ContainsGene(a[i]) {
			return a[i]
		}
		if !ind.ContainsGene(b[i]) {
			return b[i]
		}
	}
	if len(a) == 0 {
		var zero G
		return zero
	}
	return a[0]
}

func (ind *Individual[G]) Fitness() float64 {
	return ind.fitness
}

func (ind *Individual[G]) SetFitness(fitness float64) {
	ind.fitness = fitness
}

// Clone returns a deep copy, fitness included.
func (ind *Individual[G]) Clone() *Individual[G] {
	c := &Individual[G]{
		chromosome: ind.Chromosome(),
		fitness:    ind.fitness,
	}
	if ind.assigned != nil {
		c.assigned = make([]bool, len(ind.assigned))
		copy(c.assigned, ind.assigned)
	}
	return c
}

func (ind *Individual[G]) String() string {
	var sb strings.Builder
	for i, g := range ind.chromosome {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprint(&sb, g)
	}
	return sb.String()
}
