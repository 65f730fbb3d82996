package benchmarks

import (
	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

const (
	OneMaxName = "OneMax"
)

// OneMax is the all-ones problem: evolve a bit string towards every gene
// being 1. Fitness is the fraction of ones, so the optimum is 1.
type OneMax struct {
	length int
}

func NewOneMax(length int) *OneMax {
	return &OneMax{
		length,
	}
}

func (p *OneMax) Name() string {
	return OneMaxName
}

func (p *OneMax) Domain() framework.Domain[int] {
	return framework.NewDomain(0, 1)
}

func (p *OneMax) ChromosomeLength() int {
	return p.length
}

// This is an unconstrained problem
func (p *OneMax) Constraint() framework.GeneConstraint {
	return framework.Unconstrained
}

func (p *OneMax) Fitness(ind *framework.Individual[int]) float64 {
	if ind.Len() == 0 {
		return 0
	}
	ones := 0
	for _, g := range ind.Chromosome() {
		if g == 1 {
			ones++
		}
	}
	return float64(ones) / float64(ind.Len())
}

func (p *OneMax) Optimum() (float64, bool) {
	return 1, true
}
