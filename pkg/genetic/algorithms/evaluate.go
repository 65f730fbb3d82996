package algorithms

import (
	"fmt"
	"math"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

// Aggregate folds the member fitness values into the population fitness.
type Aggregate int

const (
	AggregateSum Aggregate = iota
	AggregateMean
)

// Evaluate sets the fitness of every individual and the aggregate fitness of
// the population. It returns the number of evaluator calls.
func Evaluate[G comparable](population *framework.Population[G], evaluator framework.Evaluator[G], aggregate Aggregate) (int, error) {
	total := 0.0
	calls := 0
	for i, ind := range population.Individuals() {
		if ind == nil {
			return calls, fmt.Errorf("%w: slot %d is empty", framework.ErrIndexOutOfRange, i)
		}
		fitness := evaluator(ind)
		calls++
		if math.IsNaN(fitness) || math.IsInf(fitness, 0) {
			return calls, fmt.Errorf("%w: slot %d evaluated to %v", framework.ErrInvalidFitness, i, fitness)
		}
		ind.SetFitness(fitness)
		total += fitness
	}

	if aggregate == AggregateMean && population.Size() > 0 {
		total /= float64(population.Size())
	}
	population.SetFitness(total)
	return calls, nil
}
