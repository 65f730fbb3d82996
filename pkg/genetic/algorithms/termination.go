package algorithms

import (
	"context"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

// Termination is a named stop predicate checked once per generation, after
// the population has been evaluated. generation counts evaluated
// populations, the initial one being generation 1.
type Termination[G comparable] struct {
	Name string
	Met  func(generation int, population *framework.Population[G]) bool
}

// MaxGenerations stops once n generations have been evaluated.
func MaxGenerations[G comparable](n int) Termination[G] {
	return Termination[G]{
		Name: "MaxGenerations",
		Met: func(generation int, _ *framework.Population[G]) bool {
			return generation >= n
		},
	}
}

// TargetFitness stops once the best individual reaches target, less
// epsilon. Overshooting the target also counts.
func TargetFitness[G comparable](target, epsilon float64) Termination[G] {
	return Termination[G]{
		Name: "TargetFitness",
		Met: func(_ int, population *framework.Population[G]) bool {
			best := population.Fittest()
			return best != nil && best.Fitness() >= target-epsilon
		},
	}
}

// Cancelled stops once ctx is done. The run loop also checks its own
// context, this one lets a host attach an independent cancellation flag.
func Cancelled[G comparable](ctx context.Context) Termination[G] {
	return Termination[G]{
		Name: "Cancelled",
		Met: func(int, *framework.Population[G]) bool {
			return ctx.Err() != nil
		},
	}
}

// Any returns the first condition met, if any.
func Any[G comparable](generation int, population *framework.Population[G], conditions ...Termination[G]) (Termination[G], bool) {
	for _, c := range conditions {
		if c.Met(generation, population) {
			return c, true
		}
	}
	return Termination[G]{}, false
}
