package algorithms

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

var errNoRand = errors.New("random source is required")

// SelectFunc picks one parent from the population.
type SelectFunc[G comparable] func(rng *rand.Rand, population *framework.Population[G]) (*framework.Individual[G], error)

// TournamentSelect shuffles the whole population, takes the first
// tournamentSize members and returns the best of them.
//
// The shuffle is visible to the caller: the population slot order changes
// on every call.
func TournamentSelect[G comparable](rng *rand.Rand, population *framework.Population[G], tournamentSize int) (*framework.Individual[G], error) {
	if rng == nil {
		return nil, errNoRand
	}
	if tournamentSize < 1 || tournamentSize > population.Size() {
		return nil, fmt.Errorf("%w: tournament size %d, population size %d",
			framework.ErrIndexOutOfRange, tournamentSize, population.Size())
	}

	population.Shuffle(rng)

	tournament := framework.NewPopulation[G](tournamentSize)
	for i := 0; i < tournamentSize; i++ {
		contender, err := population.Individual(i)
		if err != nil {
			return nil, err
		}
		if err := tournament.SetIndividual(i, contender); err != nil {
			return nil, err
		}
	}

	return tournament.Sort().FittestByOffset(0)
}

// Tournament binds the tournament size into a SelectFunc.
func Tournament[G comparable](tournamentSize int) SelectFunc[G] {
	return func(rng *rand.Rand, population *framework.Population[G]) (*framework.Individual[G], error) {
		return TournamentSelect(rng, population, tournamentSize)
	}
}

// RouletteSelect spins a wheel where every individual owns a slice
// proportional to its fitness. The population fitness must hold the sum of
// the member fitness values, all of them non-negative.
func RouletteSelect[G comparable](rng *rand.Rand, population *framework.Population[G]) (*framework.Individual[G], error) {
	if rng == nil {
		return nil, errNoRand
	}
	total := population.Fitness()
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: population fitness %v", framework.ErrInvalidAggregate, total)
	}

	individuals := population.Individuals()
	position := rng.Float64() * total

	spin := 0.0
	for _, ind := range individuals {
		if ind == nil || ind.Fitness() <= 0 {
			continue
		}
		spin += ind.Fitness()
		if spin >= position {
			return ind, nil
		}
	}

	// Rounding can leave the spin just short of the position.
	return individuals[len(individuals)-1], nil
}

// Roulette adapts RouletteSelect to SelectFunc.
func Roulette[G comparable]() SelectFunc[G] {
	return RouletteSelect[G]
}
