package algorithms

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

// GenerationStats summarizes the fitness of one evaluated population.
type GenerationStats struct {
	Generation int
	Best       float64
	Worst      float64
	Mean       float64
	StdDev     float64
	// Aggregate is the population fitness as set by the evaluation pass.
	Aggregate float64
	// Evaluations counts evaluator calls since the start of the run.
	Evaluations int
	Elapsed     time.Duration
}

// ComputeStats returns the statistics of an evaluated population.
func ComputeStats[G comparable](generation int, population *framework.Population[G]) GenerationStats {
	values := make([]float64, 0, population.Size())
	for _, ind := range population.Individuals() {
		if ind != nil {
			values = append(values, ind.Fitness())
		}
	}

	s := GenerationStats{
		Generation: generation,
		Aggregate:  population.Fitness(),
	}
	if len(values) == 0 {
		return s
	}

	s.Best = floats.Max(values)
	s.Worst = floats.Min(values)
	if len(values) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	} else {
		s.Mean = values[0]
	}
	return s
}
