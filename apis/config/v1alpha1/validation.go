/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	validSelections = []string{string(SelectionTournament), string(SelectionRoulette)}
	validCrossovers = []string{"", string(CrossoverUniform), string(CrossoverSinglePoint), string(CrossoverSinglePointUnique), string(CrossoverOrdered)}
	validMutations  = []string{string(MutationReset), string(MutationSwap)}
	validAggregates = []string{string(AggregateSum), string(AggregateMean)}
)

// ValidateGeneticAlgorithmArgs checks defaulted args and returns every
// problem found as an aggregate error.
func ValidateGeneticAlgorithmArgs(path *field.Path, args *GeneticAlgorithmArgs) error {
	var allErrs field.ErrorList

	if args.PopulationSize <= 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("populationSize"), args.PopulationSize, "must be greater than 0"))
	}
	allErrs = append(allErrs, validateRate(path.Child("mutationRate"), args.MutationRate)...)
	allErrs = append(allErrs, validateRate(path.Child("crossoverRate"), args.CrossoverRate)...)

	if args.ElitismCount == nil {
		allErrs = append(allErrs, field.Required(path.Child("elitismCount"), ""))
	} else if *args.ElitismCount < 0 || *args.ElitismCount > args.PopulationSize {
		allErrs = append(allErrs, field.Invalid(path.Child("elitismCount"), *args.ElitismCount, "must be between 0 and populationSize"))
	}

	if !contains(validSelections, string(args.Selection)) {
		allErrs = append(allErrs, field.NotSupported(path.Child("selection"), args.Selection, validSelections))
	}
	if args.Selection == SelectionTournament && (args.TournamentSize < 1 || args.TournamentSize > args.PopulationSize) {
		allErrs = append(allErrs, field.Invalid(path.Child("tournamentSize"), args.TournamentSize, "must be between 1 and populationSize"))
	}
	if !contains(validCrossovers, string(args.Crossover)) {
		allErrs = append(allErrs, field.NotSupported(path.Child("crossover"), args.Crossover, validCrossovers[1:]))
	}
	if !contains(validMutations, string(args.Mutation)) {
		allErrs = append(allErrs, field.NotSupported(path.Child("mutation"), args.Mutation, validMutations))
	}
	if !contains(validAggregates, string(args.Aggregate)) {
		allErrs = append(allErrs, field.NotSupported(path.Child("aggregate"), args.Aggregate, validAggregates))
	}
	if args.Selection == SelectionRoulette && args.Aggregate != AggregateSum {
		allErrs = append(allErrs, field.Invalid(path.Child("aggregate"), args.Aggregate, "roulette selection requires the Sum aggregate"))
	}

	if args.MaxGenerations < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("maxGenerations"), args.MaxGenerations, "must not be negative"))
	}
	if args.TargetFitness != nil && !isFinite(*args.TargetFitness) {
		allErrs = append(allErrs, field.Invalid(path.Child("targetFitness"), *args.TargetFitness, "must be a finite number"))
	}
	if args.FitnessEpsilon != nil && (*args.FitnessEpsilon < 0 || !isFinite(*args.FitnessEpsilon)) {
		allErrs = append(allErrs, field.Invalid(path.Child("fitnessEpsilon"), *args.FitnessEpsilon, "must be a finite, non-negative number"))
	}

	return allErrs.ToAggregate()
}

func validateRate(path *field.Path, rate *float64) field.ErrorList {
	if rate == nil {
		return field.ErrorList{field.Required(path, "")}
	}
	if *rate < 0 || *rate > 1 || math.IsNaN(*rate) {
		return field.ErrorList{field.Invalid(path, *rate, "must be between 0 and 1")}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
