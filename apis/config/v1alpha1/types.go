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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// GroupName is the group name used for the run configuration.
const GroupName = "genetic.ga-tests.youstinus.github.com"

// SchemeGroupVersion is the group version of GeneticAlgorithmArgs.
var SchemeGroupVersion = schema.GroupVersion{Group: GroupName, Version: "v1alpha1"}

// Kind of the run configuration document.
const Kind = "GeneticAlgorithmArgs"

// SelectionType names a parent selection operator.
type SelectionType string

const (
	// SelectionTournament shuffles the population and keeps the best of the first TournamentSize members.
	SelectionTournament SelectionType = "Tournament"
	// SelectionRoulette picks a parent with probability proportional to its fitness share.
	SelectionRoulette SelectionType = "Roulette"
)

// CrossoverType names a crossover policy. The empty value selects the
// policy matching the problem's gene constraint.
type CrossoverType string

const (
	CrossoverUniform           CrossoverType = "Uniform"
	CrossoverSinglePoint       CrossoverType = "SinglePoint"
	CrossoverSinglePointUnique CrossoverType = "SinglePointUnique"
	CrossoverOrdered           CrossoverType = "Ordered"
)

// MutationType names a mutation policy. The empty value means Reset.
type MutationType string

const (
	MutationReset MutationType = "Reset"
	MutationSwap  MutationType = "Swap"
)

// AggregateType selects how per-individual fitness values are folded into
// the population fitness.
type AggregateType string

const (
	AggregateSum  AggregateType = "Sum"
	AggregateMean AggregateType = "Mean"
)

// GeneticAlgorithmArgs holds the arguments used to configure a genetic algorithm run.
type GeneticAlgorithmArgs struct {
	metav1.TypeMeta `json:",inline"`

	// PopulationSize is the number of individuals in every generation.
	PopulationSize int `json:"populationSize,omitempty"`

	// MutationRate is the per-gene probability of mutation, in [0, 1].
	MutationRate *float64 `json:"mutationRate,omitempty"`

	// CrossoverRate is the per-individual probability of crossover, in [0, 1].
	CrossoverRate *float64 `json:"crossoverRate,omitempty"`

	// ElitismCount is the number of top ranked individuals copied unchanged
	// into the next generation.
	ElitismCount *int `json:"elitismCount,omitempty"`

	// TournamentSize is the number of contenders in tournament selection.
	TournamentSize int `json:"tournamentSize,omitempty"`

	Selection SelectionType `json:"selection,omitempty"`
	Crossover CrossoverType `json:"crossover,omitempty"`
	Mutation  MutationType  `json:"mutation,omitempty"`
	Aggregate AggregateType `json:"aggregate,omitempty"`

	// MaxGenerations stops the run after that many generations. Zero is
	// defaulted, every run has a ceiling.
	MaxGenerations int `json:"maxGenerations,omitempty"`

	// TargetFitness stops the run once the best fitness reaches it, less
	// FitnessEpsilon. When unset the problem optimum is used, if known.
	TargetFitness  *float64 `json:"targetFitness,omitempty"`
	FitnessEpsilon *float64 `json:"fitnessEpsilon,omitempty"`

	// Seed makes runs reproducible. When unset a random seed is drawn.
	Seed *uint64 `json:"seed,omitempty"`

	// CacheFitness memoizes evaluator results per chromosome.
	CacheFitness bool `json:"cacheFitness,omitempty"`
}
