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

import "k8s.io/utils/ptr"

var (
	DefaultPopulationSize = 100
	DefaultMutationRate   = 0.001
	DefaultCrossoverRate  = 0.95
	DefaultElitismCount   = 2
	DefaultTournamentSize = 5
	DefaultMaxGenerations = 1000
	DefaultFitnessEpsilon = 1e-6
)

// SetDefaults_GeneticAlgorithmArgs fills every unset field.
func SetDefaults_GeneticAlgorithmArgs(args *GeneticAlgorithmArgs) {
	if args.APIVersion == "" {
		args.APIVersion = SchemeGroupVersion.String()
	}
	if args.Kind == "" {
		args.Kind = Kind
	}
	if args.PopulationSize == 0 {
		args.PopulationSize = DefaultPopulationSize
	}
	if args.MutationRate == nil {
		args.MutationRate = ptr.To(DefaultMutationRate)
	}
	if args.CrossoverRate == nil {
		args.CrossoverRate = ptr.To(DefaultCrossoverRate)
	}
	if args.ElitismCount == nil {
		args.ElitismCount = ptr.To(DefaultElitismCount)
	}
	if args.TournamentSize == 0 {
		args.TournamentSize = DefaultTournamentSize
	}
	if args.Selection == "" {
		args.Selection = SelectionTournament
	}
	if args.Mutation == "" {
		args.Mutation = MutationReset
	}
	if args.Aggregate == "" {
		args.Aggregate = AggregateSum
	}
	if args.MaxGenerations == 0 {
		args.MaxGenerations = DefaultMaxGenerations
	}
	if args.FitnessEpsilon == nil {
		args.FitnessEpsilon = ptr.To(DefaultFitnessEpsilon)
	}
}
