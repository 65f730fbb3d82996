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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"
)

func TestSetDefaults(t *testing.T) {
	args := &GeneticAlgorithmArgs{}
	SetDefaults_GeneticAlgorithmArgs(args)

	want := &GeneticAlgorithmArgs{
		TypeMeta: metav1.TypeMeta{
			APIVersion: SchemeGroupVersion.String(),
			Kind:       Kind,
		},
		PopulationSize: 100,
		MutationRate:   ptr.To(0.001),
		CrossoverRate:  ptr.To(0.95),
		ElitismCount:   ptr.To(2),
		TournamentSize: 5,
		Selection:      SelectionTournament,
		Mutation:       MutationReset,
		Aggregate:      AggregateSum,
		MaxGenerations: 1000,
		FitnessEpsilon: ptr.To(1e-6),
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("unexpected defaults (-want +got):\n%s", diff)
	}
	assert.NoError(t, ValidateGeneticAlgorithmArgs(field.NewPath("args"), args))
}

func TestDefaultsKeepExplicitZeroes(t *testing.T) {
	args := &GeneticAlgorithmArgs{
		MutationRate:  ptr.To(0.0),
		CrossoverRate: ptr.To(0.0),
		ElitismCount:  ptr.To(0),
		TargetFitness: ptr.To(1.0),
	}
	SetDefaults_GeneticAlgorithmArgs(args)

	assert.Equal(t, 0.0, *args.MutationRate)
	assert.Equal(t, 0.0, *args.CrossoverRate)
	assert.Equal(t, 0, *args.ElitismCount)
	assert.Equal(t, DefaultMaxGenerations, args.MaxGenerations)
}

func TestValidateGeneticAlgorithmArgs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GeneticAlgorithmArgs)
		wantErr string
	}{
		{
			name:    "negative population",
			mutate:  func(a *GeneticAlgorithmArgs) { a.PopulationSize = -1 },
			wantErr: "args.populationSize",
		},
		{
			name:    "mutation rate above one",
			mutate:  func(a *GeneticAlgorithmArgs) { a.MutationRate = ptr.To(1.5) },
			wantErr: "args.mutationRate",
		},
		{
			name:    "negative crossover rate",
			mutate:  func(a *GeneticAlgorithmArgs) { a.CrossoverRate = ptr.To(-0.1) },
			wantErr: "args.crossoverRate",
		},
		{
			name:    "elitism larger than population",
			mutate:  func(a *GeneticAlgorithmArgs) { a.ElitismCount = ptr.To(101) },
			wantErr: "args.elitismCount",
		},
		{
			name:    "negative elitism",
			mutate:  func(a *GeneticAlgorithmArgs) { a.ElitismCount = ptr.To(-1) },
			wantErr: "args.elitismCount",
		},
		{
			name:    "tournament larger than population",
			mutate:  func(a *GeneticAlgorithmArgs) { a.TournamentSize = 200 },
			wantErr: "args.tournamentSize",
		},
		{
			name:    "unknown selection",
			mutate:  func(a *GeneticAlgorithmArgs) { a.Selection = "Rank" },
			wantErr: "args.selection",
		},
		{
			name:    "unknown crossover",
			mutate:  func(a *GeneticAlgorithmArgs) { a.Crossover = "TwoPoint" },
			wantErr: "args.crossover",
		},
		{
			name:    "unknown mutation",
			mutate:  func(a *GeneticAlgorithmArgs) { a.Mutation = "Gauss" },
			wantErr: "args.mutation",
		},
		{
			name: "roulette with mean aggregate",
			mutate: func(a *GeneticAlgorithmArgs) {
				a.Selection = SelectionRoulette
				a.Aggregate = AggregateMean
			},
			wantErr: "roulette selection requires the Sum aggregate",
		},
		{
			name:    "negative epsilon",
			mutate:  func(a *GeneticAlgorithmArgs) { a.FitnessEpsilon = ptr.To(-1.0) },
			wantErr: "args.fitnessEpsilon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := &GeneticAlgorithmArgs{}
			SetDefaults_GeneticAlgorithmArgs(args)
			tt.mutate(args)

			err := ValidateGeneticAlgorithmArgs(field.NewPath("args"), args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsEveryError(t *testing.T) {
	args := &GeneticAlgorithmArgs{}
	SetDefaults_GeneticAlgorithmArgs(args)
	args.MutationRate = ptr.To(2.0)
	args.CrossoverRate = ptr.To(2.0)

	err := ValidateGeneticAlgorithmArgs(field.NewPath("args"), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "args.mutationRate")
	assert.Contains(t, err.Error(), "args.crossoverRate")
}

func TestDecode(t *testing.T) {
	data := []byte(`
apiVersion: genetic.ga-tests.youstinus.github.com/v1alpha1
kind: GeneticAlgorithmArgs
populationSize: 50
mutationRate: 0.05
crossoverRate: 0.3
elitismCount: 1
tournamentSize: 5
crossover: SinglePointUnique
maxGenerations: 200
targetFitness: 1
seed: 7
`)

	args, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 50, args.PopulationSize)
	assert.Equal(t, 0.05, *args.MutationRate)
	assert.Equal(t, 0.3, *args.CrossoverRate)
	assert.Equal(t, 1, *args.ElitismCount)
	assert.Equal(t, CrossoverSinglePointUnique, args.Crossover)
	assert.Equal(t, 200, args.MaxGenerations)
	assert.Equal(t, uint64(7), *args.Seed)
	assert.Equal(t, AggregateSum, args.Aggregate)
	assert.NoError(t, ValidateGeneticAlgorithmArgs(field.NewPath("args"), args))
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]string{
		"unknown field": "populationSize: 10\ngenerations: 5\n",
		"wrong kind":    "kind: Pod\n",
		"wrong version": "apiVersion: v1\n",
		"bad yaml":      "populationSize: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			assert.Error(t, err)
		})
	}
}
