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
	"fmt"

	"sigs.k8s.io/yaml"
)

// Decode parses a YAML or JSON document into defaulted args. Unknown fields
// are rejected.
func Decode(data []byte) (*GeneticAlgorithmArgs, error) {
	args := &GeneticAlgorithmArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", Kind, err)
	}
	if args.Kind != "" && args.Kind != Kind {
		return nil, fmt.Errorf("want kind %s, got %s", Kind, args.Kind)
	}
	if args.APIVersion != "" && args.APIVersion != SchemeGroupVersion.String() {
		return nil, fmt.Errorf("want apiVersion %s, got %s", SchemeGroupVersion, args.APIVersion)
	}
	SetDefaults_GeneticAlgorithmArgs(args)
	return args, nil
}
