package algorithms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxGenerations(t *testing.T) {
	cond := MaxGenerations[int](3)
	p := populationWithFitness(1)

	assert.False(t, cond.Met(2, p))
	assert.True(t, cond.Met(3, p))
	assert.True(t, cond.Met(4, p))
}

func TestTargetFitness(t *testing.T) {
	cond := TargetFitness[int](1, 1e-6)

	assert.False(t, cond.Met(1, populationWithFitness(0.2, 0.9)))
	assert.False(t, cond.Met(1, populationWithFitness(0.2, 1-1e-5)))
	assert.True(t, cond.Met(1, populationWithFitness(0.2, 1-1e-9)))
	assert.True(t, cond.Met(1, populationWithFitness(0.2, 1.1)))
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cond := Cancelled[int](ctx)
	p := populationWithFitness(1)

	assert.False(t, cond.Met(1, p))
	cancel()
	assert.True(t, cond.Met(1, p))
}

func TestAnyReturnsFirstMet(t *testing.T) {
	p := populationWithFitness(1)

	_, ok := Any(1, p, MaxGenerations[int](5), TargetFitness[int](2, 0))
	assert.False(t, ok)

	cond, ok := Any(5, p, TargetFitness[int](1, 0), MaxGenerations[int](5))
	assert.True(t, ok)
	assert.Equal(t, "TargetFitness", cond.Name)

	_, ok = Any[int](10, p)
	assert.False(t, ok)
}
