package framework

import (
	"fmt"
	"math/rand/v2"
)

// Problem describes the contract a specific optimization problem needs to implement.
type Problem[G comparable] interface {
	Name() string

	Domain() Domain[G]
	ChromosomeLength() int
	Constraint() GeneConstraint
	Fitness(*Individual[G]) float64

	// Optimum is optional since the best attainable fitness is unknown for
	// open-ended problems. When there isn't one, just return false.
	Optimum() (float64, bool)
}

// Evaluator computes the fitness of a single individual. It is expected to
// be pure and to return a finite, non-negative value.
type Evaluator[G comparable] func(*Individual[G]) float64

// GeneConstraint declares which validity rule a chromosome must keep across
// the genetic operators.
type GeneConstraint int

const (
	// Unconstrained genes may repeat freely (e.g. binary chromosomes).
	Unconstrained GeneConstraint = iota
	// Unique genes may appear at most once per chromosome. When the domain
	// has exactly ChromosomeLength values this is a permutation.
	Unique
)

func (c GeneConstraint) String() string {
	switch c {
	case Unconstrained:
		return "Unconstrained"
	case Unique:
		return "Unique"
	default:
		return fmt.Sprintf("GeneConstraint(%d)", int(c))
	}
}

// Domain is the finite, ordered set of values a gene can take.
type Domain[G comparable] struct {
	values []G
	index  map[G]int
}

// NewDomain builds a domain from the given values. Repeated values are kept
// only once, in order of first appearance.
func NewDomain[G comparable](values ...G) Domain[G] {
	d := Domain[G]{
		values: make([]G, 0, len(values)),
		index:  make(map[G]int, len(values)),
	}
	for _, v := range values {
		if _, ok := d.index[v]; ok {
			continue
		}
		d.index[v] = len(d.values)
		d.values = append(d.values, v)
	}
	return d
}

// IntRange returns the domain {lo, lo+1, ..., hi}.
func IntRange(lo, hi int) Domain[int] {
	if hi < lo {
		return NewDomain[int]()
	}
	values := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		values = append(values, v)
	}
	return NewDomain(values...)
}

func (d Domain[G]) Len() int {
	return len(d.values)
}

func (d Domain[G]) At(i int) G {
	return d.values[i]
}

// Values returns a copy of the domain values.
func (d Domain[G]) Values() []G {
	out := make([]G, len(d.values))
	copy(out, d.values)
	return out
}

func (d Domain[G]) Contains(v G) bool {
	_, ok := d.index[v]
	return ok
}

// Random draws a value uniformly from the domain.
func (d Domain[G]) Random(rng *rand.Rand) G {
	return d.values[rng.IntN(len(d.values))]
}

// RandomOther draws a value uniformly from the domain excluding v. If the
// domain has a single value, that value is returned.
func (d Domain[G]) RandomOther(rng *rand.Rand, v G) G {
	n := len(d.values)
	if n < 2 {
		return d.values[0]
	}
	idx, ok := d.index[v]
	if !ok {
		return d.Random(rng)
	}
	j := rng.IntN(n - 1)
	if j >= idx {
		j++
	}
	return d.values[j]
}
