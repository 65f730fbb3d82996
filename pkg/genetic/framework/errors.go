package framework

import "errors"

var (
	// ErrIndexOutOfRange is returned when a gene or individual offset falls
	// outside the valid bounds. It always indicates a caller bug.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInsufficientDomain is returned when a uniqueness constrained draw
	// cannot be satisfied by the remaining domain values.
	ErrInsufficientDomain = errors.New("insufficient domain")

	// ErrInvalidAggregate is returned by fitness proportionate selection when
	// the population fitness is zero, negative or not a number.
	ErrInvalidAggregate = errors.New("invalid aggregate fitness")

	// ErrInvalidFitness is returned when an evaluator produces NaN or Inf.
	ErrInvalidFitness = errors.New("invalid fitness")

	// ErrInvalidConfig wraps configuration problems detected at construction.
	ErrInvalidConfig = errors.New("invalid configuration")
)
