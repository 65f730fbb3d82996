package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/youstinus/ga-tests/apis/config/v1alpha1"
	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

const (
	Name = "GeneticAlgorithm"
)

// State is the lifecycle stage of a GeneticAlgorithm.
type State int

const (
	// StateInitialized means the population was built but never evaluated.
	StateInitialized State = iota
	// StateEvaluated means every individual and the aggregate fitness are current.
	StateEvaluated
	// StateEvolving means crossover and mutation produced a population that
	// still has to be evaluated.
	StateEvolving
	// StateTerminated means a termination condition held. It is final.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "Initialized"
	case StateEvaluated:
		return "Evaluated"
	case StateEvolving:
		return "Evolving"
	case StateTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ReasonCancelled is the Result reason when the run context ends first.
const ReasonCancelled = "Cancelled"

// Option customizes a GeneticAlgorithm.
type Option[G comparable] func(*GeneticAlgorithm[G])

// WithRand sets the random source shared by every operator. It overrides
// the seed from the args.
func WithRand[G comparable](rng *rand.Rand) Option[G] {
	return func(g *GeneticAlgorithm[G]) {
		g.rng = rng
	}
}

func WithClock[G comparable](c clock.PassiveClock) Option[G] {
	return func(g *GeneticAlgorithm[G]) {
		g.clock = c
	}
}

// WithLogger sets the logger. By default Run uses the logger of its context.
func WithLogger[G comparable](logger logr.Logger) Option[G] {
	return func(g *GeneticAlgorithm[G]) {
		g.logger = logger
		g.explicitLogger = true
	}
}

// WithTermination adds stop conditions on top of the ones derived from the args.
func WithTermination[G comparable](conditions ...Termination[G]) Option[G] {
	return func(g *GeneticAlgorithm[G]) {
		g.terminations = append(g.terminations, conditions...)
	}
}

// WithObserver registers a callback invoked after every evaluation pass.
func WithObserver[G comparable](observer func(GenerationStats)) Option[G] {
	return func(g *GeneticAlgorithm[G]) {
		g.observers = append(g.observers, observer)
	}
}

// WithEvaluator replaces the problem's fitness function, for instance with
// one bound to auxiliary data.
func WithEvaluator[G comparable](evaluator framework.Evaluator[G]) Option[G] {
	return func(g *GeneticAlgorithm[G]) {
		g.evaluator = evaluator
	}
}

// GeneticAlgorithm drives a population through generations of crossover,
// mutation and evaluation until a termination condition holds.
type GeneticAlgorithm[G comparable] struct {
	args    v1alpha1.GeneticAlgorithmArgs
	problem framework.Problem[G]

	evaluator framework.Evaluator[G]
	cache     *CachedEvaluator[G]
	selection SelectFunc[G]
	crossover CrossoverFunc[G]
	mutate    MutateFunc[G]
	aggregate Aggregate

	terminations []Termination[G]
	observers    []func(GenerationStats)

	rng            *rand.Rand
	clock          clock.PassiveClock
	logger         logr.Logger
	explicitLogger bool

	state       State
	population  *framework.Population[G]
	generation  int
	evaluations int
	started     time.Time
	history     []GenerationStats
	reason      string
}

// Result is the outcome of a run.
type Result[G comparable] struct {
	Best        *framework.Individual[G]
	Population  *framework.Population[G]
	Generations int
	Evaluations int
	Elapsed     time.Duration
	// Reason is the name of the termination condition that ended the run.
	Reason  string
	History []GenerationStats
}

// New validates args against problem and builds the initial population.
// Configuration problems are reported here rather than mid-run.
func New[G comparable](args *v1alpha1.GeneticAlgorithmArgs, problem framework.Problem[G], opts ...Option[G]) (*GeneticAlgorithm[G], error) {
	if args == nil {
		args = &v1alpha1.GeneticAlgorithmArgs{}
	}
	g := &GeneticAlgorithm[G]{
		args:      *args,
		problem:   problem,
		evaluator: problem.Fitness,
		clock:     clock.RealClock{},
		logger:    klog.Background(),
	}
	v1alpha1.SetDefaults_GeneticAlgorithmArgs(&g.args)
	if err := v1alpha1.ValidateGeneticAlgorithmArgs(field.NewPath(v1alpha1.Kind), &g.args); err != nil {
		return nil, fmt.Errorf("%w: %v", framework.ErrInvalidConfig, err)
	}

	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := rand.Uint64()
		if g.args.Seed != nil {
			seed = *g.args.Seed
		}
		g.rng = rand.New(rand.NewPCG(seed, seed))
	}

	if err := g.resolveOperators(); err != nil {
		return nil, err
	}
	g.resolveTerminations()

	if g.args.CacheFitness {
		g.cache = NewCachedEvaluator(g.evaluator)
		g.evaluator = g.cache.Evaluate
	}

	if err := g.Init(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GeneticAlgorithm[G]) resolveOperators() error {
	domain := g.problem.Domain()
	length := g.problem.ChromosomeLength()
	constraint := g.problem.Constraint()

	if length <= 0 {
		return fmt.Errorf("%w: problem %s has chromosome length %d", framework.ErrInvalidConfig, g.problem.Name(), length)
	}
	if domain.Len() == 0 {
		return fmt.Errorf("%w: problem %s has an empty domain", framework.ErrInsufficientDomain, g.problem.Name())
	}
	if constraint == framework.Unique && domain.Len() < length {
		return fmt.Errorf("%w: %d unique genes requested from %d values", framework.ErrInsufficientDomain, length, domain.Len())
	}

	switch g.args.Selection {
	case v1alpha1.SelectionRoulette:
		g.selection = Roulette[G]()
	default:
		g.selection = Tournament[G](g.args.TournamentSize)
	}

	crossover := g.args.Crossover
	if crossover == "" {
		crossover = v1alpha1.CrossoverUniform
		if constraint == framework.Unique {
			crossover = v1alpha1.CrossoverSinglePointUnique
		}
	}
	switch crossover {
	case v1alpha1.CrossoverUniform, v1alpha1.CrossoverSinglePoint:
		if constraint == framework.Unique {
			return fmt.Errorf("%w: %s crossover can repeat genes of a %s problem", framework.ErrInvalidConfig, crossover, constraint)
		}
		if crossover == v1alpha1.CrossoverUniform {
			g.crossover = UniformCrossover[G]
		} else {
			g.crossover = SinglePointCrossover[G]
		}
	case v1alpha1.CrossoverSinglePointUnique:
		g.crossover = SinglePointUniqueCrossover[G]
	case v1alpha1.CrossoverOrdered:
		if constraint != framework.Unique || domain.Len() != length {
			return fmt.Errorf("%w: %s crossover needs a permutation problem", framework.ErrInvalidConfig, crossover)
		}
		g.crossover = OrderedCrossover[G]
	}

	switch g.args.Mutation {
	case v1alpha1.MutationSwap:
		g.mutate = SwapMutation[G]()
	default:
		// A reset under the unique constraint needs a value left out of the chromosome.
		if constraint == framework.Unique && domain.Len() <= length && *g.args.MutationRate > 0 {
			return fmt.Errorf("%w: %s mutation of %d unique genes needs more than %d domain values, use %s",
				framework.ErrInsufficientDomain, v1alpha1.MutationReset, length, domain.Len(), v1alpha1.MutationSwap)
		}
		g.mutate = ResetMutation(domain, constraint)
	}

	g.aggregate = AggregateSum
	if g.args.Aggregate == v1alpha1.AggregateMean {
		g.aggregate = AggregateMean
	}
	return nil
}

func (g *GeneticAlgorithm[G]) resolveTerminations() {
	var derived []Termination[G]
	if g.args.MaxGenerations > 0 {
		derived = append(derived, MaxGenerations[G](g.args.MaxGenerations))
	}
	target, ok := g.problem.Optimum()
	if g.args.TargetFitness != nil {
		target, ok = *g.args.TargetFitness, true
	}
	if ok {
		derived = append(derived, TargetFitness[G](target, *g.args.FitnessEpsilon))
	}
	g.terminations = append(derived, g.terminations...)
}

// Init builds a fresh random population and resets the run. New calls it,
// calling it again restarts the algorithm with the same configuration and
// the current random source.
func (g *GeneticAlgorithm[G]) Init() error {
	size := g.args.PopulationSize
	length := g.problem.ChromosomeLength()
	domain := g.problem.Domain()

	if g.problem.Constraint() == framework.Unique {
		population, err := framework.NewRandomUniquePopulation(g.rng, size, length, domain)
		if err != nil {
			return err
		}
		g.population = population
	} else {
		g.population = framework.NewRandomPopulation(g.rng, size, length, domain)
	}

	g.state = StateInitialized
	g.generation = 0
	g.evaluations = 0
	g.history = nil
	g.reason = ""
	g.started = g.clock.Now()
	if g.cache != nil {
		g.cache.Flush()
	}
	return nil
}

func (g *GeneticAlgorithm[G]) Name() string {
	return Name
}

func (g *GeneticAlgorithm[G]) State() State {
	return g.state
}

// Generation returns the number of evaluated populations so far.
func (g *GeneticAlgorithm[G]) Generation() int {
	return g.generation
}

func (g *GeneticAlgorithm[G]) Population() *framework.Population[G] {
	return g.population
}

// Args returns the defaulted args the algorithm runs with.
func (g *GeneticAlgorithm[G]) Args() v1alpha1.GeneticAlgorithmArgs {
	return g.args
}

// Cache returns the fitness cache, nil unless CacheFitness is set.
func (g *GeneticAlgorithm[G]) Cache() *CachedEvaluator[G] {
	return g.cache
}

func (g *GeneticAlgorithm[G]) History() []GenerationStats {
	out := make([]GenerationStats, len(g.history))
	copy(out, g.history)
	return out
}

// Evaluate runs the evaluation pass over the current population.
func (g *GeneticAlgorithm[G]) Evaluate() error {
	if g.state == StateEvaluated || g.state == StateTerminated {
		return fmt.Errorf("evaluate called in state %s", g.state)
	}

	calls, err := Evaluate(g.population, g.evaluator, g.aggregate)
	g.evaluations += calls
	if err != nil {
		return fmt.Errorf("evaluating generation %d: %w", g.generation+1, err)
	}

	g.generation++
	g.state = StateEvaluated

	stats := ComputeStats(g.generation, g.population)
	stats.Evaluations = g.evaluations
	stats.Elapsed = g.clock.Since(g.started)
	g.history = append(g.history, stats)
	for _, observe := range g.observers {
		observe(stats)
	}
	return nil
}

// Step evolves one generation: crossover over the ranked population,
// mutation, then evaluation of the new population. If crossover or mutation
// fails the algorithm stays on the current evaluated population.
func (g *GeneticAlgorithm[G]) Step() error {
	if g.state != StateEvaluated {
		return fmt.Errorf("step needs an evaluated population, state is %s", g.state)
	}
	g.state = StateEvolving

	next, err := CrossoverPopulation(g.rng, g.population.Sort(), CrossoverOptions[G]{
		Rate:         *g.args.CrossoverRate,
		ElitismCount: *g.args.ElitismCount,
		Crossover:    g.crossover,
		Select:       g.selection,
	})
	if err != nil {
		// The current population is untouched and still evaluated.
		g.state = StateEvaluated
		return fmt.Errorf("crossover of generation %d: %w", g.generation, err)
	}

	err = MutatePopulation(g.rng, next, MutationOptions[G]{
		Rate:         *g.args.MutationRate,
		ElitismCount: *g.args.ElitismCount,
		Mutate:       g.mutate,
	})
	if err != nil {
		g.state = StateEvaluated
		return fmt.Errorf("mutation of generation %d: %w", g.generation, err)
	}

	g.population = next
	return g.Evaluate()
}

// Terminated checks the termination conditions and moves to the terminal
// state when one holds.
func (g *GeneticAlgorithm[G]) Terminated() bool {
	if g.state == StateTerminated {
		return true
	}
	if g.state != StateEvaluated {
		return false
	}
	if cond, ok := Any(g.generation, g.population, g.terminations...); ok {
		g.state = StateTerminated
		g.reason = cond.Name
		return true
	}
	return false
}

// Run evaluates the initial population if needed and evolves it until a
// termination condition holds or ctx is done. On cancellation the partial
// result is returned along with the context error.
func (g *GeneticAlgorithm[G]) Run(ctx context.Context) (*Result[G], error) {
	logger := g.logger
	if !g.explicitLogger {
		logger = klog.FromContext(ctx)
	}
	logger = logger.WithValues("problem", g.problem.Name())
	logger.V(2).Info("starting genetic algorithm", "populationSize", g.args.PopulationSize,
		"chromosomeLength", g.problem.ChromosomeLength(), "constraint", g.problem.Constraint())

	if len(g.terminations) == 0 {
		return nil, fmt.Errorf("%w: no termination condition", framework.ErrInvalidConfig)
	}
	if g.state == StateInitialized {
		if err := g.Evaluate(); err != nil {
			return nil, err
		}
	}

	for !g.Terminated() {
		if err := ctx.Err(); err != nil {
			g.reason = ReasonCancelled
			logger.V(2).Info("genetic algorithm cancelled", "generation", g.generation)
			return g.result(), err
		}

		if err := g.Step(); err != nil {
			return nil, err
		}

		if logger.V(4).Enabled() {
			last := g.history[len(g.history)-1]
			logger.V(4).Info("evaluated generation", "generation", last.Generation, "best", last.Best, "mean", last.Mean)
		}
	}

	result := g.result()
	logger.V(2).Info("genetic algorithm terminated", "reason", result.Reason,
		"generations", result.Generations, "bestFitness", result.Best.Fitness())
	return result, nil
}

func (g *GeneticAlgorithm[G]) result() *Result[G] {
	return &Result[G]{
		Best:        g.population.Fittest(),
		Population:  g.population,
		Generations: g.generation,
		Evaluations: g.evaluations,
		Elapsed:     g.clock.Since(g.started),
		Reason:      g.reason,
		History:     g.History(),
	}
}

// IsConfigError reports whether err was caused by invalid configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, framework.ErrInvalidConfig) || errors.Is(err, framework.ErrInsufficientDomain)
}
