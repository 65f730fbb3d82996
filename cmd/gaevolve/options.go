package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"

	"github.com/youstinus/ga-tests/apis/config/v1alpha1"
	"github.com/youstinus/ga-tests/pkg/genetic/benchmarks"
	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

const (
	problemOneMax  = "onemax"
	problemTSP     = "tsp"
	problemPattern = "pattern"
	problemRobot   = "robot"
)

type options struct {
	configPath string
	problem    string
	plotPath   string
	seed       uint64
	seedSet    bool

	length    int
	cities    int
	gridSize  int
	drawsPath string
	maxNumber int
	picks     int
	maxMoves  int
}

func newOptions() *options {
	return &options{
		problem:   problemOneMax,
		length:    64,
		cities:    20,
		gridSize:  100,
		maxNumber: 48,
		picks:     6,
		maxMoves:  100,
	}
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", o.configPath, "Path to a GeneticAlgorithmArgs YAML file. Problem presets are used when empty.")
	fs.StringVar(&o.problem, "problem", o.problem, "Problem to solve: onemax|tsp|pattern|robot.")
	fs.StringVar(&o.plotPath, "plot", o.plotPath, "Write an HTML fitness plot to this path.")
	fs.Uint64Var(&o.seed, "seed", o.seed, "Random seed, overrides the config seed.")
	fs.IntVar(&o.length, "length", o.length, "Chromosome length of the onemax problem.")
	fs.IntVar(&o.cities, "cities", o.cities, "Number of random cities of the tsp problem.")
	fs.IntVar(&o.gridSize, "grid-size", o.gridSize, "Side of the square the tsp cities are placed on.")
	fs.StringVar(&o.drawsPath, "draws", o.drawsPath, "Draw archive of the pattern problem.")
	fs.IntVar(&o.maxNumber, "max-number", o.maxNumber, "Highest number of the pattern problem.")
	fs.IntVar(&o.picks, "picks", o.picks, "Numbers per ticket of the pattern problem.")
	fs.IntVar(&o.maxMoves, "max-moves", o.maxMoves, "Move budget of the robot problem.")
}

// loadArgs decodes the config file, or returns the preset of the selected
// problem when no file is given.
func (o *options) loadArgs() (*v1alpha1.GeneticAlgorithmArgs, error) {
	var args *v1alpha1.GeneticAlgorithmArgs
	if o.configPath != "" {
		data, err := os.ReadFile(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		args, err = v1alpha1.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decoding config %s: %w", o.configPath, err)
		}
	} else {
		var err error
		args, err = presetArgs(o.problem)
		if err != nil {
			return nil, err
		}
	}
	if o.seedSet {
		args.Seed = ptr.To(o.seed)
	}
	return args, nil
}

// presetArgs returns operators that suit each problem's chromosome.
func presetArgs(problem string) (*v1alpha1.GeneticAlgorithmArgs, error) {
	args := &v1alpha1.GeneticAlgorithmArgs{}
	switch problem {
	case problemOneMax:
		args.Crossover = v1alpha1.CrossoverUniform
	case problemTSP:
		args.Crossover = v1alpha1.CrossoverOrdered
		args.Mutation = v1alpha1.MutationSwap
		args.MutationRate = ptr.To(0.01)
		args.CrossoverRate = ptr.To(0.9)
	case problemPattern:
		args.Crossover = v1alpha1.CrossoverSinglePointUnique
		args.MutationRate = ptr.To(0.05)
		args.MaxGenerations = 500
	case problemRobot:
		args.PopulationSize = 200
		args.Crossover = v1alpha1.CrossoverSinglePoint
		args.MutationRate = ptr.To(0.05)
		args.CrossoverRate = ptr.To(0.9)
		args.TournamentSize = 10
	default:
		return nil, fmt.Errorf("unknown problem %q", problem)
	}
	v1alpha1.SetDefaults_GeneticAlgorithmArgs(args)
	return args, nil
}

func (o *options) buildProblem(rng *rand.Rand) (framework.Problem[int], error) {
	switch o.problem {
	case problemOneMax:
		return benchmarks.NewOneMax(o.length), nil
	case problemTSP:
		return benchmarks.NewTSP(benchmarks.NewRandomCities(rng, o.cities, o.gridSize)), nil
	case problemPattern:
		if o.drawsPath == "" {
			return nil, fmt.Errorf("the pattern problem needs --draws")
		}
		f, err := os.Open(o.drawsPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		draws, err := benchmarks.LoadDraws(f)
		if err != nil {
			return nil, err
		}
		return benchmarks.NewDrawPattern(o.maxNumber, o.picks, draws)
	case problemRobot:
		return benchmarks.NewRobotController(benchmarks.DefaultMaze(), o.maxMoves), nil
	default:
		return nil, fmt.Errorf("unknown problem %q", o.problem)
	}
}
