package main

import (
	"context"
	goflag "flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/youstinus/ga-tests/apis/config/v1alpha1"
	"github.com/youstinus/ga-tests/pkg/genetic/algorithms"
	"github.com/youstinus/ga-tests/pkg/genetic/framework"
	"github.com/youstinus/ga-tests/pkg/genetic/util"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		klog.ErrorS(err, "gaevolve failed")
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func run(ctx context.Context, argv []string, out io.Writer) error {
	o := newOptions()
	fs := pflag.NewFlagSet("gaevolve", pflag.ContinueOnError)
	o.addFlags(fs)

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	if err := fs.Parse(argv); err != nil {
		return err
	}
	o.seedSet = fs.Changed("seed")

	args, err := o.loadArgs()
	if err != nil {
		return err
	}

	seed := rand.Uint64()
	if args.Seed != nil {
		seed = *args.Seed
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	problem, err := o.buildProblem(rng)
	if err != nil {
		return err
	}

	logger := klog.FromContext(ctx).WithValues("problem", problem.Name(), "seed", seed)
	ctx = klog.NewContext(ctx, logger)
	return runProblem(ctx, out, args, problem, o.plotPath, algorithms.WithRand[int](rng))
}

func runProblem[G comparable](ctx context.Context, out io.Writer, args *v1alpha1.GeneticAlgorithmArgs, problem framework.Problem[G], plotPath string, opts ...algorithms.Option[G]) error {
	logger := klog.FromContext(ctx)

	ga, err := algorithms.New(args, problem, opts...)
	if err != nil {
		return fmt.Errorf("configuring %s: %w", problem.Name(), err)
	}
	result, err := ga.Run(ctx)
	if result != nil {
		util.RenderSummary(out, problem.Name(), result)
	}
	if err != nil {
		return fmt.Errorf("running %s: %w", problem.Name(), err)
	}

	if plotPath != "" {
		if err := util.PlotProgress(result.History, problem.Name(), plotPath); err != nil {
			return fmt.Errorf("plotting progress: %w", err)
		}
		logger.V(1).Info("wrote progress plot", "path", plotPath)
	}
	if cache := ga.Cache(); cache != nil {
		logger.V(1).Info("fitness cache", "hits", cache.Hits(), "misses", cache.Misses(), "entries", cache.Len())
	}
	return nil
}
