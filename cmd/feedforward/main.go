// Package main provides the feedforward CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/born-ml/feedforward/internal/config"
	"github.com/born-ml/feedforward/internal/datasets"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/parallel"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage(os.Stdout)
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("feedforward %s\n", version)
	case "train":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := train(ctx, os.Args[2:], os.Stdout); err != nil {
			log.Fatalf("train: %v", err)
		}
	default:
		usage(os.Stderr)
		os.Exit(2)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "feedforward - dense feed-forward networks trained with online backpropagation")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  train      Train a network on a built-in dataset (xor, digits)")
}

func train(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	task := fs.String("task", "xor", "Dataset to train on: xor or digits")
	configPath := fs.String("config", "", "YAML network/run config (defaults to the task preset)")
	seed := fs.Uint64("seed", 0, "Random seed for weight init and sample order (0 keeps config value)")
	lr := fs.Float64("lr", 0, "Learning rate (0 keeps config value)")
	steps := fs.Int("steps", 0, "Maximum training steps (0 keeps config value)")
	epsilon := fs.Float64("epsilon", 0, "Target dataset mean squared error (0 keeps config value)")
	logEvery := fs.Int("log-every", 0, "Log progress every N steps (0 keeps config value)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var samples []optim.Sample
	switch *task {
	case "xor":
		samples = datasets.XOR()
	case "digits":
		samples = datasets.Digits()
	default:
		return fmt.Errorf("unknown task %q", *task)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Preset(*task)
	}
	if err != nil {
		return err
	}
	cfg.ApplyOverrides(config.Overrides{
		LearningRate: *lr,
		Seed:         *seed,
		MaxSteps:     *steps,
		Epsilon:      *epsilon,
		LogEvery:     *logEvery,
	})

	if cfg.Inputs != samples[0].Input.Len() {
		return fmt.Errorf("config has %d inputs, task %s needs %d", cfg.Inputs, *task, samples[0].Input.Len())
	}
	layers, err := cfg.NetworkLayers()
	if err != nil {
		return err
	}
	net, err := nn.New(cfg.Inputs, layers)
	if err != nil {
		return err
	}
	trainer, err := optim.NewTrainer(net, cfg.TrainerConfig())
	if err != nil {
		return err
	}
	if err := trainer.Init(cfg.Init.Low, cfg.Init.High, rand.NewPCG(cfg.Seed, cfg.Seed)); err != nil {
		return err
	}

	res, err := optim.Fit(ctx, trainer, samples, optim.FitConfig{
		MaxSteps: cfg.MaxSteps,
		Epsilon:  cfg.Epsilon,
		LogEvery: cfg.LogEvery,
		Logger:   log.New(out, "", log.LstdFlags),
		Rand:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1)),
		Parallel: parallel.DefaultConfig(),
	})
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(out, "interrupted after %d steps\n", res.Steps)
	} else if err != nil {
		return err
	}

	for i, s := range samples {
		output, err := net.Forward(s.Input)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "sample %d: input=%v target=%v output=%v\n", i, s.Input, s.Target, output)
	}
	return nil
}
