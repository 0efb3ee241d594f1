// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"context"

	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/parallel"
	"github.com/born-ml/feedforward/linalg"
	"github.com/born-ml/feedforward/nn"
)

// Trainer performs online backpropagation on a single network.
type Trainer = optim.Trainer

// Config holds configuration for Trainer.
type Config = optim.Config

// Learner is anything Fit can drive.
type Learner = optim.Learner

// Sample is one input/target pair.
type Sample = optim.Sample

// FitConfig controls the Fit training loop.
type FitConfig = optim.FitConfig

// FitResult summarizes a Fit run.
type FitResult = optim.FitResult

// ParallelConfig controls concurrent evaluation.
type ParallelConfig = parallel.Config

// Defaults.
const (
	DefaultLearningRate = optim.DefaultLearningRate
	DefaultInitLow      = optim.DefaultInitLow
	DefaultInitHigh     = optim.DefaultInitHigh
	DefaultMaxSteps     = optim.DefaultMaxSteps
	DefaultEpsilon      = optim.DefaultEpsilon
)

// Errors.
var (
	ErrInvalidInterval = optim.ErrInvalidInterval
	ErrInvalidConfig   = optim.ErrInvalidConfig
	ErrEmptyDataset    = optim.ErrEmptyDataset
)

// NewTrainer creates a trainer for net.
//
// Example:
//
//	trainer, err := optim.NewTrainer(net, optim.Config{LearningRate: 0.5})
func NewTrainer(net *nn.Network, config Config) (*Trainer, error) {
	return optim.NewTrainer(net, config)
}

// Fit trains l on samples one random sample at a time.
func Fit(ctx context.Context, l Learner, samples []Sample, cfg FitConfig) (FitResult, error) {
	return optim.Fit(ctx, l, samples, cfg)
}

// Evaluate returns the dataset-wide mean squared error of net.
func Evaluate(net *nn.Network, samples []Sample, cfg ParallelConfig) (float64, error) {
	return optim.Evaluate(net, samples, cfg)
}

// DefaultParallel returns a CPU-count based evaluation config.
func DefaultParallel() ParallelConfig {
	return parallel.DefaultConfig()
}

// MeanSquaredError returns mean((output - target)²).
func MeanSquaredError(output, target linalg.Vector) (float64, error) {
	return optim.MeanSquaredError(output, target)
}
