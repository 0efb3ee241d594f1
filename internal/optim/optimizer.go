// Package optim trains feed-forward networks with online backpropagation.
//
// This package provides:
//   - Trainer: single-sample stochastic gradient descent with per-layer
//     gradient and output caches
//   - Fit: a training loop drawing random samples until a target error
//   - Evaluate: dataset-wide mean squared error via concurrent inference
//
// Example usage:
//
//	trainer, err := optim.NewTrainer(net, optim.Config{LearningRate: 0.5})
//	if err != nil {
//	    return err
//	}
//	if err := trainer.Init(-0.5, 0.5, rand.NewPCG(1, 2)); err != nil {
//	    return err
//	}
//	for _, s := range samples {
//	    mse, err := trainer.Train(s.Input, s.Target)
//	    ...
//	}
package optim

import (
	"errors"

	"github.com/born-ml/feedforward/internal/linalg"
	"github.com/born-ml/feedforward/internal/nn"
)

// Common errors.
var (
	ErrInvalidInterval = errors.New("invalid initialization interval")
	ErrInvalidConfig   = errors.New("invalid trainer config")
	ErrEmptyDataset    = errors.New("empty dataset")
)

// Learner is anything that performs one online training step on a network.
//
// Trainer implements it; Fit drives it.
type Learner interface {
	// Train performs one gradient step and returns the sample's mean squared
	// error before the update.
	Train(input, target linalg.Vector) (float64, error)

	// Network returns the network being trained.
	Network() *nn.Network
}

// Sample is one input/target pair.
type Sample struct {
	Input  linalg.Vector
	Target linalg.Vector
}
