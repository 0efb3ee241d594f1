// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim trains networks with online backpropagation.
//
// Trainer performs one stochastic gradient descent step per sample. Fit
// drives it over a dataset until a target error, and Evaluate measures the
// dataset-wide mean squared error.
//
// Example:
//
//	trainer, err := optim.NewTrainer(net, optim.Config{LearningRate: 0.5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = trainer.Init(-0.5, 0.5, rand.NewPCG(1, 1))
//
//	res, err := optim.Fit(ctx, trainer, samples, optim.FitConfig{Epsilon: 1e-5})
package optim
