// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully connected feed-forward networks.
//
// # Overview
//
// This package contains:
//   - Network: dense layers with a per-layer activation and bias input
//   - LayerConfig: neuron count, activation kind and bias value of a layer
//   - Activations: Sigmoid, Tanh, ReLU, Identity, plus custom kinds through a Registry
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/feedforward/linalg"
//	    "github.com/born-ml/feedforward/nn"
//	    "github.com/born-ml/feedforward/optim"
//	)
//
//	func main() {
//	    net, err := nn.New(2, []nn.LayerConfig{
//	        {Neurons: 2, Activation: nn.Sigmoid, Bias: 1},
//	        {Neurons: 1, Activation: nn.Sigmoid, Bias: 1},
//	    })
//	    ...
//	    trainer, err := optim.NewTrainer(net, optim.Config{LearningRate: 0.5})
//	    ...
//	    output, err := net.Forward(linalg.VectorOf(0, 1))
//	}
//
// # Bias
//
// Every layer appends its Bias value to its input before the weight product,
// so layer i has a Neurons(i) × (width(i-1)+1) weight matrix. The extra
// column is learned like any other weight.
//
// # Activations
//
// Derivatives are expressed in terms of the activated output y = f(x), e.g.
// y(1-y) for sigmoid. Custom activations must follow the same convention:
//
//	reg := nn.NewRegistry()
//	_ = reg.Register(nn.ActivationKind(10), nn.ActivationFunc{
//	    Name:       "softsign",
//	    Forward:    func(x float64) float64 { return x / (1 + math.Abs(x)) },
//	    Derivative: func(y float64) float64 { return (1 - math.Abs(y)) * (1 - math.Abs(y)) },
//	})
//	net, err := nn.NewWithRegistry(reg, inputs, layers)
//
// # Initialization
//
// A new network has no usable weights; Forward returns ErrNotInitialized until
// a trainer initializes or loads them (see optim.Trainer.Init).
package nn
