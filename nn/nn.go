// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/feedforward/internal/activation"
	"github.com/born-ml/feedforward/internal/nn"
)

// Network is a fully connected feed-forward network.
type Network = nn.Network

// LayerConfig describes one dense layer.
type LayerConfig = nn.LayerConfig

// Errors returned by Network.
var (
	ErrNotInitialized = nn.ErrNotInitialized
	ErrInvalidConfig  = nn.ErrInvalidConfig
)

// New creates a network with the given input width and layers.
//
// Example:
//
//	net, err := nn.New(35, []nn.LayerConfig{
//	    {Neurons: 35, Activation: nn.Sigmoid, Bias: 1},
//	    {Neurons: 10, Activation: nn.Sigmoid, Bias: 1},
//	})
func New(inputs int, layers []LayerConfig) (*Network, error) {
	return nn.New(inputs, layers)
}

// NewWithRegistry creates a network resolving activations through reg.
func NewWithRegistry(reg *Registry, inputs int, layers []LayerConfig) (*Network, error) {
	return nn.NewWithRegistry(reg, inputs, layers)
}

// Activations

// ActivationKind identifies an activation function.
type ActivationKind = activation.Kind

// ActivationFunc pairs a forward function with its output-parameterized derivative.
type ActivationFunc = activation.Func

// Registry maps activation kinds to functions.
type Registry = activation.Registry

// Built-in activation kinds.
const (
	Sigmoid  = activation.Sigmoid
	Tanh     = activation.Tanh
	ReLU     = activation.ReLU
	Identity = activation.Identity
)

// Activation errors.
var (
	ErrUnknownActivation = activation.ErrUnknownKind
	ErrInvalidActivation = activation.ErrInvalidFunc
)

// NewRegistry creates a registry holding the built-in activations.
func NewRegistry() *Registry {
	return activation.NewRegistry()
}

// ParseActivation returns the kind registered under name in the default registry.
func ParseActivation(name string) (ActivationKind, error) {
	return activation.ParseKind(name)
}
