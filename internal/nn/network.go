package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/feedforward/internal/activation"
	"github.com/born-ml/feedforward/internal/linalg"
	pkgerrors "github.com/pkg/errors"
)

// Common errors.
var (
	ErrNotInitialized = errors.New("network weights not initialized")
	ErrInvalidConfig  = errors.New("invalid network config")
)

// LayerConfig describes one dense layer.
type LayerConfig struct {
	Neurons    int             // Number of neurons (>= 1)
	Activation activation.Kind // Elementwise activation applied to the layer output
	Bias       float64         // Constant appended to the layer input before the weight product
}

// layer is a weight matrix plus the resolved activation for one LayerConfig.
type layer struct {
	config  LayerConfig
	fn      activation.Func
	weights *linalg.Matrix // [neurons, inputWidth+1]; last column multiplies Bias
	ready   bool
}

// Network is a fully connected feed-forward network.
//
// Each layer appends its configured bias scalar to its input, multiplies by
// its weight matrix and applies its activation elementwise. Weight matrix i
// therefore has Neurons(i) rows and width(i-1)+1 columns, where width(-1) is
// the network input width.
//
// Weights are zero at construction and the network refuses to run until they
// have been initialized through a trainer. After that, Forward is read-only and
// safe for concurrent use as long as no trainer mutates the network at the
// same time.
//
// Example:
//
//	net, err := nn.New(2, []nn.LayerConfig{
//	    {Neurons: 2, Activation: activation.Sigmoid, Bias: 1},
//	    {Neurons: 1, Activation: activation.Sigmoid, Bias: 1},
//	})
type Network struct {
	inputs int
	layers []layer
}

// New creates a network with the given input width and layers, resolving
// activations through activation.Default.
func New(inputs int, layers []LayerConfig) (*Network, error) {
	return NewWithRegistry(activation.Default, inputs, layers)
}

// NewWithRegistry is New with an explicit activation registry.
func NewWithRegistry(reg *activation.Registry, inputs int, layers []LayerConfig) (*Network, error) {
	if inputs <= 0 {
		return nil, fmt.Errorf("%w: inputs must be > 0 (got %d)", ErrInvalidConfig, inputs)
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: at least one layer is required", ErrInvalidConfig)
	}

	n := &Network{inputs: inputs, layers: make([]layer, len(layers))}
	width := inputs
	for i, cfg := range layers {
		if cfg.Neurons <= 0 {
			return nil, fmt.Errorf("%w: layer %d: neurons must be > 0 (got %d)", ErrInvalidConfig, i, cfg.Neurons)
		}
		fn, err := reg.Lookup(cfg.Activation)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "layer %d", i)
		}
		weights, err := linalg.NewMatrix(cfg.Neurons, width+1)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "layer %d", i)
		}
		n.layers[i] = layer{config: cfg, fn: fn, weights: weights}
		width = cfg.Neurons
	}
	return n, nil
}

// Inputs returns the network input width.
func (n *Network) Inputs() int {
	return n.inputs
}

// LayerCount returns the number of layers (weight matrices).
func (n *Network) LayerCount() int {
	return len(n.layers)
}

// OutputSize returns the neuron count of the last layer.
func (n *Network) OutputSize() int {
	return n.layers[len(n.layers)-1].config.Neurons
}

// Layers returns a copy of the layer configurations.
func (n *Network) Layers() []LayerConfig {
	out := make([]LayerConfig, len(n.layers))
	for i, l := range n.layers {
		out[i] = l.config
	}
	return out
}

// Initialized reports whether every layer has received weights.
func (n *Network) Initialized() bool {
	for _, l := range n.layers {
		if !l.ready {
			return false
		}
	}
	return true
}

// Weights returns a deep copy of layer i's weight matrix.
func (n *Network) Weights(i int) (*linalg.Matrix, error) {
	if i < 0 || i >= len(n.layers) {
		return nil, fmt.Errorf("weights: %w: layer %d of %d", linalg.ErrIndexOutOfRange, i, len(n.layers))
	}
	return n.layers[i].weights.Clone(), nil
}

// Forward runs the full network on input and returns the last layer's output.
//
// Requires input.Len() == Inputs() and initialized weights.
func (n *Network) Forward(input linalg.Vector) (linalg.Vector, error) {
	if !n.Initialized() {
		return linalg.Vector{}, ErrNotInitialized
	}
	if input.Len() != n.inputs {
		return linalg.Vector{}, pkgerrors.Wrap(&linalg.DimensionError{Op: "forward input", Want: n.inputs, Got: input.Len()}, "forward")
	}

	output := input
	for i := range n.layers {
		aug := linalg.NewVector(n.layers[i].weights.Cols())
		if err := n.augment(i, aug, output); err != nil {
			return linalg.Vector{}, err
		}
		next := linalg.NewVector(n.layers[i].config.Neurons)
		if err := n.step(i, next, aug); err != nil {
			return linalg.Vector{}, err
		}
		output = next
	}
	return output, nil
}

// augment writes src followed by layer i's bias into dst.
func (n *Network) augment(i int, dst, src linalg.Vector) error {
	l := &n.layers[i]
	if src.Len()+1 != l.weights.Cols() {
		return pkgerrors.Wrapf(&linalg.DimensionError{Op: "bias augment", Want: l.weights.Cols() - 1, Got: src.Len()}, "layer %d", i)
	}
	if dst.Len() != l.weights.Cols() {
		return pkgerrors.Wrapf(&linalg.DimensionError{Op: "bias augment", Want: l.weights.Cols(), Got: dst.Len()}, "layer %d", i)
	}
	raw := dst.Raw()
	copy(raw, src.Raw())
	raw[len(raw)-1] = l.config.Bias
	return nil
}

// step computes dst = f(W_i × augmented) for layer i.
func (n *Network) step(i int, dst, augmented linalg.Vector) error {
	l := &n.layers[i]
	if err := l.weights.MulVecTo(dst, augmented); err != nil {
		return pkgerrors.Wrapf(err, "layer %d", i)
	}
	return linalg.MapTo(dst, dst, l.fn.Forward)
}
