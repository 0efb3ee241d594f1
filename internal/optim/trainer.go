package optim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/born-ml/feedforward/internal/linalg"
	"github.com/born-ml/feedforward/internal/nn"
	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Defaults used when the corresponding Config or Init values are not given.
const (
	DefaultLearningRate = 0.5
	DefaultInitLow      = -0.5
	DefaultInitHigh     = 0.5
)

// Config holds configuration for Trainer.
type Config struct {
	LearningRate float64 // Step size (default: 0.5)
	Momentum     float64 // Reserved; validated to [0, 1) but not used by the update rule
}

// Trainer performs online backpropagation on a single network.
//
// Update rule for layer l, neuron i:
//
//	gradient[l][i] = error[l][i] * f'(output[l][i])
//	W[l][i]       -= lr * gradient[l][i] * augmentedInput[l]
//
// where error for the last layer is output - target and, for hidden layers,
// the leading Neurons(l) entries of transpose(W[l+1]) × gradient[l+1]. The
// trailing entry belongs to the bias input and has no upstream neuron.
//
// Per-layer output, gradient and scratch buffers are allocated once in
// NewTrainer and overwritten by every Train call. A Trainer is not safe for
// concurrent use, and nothing else may run Forward on its network while Train
// is in progress.
type Trainer struct {
	tr       *nn.Trainable
	lr       float64
	momentum float64

	augmented  []linalg.Vector  // [layer] bias-augmented input, len Width(l)
	outputs    []linalg.Vector  // [layer] post-activation output, len Neurons(l)
	gradients  []linalg.Vector  // [layer] error gradient, len Neurons(l)
	layerErrs  []linalg.Vector  // [layer] propagated error, len Neurons(l)
	back       []linalg.Vector  // [layer] transpose(W[l+1]) × gradient[l+1], len Width(l+1)
	transposed []*linalg.Matrix // [layer] transpose(W[l]) for l >= 1
	delta      []linalg.Vector  // [layer] weight row update, len Width(l)
}

// NewTrainer creates a trainer for net and sizes its caches from
// net.LayerCount().
//
// Example:
//
//	trainer, err := optim.NewTrainer(net, optim.Config{LearningRate: 0.5})
func NewTrainer(net *nn.Network, config Config) (*Trainer, error) {
	if config.LearningRate == 0 {
		config.LearningRate = DefaultLearningRate
	}
	if config.LearningRate < 0 || math.IsNaN(config.LearningRate) || math.IsInf(config.LearningRate, 0) {
		return nil, fmt.Errorf("%w: learning rate must be positive (got %v)", ErrInvalidConfig, config.LearningRate)
	}
	if config.Momentum < 0 || config.Momentum >= 1 {
		return nil, fmt.Errorf("%w: momentum must be in [0, 1) (got %v)", ErrInvalidConfig, config.Momentum)
	}

	tr := net.Trainable()
	layers := net.LayerCount()
	t := &Trainer{
		tr:         tr,
		lr:         config.LearningRate,
		momentum:   config.Momentum,
		augmented:  make([]linalg.Vector, layers),
		outputs:    make([]linalg.Vector, layers),
		gradients:  make([]linalg.Vector, layers),
		layerErrs:  make([]linalg.Vector, layers),
		back:       make([]linalg.Vector, layers),
		transposed: make([]*linalg.Matrix, layers),
		delta:      make([]linalg.Vector, layers),
	}
	for l := 0; l < layers; l++ {
		t.augmented[l] = linalg.NewVector(tr.Width(l))
		t.outputs[l] = linalg.NewVector(tr.Neurons(l))
		t.gradients[l] = linalg.NewVector(tr.Neurons(l))
		t.layerErrs[l] = linalg.NewVector(tr.Neurons(l))
		t.delta[l] = linalg.NewVector(tr.Width(l))
		if l+1 < layers {
			t.back[l] = linalg.NewVector(tr.Width(l + 1))
		}
		if l > 0 {
			m, err := linalg.NewMatrix(tr.Width(l), tr.Neurons(l))
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "layer %d", l)
			}
			t.transposed[l] = m
		}
	}
	return t, nil
}

// Network returns the network being trained.
func (t *Trainer) Network() *nn.Network {
	return t.tr.Network()
}

// GetLR returns the current learning rate.
func (t *Trainer) GetLR() float64 {
	return t.lr
}

// SetLR sets the learning rate. Non-positive values are ignored.
func (t *Trainer) SetLR(lr float64) {
	if lr > 0 {
		t.lr = lr
	}
}

// Momentum returns the configured momentum term.
func (t *Trainer) Momentum() float64 {
	return t.momentum
}

// Init fills every weight with an independent draw from U[low, high].
//
// src supplies randomness; nil uses the automatically seeded global source.
// Pass a seeded source (e.g. rand.NewPCG) for reproducible runs.
func (t *Trainer) Init(low, high float64, src rand.Source) error {
	if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) || low > high {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidInterval, low, high)
	}
	dist := distuv.Uniform{Min: low, Max: high, Src: src}
	t.tr.Fill(func(_, _, _ int) float64 {
		return dist.Rand()
	})
	return nil
}

// InitDefault is Init over [DefaultInitLow, DefaultInitHigh] with the global
// random source.
func (t *Trainer) InitDefault() error {
	return t.Init(DefaultInitLow, DefaultInitHigh, nil)
}

// SetWeights loads explicit weights for layer i.
func (t *Trainer) SetWeights(i int, m *linalg.Matrix) error {
	return t.tr.SetWeights(i, m)
}

// Train performs one online gradient-descent step on (input, target) and
// returns the mean squared error of the network output before the update.
//
// Shapes are checked before anything is touched: a mismatched input or
// target returns an error wrapping linalg.ErrDimensionMismatch and leaves the
// weights unchanged.
func (t *Trainer) Train(input, target linalg.Vector) (float64, error) {
	net := t.tr.Network()
	if !net.Initialized() {
		return 0, nn.ErrNotInitialized
	}
	if input.Len() != net.Inputs() {
		return 0, pkgerrors.Wrap(&linalg.DimensionError{Op: "train input", Want: net.Inputs(), Got: input.Len()}, "train")
	}
	last := len(t.outputs) - 1
	if target.Len() != t.outputs[last].Len() {
		return 0, pkgerrors.Wrap(&linalg.DimensionError{Op: "train target", Want: t.outputs[last].Len(), Got: target.Len()}, "train")
	}

	// Forward, caching every layer's augmented input and output.
	prev := input
	for l := range t.outputs {
		if err := t.tr.Augment(l, t.augmented[l], prev); err != nil {
			return 0, err
		}
		if err := t.tr.ForwardLayer(l, t.outputs[l], t.augmented[l]); err != nil {
			return 0, err
		}
		prev = t.outputs[l]
	}

	outputError := t.layerErrs[last]
	if err := linalg.SubTo(outputError, t.outputs[last], target); err != nil {
		return 0, err
	}

	// Backward. Layer l is updated before its weights propagate the error to
	// layer l-1.
	for l := last; l >= 0; l-- {
		if l < last {
			if err := t.propagate(l); err != nil {
				return 0, err
			}
		}
		if err := t.update(l); err != nil {
			return 0, err
		}
	}

	return meanSquare(outputError), nil
}

// propagate fills layerErrs[l] from layer l+1's weights and gradient.
func (t *Trainer) propagate(l int) error {
	if err := t.tr.TransposeTo(l+1, t.transposed[l+1]); err != nil {
		return err
	}
	if err := t.transposed[l+1].MulVecTo(t.back[l], t.gradients[l+1]); err != nil {
		return pkgerrors.Wrapf(err, "layer %d", l)
	}
	copy(t.layerErrs[l].Raw(), t.back[l].Raw()[:t.layerErrs[l].Len()])
	return nil
}

// update computes gradients[l] and applies the weight step for layer l.
func (t *Trainer) update(l int) error {
	grad := t.gradients[l]
	if err := linalg.MapTo(grad, t.outputs[l], t.tr.Derivative(l)); err != nil {
		return err
	}
	if err := linalg.MulTo(grad, t.layerErrs[l], grad); err != nil {
		return err
	}
	for i, g := range grad.Raw() {
		if err := linalg.ScaleTo(t.delta[l], t.lr*g, t.augmented[l]); err != nil {
			return err
		}
		if err := t.tr.SubRow(l, i, t.delta[l]); err != nil {
			return err
		}
	}
	return nil
}
