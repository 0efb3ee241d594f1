// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/born-ml/feedforward/linalg"
	"github.com/born-ml/feedforward/nn"
	"github.com/born-ml/feedforward/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPublicAPI exercises construction, initialization, training and
// inference through the public packages only.
func TestPublicAPI(t *testing.T) {
	net, err := nn.New(2, []nn.LayerConfig{
		{Neurons: 3, Activation: nn.Tanh, Bias: 1},
		{Neurons: 1, Activation: nn.Sigmoid, Bias: 1},
	})
	require.NoError(t, err)

	_, err = net.Forward(linalg.VectorOf(0, 1))
	require.ErrorIs(t, err, nn.ErrNotInitialized)

	trainer, err := optim.NewTrainer(net, optim.Config{LearningRate: 0.5})
	require.NoError(t, err)
	require.NoError(t, trainer.Init(-0.5, 0.5, rand.NewPCG(1, 1)))

	samples := []optim.Sample{
		{Input: linalg.VectorOf(0, 0), Target: linalg.VectorOf(0)},
		{Input: linalg.VectorOf(1, 1), Target: linalg.VectorOf(1)},
	}
	before, err := optim.Evaluate(net, samples, optim.DefaultParallel())
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		for _, s := range samples {
			_, err := trainer.Train(s.Input, s.Target)
			require.NoError(t, err)
		}
	}
	after, err := optim.Evaluate(net, samples, optim.DefaultParallel())
	require.NoError(t, err)
	assert.Less(t, after, before)

	_, err = trainer.Train(linalg.VectorOf(0, 0), linalg.VectorOf(0, 0))
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

func TestCustomActivation(t *testing.T) {
	reg := nn.NewRegistry()
	const softsign nn.ActivationKind = 10
	require.NoError(t, reg.Register(softsign, nn.ActivationFunc{
		Name:       "softsign",
		Forward:    func(x float64) float64 { return x / (1 + math.Abs(x)) },
		Derivative: func(y float64) float64 { return (1 - math.Abs(y)) * (1 - math.Abs(y)) },
	}))

	net, err := nn.NewWithRegistry(reg, 1, []nn.LayerConfig{{Neurons: 1, Activation: softsign, Bias: 0}})
	require.NoError(t, err)
	trainer, err := optim.NewTrainer(net, optim.Config{})
	require.NoError(t, err)
	w, err := linalg.FromRows([]float64{1, 0})
	require.NoError(t, err)
	require.NoError(t, trainer.SetWeights(0, w))

	out, err := net.Forward(linalg.VectorOf(3))
	require.NoError(t, err)
	assert.InDelta(t, 0.75, out.Raw()[0], 1e-15)

	// Unknown to the default registry.
	_, err = nn.New(1, []nn.LayerConfig{{Neurons: 1, Activation: softsign}})
	assert.ErrorIs(t, err, nn.ErrUnknownActivation)

	kind, err := nn.ParseActivation("relu")
	require.NoError(t, err)
	assert.Equal(t, nn.ReLU, kind)
}
