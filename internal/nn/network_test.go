package nn

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/born-ml/feedforward/internal/activation"
	"github.com/born-ml/feedforward/internal/linalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatrix(t *testing.T, rows ...[]float64) *linalg.Matrix {
	t.Helper()
	m, err := linalg.FromRows(rows...)
	require.NoError(t, err)
	return m
}

func TestNew_WeightShapes(t *testing.T) {
	net, err := New(35, []LayerConfig{
		{Neurons: 35, Activation: activation.Sigmoid, Bias: 1},
		{Neurons: 10, Activation: activation.Sigmoid, Bias: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 35, net.Inputs())
	assert.Equal(t, 2, net.LayerCount())
	assert.Equal(t, 10, net.OutputSize())

	w0, err := net.Weights(0)
	require.NoError(t, err)
	assert.Equal(t, 35, w0.Rows())
	assert.Equal(t, 36, w0.Cols())

	w1, err := net.Weights(1)
	require.NoError(t, err)
	assert.Equal(t, 10, w1.Rows())
	assert.Equal(t, 36, w1.Cols())

	_, err = net.Weights(2)
	assert.ErrorIs(t, err, linalg.ErrIndexOutOfRange)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		inputs int
		layers []LayerConfig
		want   error
	}{
		{"no inputs", 0, []LayerConfig{{Neurons: 1}}, ErrInvalidConfig},
		{"no layers", 2, nil, ErrInvalidConfig},
		{"zero neurons", 2, []LayerConfig{{Neurons: 2}, {Neurons: 0}}, ErrInvalidConfig},
		{"unknown activation", 2, []LayerConfig{{Neurons: 2, Activation: activation.Kind(99)}}, activation.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.inputs, tt.layers)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLayers_ReturnsCopy(t *testing.T) {
	net, err := New(2, []LayerConfig{{Neurons: 3, Activation: activation.Tanh, Bias: 0.5}})
	require.NoError(t, err)

	layers := net.Layers()
	layers[0].Neurons = 100
	assert.Equal(t, 3, net.Layers()[0].Neurons)
	assert.Equal(t, activation.Tanh, net.Layers()[0].Activation)
}

func TestForward_NotInitialized(t *testing.T) {
	net, err := New(2, []LayerConfig{{Neurons: 1, Activation: activation.Sigmoid, Bias: 1}})
	require.NoError(t, err)
	assert.False(t, net.Initialized())

	_, err = net.Forward(linalg.VectorOf(0, 1))
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestForward_KnownWeights(t *testing.T) {
	net, err := New(2, []LayerConfig{
		{Neurons: 2, Activation: activation.Identity, Bias: 1},
		{Neurons: 1, Activation: activation.Sigmoid, Bias: 0.5},
	})
	require.NoError(t, err)

	tr := net.Trainable()
	require.NoError(t, tr.SetWeights(0, mustMatrix(t,
		[]float64{1, 0, 0},
		[]float64{0, 1, 1},
	)))
	assert.False(t, net.Initialized())
	require.NoError(t, tr.SetWeights(1, mustMatrix(t, []float64{1, -1, 2})))
	assert.True(t, net.Initialized())

	// Hidden: [3, 4+1] = [3, 5]; output: sigmoid(3 - 5 + 2*0.5) = sigmoid(-1).
	out, err := net.Forward(linalg.VectorOf(3, 4))
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 1/(1+math.Exp(1)), out.Raw()[0], 1e-15)
}

func TestForward_InputMismatch(t *testing.T) {
	net, err := New(3, []LayerConfig{{Neurons: 2, Activation: activation.Sigmoid, Bias: 1}})
	require.NoError(t, err)
	net.Trainable().Fill(func(_, _, _ int) float64 { return 0.1 })

	_, err = net.Forward(linalg.VectorOf(1, 2))
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

func TestForward_OutputLength(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	shapes := [][]int{{1}, {4}, {3, 1}, {5, 7, 2}, {2, 2, 2, 9}}

	for _, shape := range shapes {
		layers := make([]LayerConfig, len(shape))
		for i, n := range shape {
			layers[i] = LayerConfig{Neurons: n, Activation: activation.Sigmoid, Bias: 1}
		}
		inputs := 1 + rng.IntN(6)
		net, err := New(inputs, layers)
		require.NoError(t, err)
		net.Trainable().Fill(func(_, _, _ int) float64 { return rng.Float64() - 0.5 })

		input := linalg.NewVector(inputs)
		for i := range input.Raw() {
			input.Raw()[i] = rng.Float64()
		}
		out, err := net.Forward(input)
		require.NoError(t, err)
		assert.Equal(t, shape[len(shape)-1], out.Len(), "shape %v", shape)
	}
}

func TestForward_Concurrent(t *testing.T) {
	net, err := New(3, []LayerConfig{
		{Neurons: 4, Activation: activation.Tanh, Bias: 1},
		{Neurons: 2, Activation: activation.Sigmoid, Bias: 1},
	})
	require.NoError(t, err)
	net.Trainable().Fill(func(l, r, c int) float64 { return float64(l+r-c) / 10 })

	input := linalg.VectorOf(0.2, -0.4, 0.9)
	want, err := net.Forward(input)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]linalg.Vector, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = net.Forward(input)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.True(t, got.Equal(want), "goroutine %d", i)
	}
}

func TestTrainable_SetWeightsValidation(t *testing.T) {
	net, err := New(2, []LayerConfig{{Neurons: 2, Activation: activation.Sigmoid, Bias: 1}})
	require.NoError(t, err)
	tr := net.Trainable()

	assert.ErrorIs(t, tr.SetWeights(0, mustMatrix(t, []float64{1, 2, 3})), linalg.ErrDimensionMismatch)
	assert.ErrorIs(t, tr.SetWeights(0, mustMatrix(t, []float64{1, 2}, []float64{3, 4})), linalg.ErrDimensionMismatch)
	assert.ErrorIs(t, tr.SetWeights(1, mustMatrix(t, []float64{1, 2, 3})), linalg.ErrIndexOutOfRange)
	assert.False(t, net.Initialized())
}

func TestTrainable_StepAndUpdate(t *testing.T) {
	net, err := New(2, []LayerConfig{{Neurons: 2, Activation: activation.Identity, Bias: -1}})
	require.NoError(t, err)
	tr := net.Trainable()
	require.NoError(t, tr.SetWeights(0, mustMatrix(t,
		[]float64{1, 1, 1},
		[]float64{2, 0, 0},
	)))
	assert.Same(t, net, tr.Network())
	assert.Equal(t, 3, tr.Width(0))
	assert.Equal(t, 2, tr.Neurons(0))

	aug := linalg.NewVector(3)
	require.NoError(t, tr.Augment(0, aug, linalg.VectorOf(2, 3)))
	assert.Equal(t, []float64{2, 3, -1}, aug.Raw())
	assert.ErrorIs(t, tr.Augment(0, aug, linalg.VectorOf(2)), linalg.ErrDimensionMismatch)

	out := linalg.NewVector(2)
	require.NoError(t, tr.ForwardLayer(0, out, aug))
	assert.Equal(t, []float64{4, 4}, out.Raw())

	require.NoError(t, tr.SubRow(0, 1, linalg.VectorOf(1, 1, 1)))
	w, err := net.Weights(0)
	require.NoError(t, err)
	assert.True(t, w.Equal(mustMatrix(t, []float64{1, 1, 1}, []float64{1, -1, -1})))
	assert.ErrorIs(t, tr.SubRow(0, 1, linalg.VectorOf(1)), linalg.ErrDimensionMismatch)
	assert.ErrorIs(t, tr.SubRow(0, 2, linalg.VectorOf(1, 1, 1)), linalg.ErrIndexOutOfRange)

	tw, _ := linalg.NewMatrix(3, 2)
	require.NoError(t, tr.TransposeTo(0, tw))
	assert.True(t, tw.Equal(w.Transpose()))

	assert.Equal(t, 1.0, tr.Derivative(0)(42))
}
