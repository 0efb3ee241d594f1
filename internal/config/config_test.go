package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/born-ml/feedforward/internal/activation"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
inputs: 2
layers:
  - neurons: 3
    activation: tanh
    bias: 1
  - neurons: 1
    activation: sigmoid
    bias: 0.5
learning_rate: 0.25
seed: 42
max_steps: 5000
log_every: 100
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Inputs)
	assert.Equal(t, 0.25, cfg.LearningRate)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 5000, cfg.MaxSteps)
	assert.Equal(t, 100, cfg.LogEvery)
	// Defaults.
	assert.Equal(t, Interval{Low: optim.DefaultInitLow, High: optim.DefaultInitHigh}, cfg.Init)
	assert.Equal(t, optim.DefaultEpsilon, cfg.Epsilon)

	layers, err := cfg.NetworkLayers()
	require.NoError(t, err)
	assert.Equal(t, []nn.LayerConfig{
		{Neurons: 3, Activation: activation.Tanh, Bias: 1},
		{Neurons: 1, Activation: activation.Sigmoid, Bias: 0.5},
	}, layers)
	assert.Equal(t, optim.Config{LearningRate: 0.25}, cfg.TrainerConfig())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "inputs: 2\nlayerz: []\n", "layerz"},
		{"no inputs", "layers:\n  - {neurons: 1, activation: sigmoid}\n", "inputs must be > 0"},
		{"no layers", "inputs: 2\n", "at least one layer"},
		{"zero neurons", "inputs: 2\nlayers:\n  - {neurons: 0, activation: sigmoid}\n", "layers[0]: neurons"},
		{"bad activation", "inputs: 2\nlayers:\n  - {neurons: 1, activation: softmax}\n", "unknown activation kind"},
		{"bad momentum", "inputs: 2\nmomentum: 1\nlayers:\n  - {neurons: 1, activation: sigmoid}\n", "momentum"},
		{"bad interval", "inputs: 2\ninit: {low: 1, high: 0}\nlayers:\n  - {neurons: 1, activation: sigmoid}\n", "init"},
		{"negative lr", "inputs: 2\nlearning_rate: -1\nlayers:\n  - {neurons: 1, activation: sigmoid}\n", "learning_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg, err := Preset("xor")
	require.NoError(t, err)

	cfg.ApplyOverrides(Overrides{LearningRate: 0.1, Seed: 9})
	assert.Equal(t, 0.1, cfg.LearningRate)
	assert.Equal(t, uint64(9), cfg.Seed)
	// Untouched.
	assert.Equal(t, 1_000_000, cfg.MaxSteps)
	assert.Equal(t, 1e-5, cfg.Epsilon)
	assert.Equal(t, 1000, cfg.LogEvery)
}

func TestPreset(t *testing.T) {
	xor, err := Preset("xor")
	require.NoError(t, err)
	assert.Equal(t, 2, xor.Inputs)
	require.Len(t, xor.Layers, 2)
	assert.Equal(t, 1, xor.Layers[1].Neurons)

	digits, err := Preset("digits")
	require.NoError(t, err)
	assert.Equal(t, 35, digits.Inputs)
	assert.Equal(t, 10, digits.Layers[1].Neurons)
	assert.Equal(t, 1e-6, digits.Epsilon)

	_, err = Preset("mnist")
	assert.Error(t, err)
}
