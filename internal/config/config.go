// Package config loads training run descriptions from YAML.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/feedforward/internal/activation"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Layer describes one dense layer.
type Layer struct {
	Neurons    int     `yaml:"neurons"`
	Activation string  `yaml:"activation"`
	Bias       float64 `yaml:"bias"`
}

// Interval is a closed weight-initialization range.
type Interval struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Config captures a network topology and the knobs of a training run.
type Config struct {
	Inputs       int      `yaml:"inputs"`
	Layers       []Layer  `yaml:"layers"`
	LearningRate float64  `yaml:"learning_rate"`
	Momentum     float64  `yaml:"momentum"`
	Init         Interval `yaml:"init"`
	Seed         uint64   `yaml:"seed"`
	MaxSteps     int      `yaml:"max_steps"`
	Epsilon      float64  `yaml:"epsilon"`
	LogEvery     int      `yaml:"log_every"`
}

// Overrides captures CLI supplied values. Zero fields are ignored.
type Overrides struct {
	LearningRate float64
	Seed         uint64
	MaxSteps     int
	Epsilon      float64
	LogEvery     int
}

// Load reads and validates a Config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes and validates a Config. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.MaxSteps > 0 {
		c.MaxSteps = o.MaxSteps
	}
	if o.Epsilon > 0 {
		c.Epsilon = o.Epsilon
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable and fills defaults.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Inputs <= 0 {
		return errors.Errorf("inputs must be > 0 (got %d)", c.Inputs)
	}
	if len(c.Layers) == 0 {
		return errors.New("at least one layer is required")
	}
	for i, l := range c.Layers {
		if l.Neurons <= 0 {
			return errors.Errorf("layers[%d]: neurons must be > 0 (got %d)", i, l.Neurons)
		}
		if _, err := activation.ParseKind(l.Activation); err != nil {
			return errors.Wrapf(err, "layers[%d]", i)
		}
	}
	if c.LearningRate < 0 {
		return errors.Errorf("learning_rate must be > 0 (got %v)", c.LearningRate)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return errors.Errorf("momentum must be in [0, 1) (got %v)", c.Momentum)
	}
	if c.Init == (Interval{}) {
		c.Init = Interval{Low: optim.DefaultInitLow, High: optim.DefaultInitHigh}
	}
	if c.Init.Low > c.Init.High {
		return errors.Errorf("init: low %v > high %v", c.Init.Low, c.Init.High)
	}
	if c.LearningRate == 0 {
		c.LearningRate = optim.DefaultLearningRate
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = optim.DefaultMaxSteps
	}
	if c.Epsilon <= 0 {
		c.Epsilon = optim.DefaultEpsilon
	}
	if c.LogEvery < 0 {
		return errors.Errorf("log_every must be >= 0 (got %d)", c.LogEvery)
	}
	return nil
}

// NetworkLayers converts the layer list to nn.LayerConfig values.
func (c *Config) NetworkLayers() ([]nn.LayerConfig, error) {
	out := make([]nn.LayerConfig, len(c.Layers))
	for i, l := range c.Layers {
		kind, err := activation.ParseKind(l.Activation)
		if err != nil {
			return nil, errors.Wrapf(err, "layers[%d]", i)
		}
		out[i] = nn.LayerConfig{Neurons: l.Neurons, Activation: kind, Bias: l.Bias}
	}
	return out, nil
}

// TrainerConfig returns the optim.Config described by c.
func (c *Config) TrainerConfig() optim.Config {
	return optim.Config{LearningRate: c.LearningRate, Momentum: c.Momentum}
}

// Preset returns the built-in configuration for a demo task ("xor" or
// "digits").
func Preset(name string) (*Config, error) {
	var cfg Config
	switch name {
	case "xor":
		cfg = Config{
			Inputs: 2,
			Layers: []Layer{
				{Neurons: 2, Activation: "sigmoid", Bias: 1},
				{Neurons: 1, Activation: "sigmoid", Bias: 1},
			},
			Epsilon: 1e-5,
		}
	case "digits":
		cfg = Config{
			Inputs: 35,
			Layers: []Layer{
				{Neurons: 35, Activation: "sigmoid", Bias: 1},
				{Neurons: 10, Activation: "sigmoid", Bias: 1},
			},
			Epsilon: 1e-6,
		}
	default:
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	cfg.LearningRate = 0.5
	cfg.Init = Interval{Low: -0.5, High: 0.5}
	cfg.Seed = 1
	cfg.MaxSteps = 1_000_000
	cfg.LogEvery = 1000
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
