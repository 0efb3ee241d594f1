// Package activation maps activation kinds to their scalar functions.
//
// Every activation is described by its forward function f(x) and its
// derivative expressed in terms of the activated output y = f(x). Backprop
// then only needs the layer outputs it already has, never the pre-activation
// sums. Only activations whose derivative has a closed form in y fit here.
package activation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
)

// Common errors.
var (
	ErrUnknownKind = errors.New("unknown activation kind")
	ErrInvalidFunc = errors.New("invalid activation function")
)

// Kind identifies an activation function.
type Kind uint8

// Built-in kinds.
const (
	Sigmoid Kind = iota
	Tanh
	ReLU
	Identity
)

// Func is a forward function paired with its output-parameterized derivative.
type Func struct {
	Name string

	// Forward computes y = f(x).
	Forward func(x float64) float64

	// Derivative computes f'(x) given y = f(x).
	Derivative func(y float64) float64
}

// Registry is a concurrency-safe Kind → Func table.
type Registry struct {
	mu    sync.RWMutex
	funcs map[Kind]Func
}

// NewRegistry creates a registry pre-populated with the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[Kind]Func, 4)}
	r.funcs[Sigmoid] = Func{Name: "sigmoid", Forward: sigmoid, Derivative: sigmoidDerivative}
	r.funcs[Tanh] = Func{Name: "tanh", Forward: math.Tanh, Derivative: tanhDerivative}
	r.funcs[ReLU] = Func{Name: "relu", Forward: relu, Derivative: reluDerivative}
	r.funcs[Identity] = Func{Name: "identity", Forward: identity, Derivative: one}
	return r
}

// Register adds or replaces the function for kind.
//
// Both Forward and Derivative must be set, and Name must be non-empty and not
// already used by a different kind.
func (r *Registry) Register(kind Kind, fn Func) error {
	if fn.Forward == nil || fn.Derivative == nil {
		return fmt.Errorf("%w: kind %d: forward and derivative are required", ErrInvalidFunc, kind)
	}
	name := strings.ToLower(strings.TrimSpace(fn.Name))
	if name == "" {
		return fmt.Errorf("%w: kind %d: name is required", ErrInvalidFunc, kind)
	}
	fn.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	for k, existing := range r.funcs {
		if k != kind && existing.Name == name {
			return fmt.Errorf("%w: name %q already registered for kind %d", ErrInvalidFunc, name, k)
		}
	}
	r.funcs[kind] = fn
	return nil
}

// Lookup returns the function registered for kind.
func (r *Registry) Lookup(kind Kind) (Func, error) {
	r.mu.RLock()
	fn, ok := r.funcs[kind]
	r.mu.RUnlock()
	if !ok {
		return Func{}, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	return fn, nil
}

// Parse returns the kind registered under name (case-insensitive).
func (r *Registry) Parse(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k, fn := range r.funcs {
		if fn.Name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Default is the process-wide registry used when none is supplied.
var Default = NewRegistry()

// Lookup returns the function registered for kind in Default.
func Lookup(kind Kind) (Func, error) {
	return Default.Lookup(kind)
}

// ParseKind returns the kind registered under name in Default.
func ParseKind(name string) (Kind, error) {
	return Default.Parse(name)
}

// String returns the name registered for k in Default.
func (k Kind) String() string {
	fn, err := Default.Lookup(k)
	if err != nil {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return fn.Name
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	fn, err := Default.Lookup(k)
	if err != nil {
		return nil, err
	}
	return []byte(fn.Name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func sigmoidDerivative(y float64) float64 {
	return y * (1.0 - y)
}

func tanhDerivative(y float64) float64 {
	return 1.0 - y*y
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// reluDerivative treats the kink at zero as flat.
func reluDerivative(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}

func identity(x float64) float64 {
	return x
}

func one(float64) float64 {
	return 1
}
