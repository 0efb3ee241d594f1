package nn

import (
	"fmt"

	"github.com/born-ml/feedforward/internal/linalg"
	pkgerrors "github.com/pkg/errors"
)

// Trainable is the mutating view of a Network used by trainers.
//
// It exposes the per-layer forward step and in-place weight updates that the
// public inference API deliberately hides. Obtain one with Network.Trainable.
type Trainable struct {
	n *Network
}

// Trainable returns the training-only view of n.
func (n *Network) Trainable() *Trainable {
	return &Trainable{n: n}
}

// Network returns the underlying network.
func (t *Trainable) Network() *Network {
	return t.n
}

// Width returns the length of layer i's bias-augmented input (its weight
// matrix column count).
func (t *Trainable) Width(i int) int {
	return t.n.layers[i].weights.Cols()
}

// Neurons returns the neuron count of layer i.
func (t *Trainable) Neurons(i int) int {
	return t.n.layers[i].config.Neurons
}

// Augment writes src followed by layer i's bias into dst.
func (t *Trainable) Augment(i int, dst, src linalg.Vector) error {
	return t.n.augment(i, dst, src)
}

// ForwardLayer computes dst = f(W_i × augmented), where augmented already
// carries the bias term.
func (t *Trainable) ForwardLayer(i int, dst, augmented linalg.Vector) error {
	return t.n.step(i, dst, augmented)
}

// Derivative returns layer i's activation derivative, parameterized by the
// layer output.
func (t *Trainable) Derivative(i int) func(y float64) float64 {
	return t.n.layers[i].fn.Derivative
}

// TransposeTo writes the transpose of layer i's weights into dst.
func (t *Trainable) TransposeTo(i int, dst *linalg.Matrix) error {
	return pkgerrors.Wrapf(t.n.layers[i].weights.TransposeTo(dst), "layer %d", i)
}

// SubRow subtracts delta from row r of layer i's weights in place.
func (t *Trainable) SubRow(i, r int, delta linalg.Vector) error {
	row, err := t.n.layers[i].weights.Row(r)
	if err != nil {
		return pkgerrors.Wrapf(err, "layer %d", i)
	}
	return pkgerrors.Wrapf(row.SubAssign(delta), "layer %d row %d", i, r)
}

// Fill sets every weight to fn(layer, row, col) and marks the network
// initialized.
func (t *Trainable) Fill(fn func(layer, row, col int) float64) {
	for i := range t.n.layers {
		l := &t.n.layers[i]
		for r := 0; r < l.weights.Rows(); r++ {
			row, _ := l.weights.Row(r)
			raw := row.Raw()
			for c := range raw {
				raw[c] = fn(i, r, c)
			}
		}
		l.ready = true
	}
}

// SetWeights copies m into layer i's weights. The network counts as
// initialized once every layer has been set or filled.
func (t *Trainable) SetWeights(i int, m *linalg.Matrix) error {
	if i < 0 || i >= len(t.n.layers) {
		return fmt.Errorf("set weights: %w: layer %d of %d", linalg.ErrIndexOutOfRange, i, len(t.n.layers))
	}
	l := &t.n.layers[i]
	if m.Rows() != l.weights.Rows() {
		return pkgerrors.Wrapf(&linalg.DimensionError{Op: "set weights rows", Want: l.weights.Rows(), Got: m.Rows()}, "layer %d", i)
	}
	if m.Cols() != l.weights.Cols() {
		return pkgerrors.Wrapf(&linalg.DimensionError{Op: "set weights cols", Want: l.weights.Cols(), Got: m.Cols()}, "layer %d", i)
	}
	for r := 0; r < m.Rows(); r++ {
		row, _ := m.Row(r)
		_ = l.weights.SetRow(r, row)
	}
	l.ready = true
	return nil
}
