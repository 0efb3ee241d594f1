// Package datasets holds the small fixed training sets used by the demo
// drivers and tests.
package datasets

import (
	"github.com/born-ml/feedforward/internal/linalg"
	"github.com/born-ml/feedforward/internal/optim"
)

// XOR returns the four-row exclusive-or truth table with 2 inputs and 1 output.
func XOR() []optim.Sample {
	return []optim.Sample{
		{Input: linalg.VectorOf(0, 0), Target: linalg.VectorOf(0)},
		{Input: linalg.VectorOf(0, 1), Target: linalg.VectorOf(1)},
		{Input: linalg.VectorOf(1, 0), Target: linalg.VectorOf(1)},
		{Input: linalg.VectorOf(1, 1), Target: linalg.VectorOf(0)},
	}
}
