package optim

import (
	"github.com/born-ml/feedforward/internal/linalg"
	pkgerrors "github.com/pkg/errors"
)

// MeanSquaredError returns mean((output - target)²).
func MeanSquaredError(output, target linalg.Vector) (float64, error) {
	diff, err := output.Sub(target)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "mse")
	}
	return meanSquare(diff), nil
}

// meanSquare returns mean(v²), or 0 for an empty vector.
func meanSquare(v linalg.Vector) float64 {
	if v.Len() == 0 {
		return 0
	}
	sum, _ := v.Dot(v)
	return sum / float64(v.Len())
}
