package optim

import (
	"context"
	"log"
	"math/rand/v2"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/parallel"
	pkgerrors "github.com/pkg/errors"
)

// Defaults used by Fit for zero FitConfig fields.
const (
	DefaultMaxSteps = 1_000_000
	DefaultEpsilon  = 1e-5
)

// FitConfig controls the Fit training loop.
type FitConfig struct {
	MaxSteps int     // Upper bound on Train calls (default: 1,000,000)
	Epsilon  float64 // Target dataset MSE (default: 1e-5)
	LogEvery int     // Log the step error every N steps (0 disables)

	Logger   *log.Logger     // Destination for progress lines (nil disables)
	Rand     *rand.Rand      // Sample picker (nil uses the global source)
	Parallel parallel.Config // Used by the dataset-wide Evaluate checks
}

// FitResult summarizes a Fit run.
type FitResult struct {
	Steps        int     // Train calls performed
	StepError    float64 // Error returned by the last Train call
	DatasetError float64 // Dataset-wide MSE after the last check
	Converged    bool    // DatasetError <= Epsilon
}

// Fit trains l on samples one random sample at a time.
//
// Whenever a single step's error is at or below Epsilon, the whole dataset is
// evaluated; training stops once the dataset MSE is at or below Epsilon too,
// or after MaxSteps steps. ctx is checked between steps.
func Fit(ctx context.Context, l Learner, samples []Sample, cfg FitConfig) (FitResult, error) {
	var res FitResult
	if len(samples) == 0 {
		return res, ErrEmptyDataset
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultEpsilon
	}
	pick := rand.IntN
	if cfg.Rand != nil {
		pick = cfg.Rand.IntN
	}

	for step := 1; step <= cfg.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		s := samples[pick(len(samples))]
		stepErr, err := l.Train(s.Input, s.Target)
		if err != nil {
			return res, pkgerrors.Wrapf(err, "step %d", step)
		}
		res.Steps = step
		res.StepError = stepErr

		if cfg.Logger != nil && cfg.LogEvery > 0 && step%cfg.LogEvery == 0 {
			cfg.Logger.Printf("step=%d error=%.6g", step, stepErr)
		}

		if stepErr <= cfg.Epsilon {
			dsErr, err := Evaluate(l.Network(), samples, cfg.Parallel)
			if err != nil {
				return res, pkgerrors.Wrapf(err, "step %d", step)
			}
			res.DatasetError = dsErr
			if dsErr <= cfg.Epsilon {
				res.Converged = true
				break
			}
		}
	}

	if !res.Converged {
		dsErr, err := Evaluate(l.Network(), samples, cfg.Parallel)
		if err != nil {
			return res, err
		}
		res.DatasetError = dsErr
	}
	if cfg.Logger != nil {
		cfg.Logger.Printf("done steps=%d error=%.6g dataset_error=%.6g converged=%t",
			res.Steps, res.StepError, res.DatasetError, res.Converged)
	}
	return res, nil
}

// Evaluate returns the mean over samples of each sample's output MSE.
//
// Forward passes run concurrently according to cfg; the network must not be
// trained while Evaluate runs.
func Evaluate(net *nn.Network, samples []Sample, cfg parallel.Config) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrEmptyDataset
	}
	errs := make([]float64, len(samples))
	err := parallel.For(len(samples), func(i int) error {
		out, err := net.Forward(samples[i].Input)
		if err != nil {
			return pkgerrors.Wrapf(err, "sample %d", i)
		}
		errs[i], err = MeanSquaredError(out, samples[i].Target)
		return pkgerrors.Wrapf(err, "sample %d", i)
	}, cfg)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, e := range errs {
		sum += e
	}
	return sum / float64(len(errs)), nil
}
