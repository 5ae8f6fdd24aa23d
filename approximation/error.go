package approximation

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/montanaflynn/stats"

	"github.com/numerics/economize/utils/bignum"
)

// ErrorStats summarizes the absolute error |f(x) - p(x)| over the sampled
// points of the interval.
type ErrorStats struct {
	Max     float64 `json:"max" yaml:"max"`
	Mean    float64 `json:"mean" yaml:"mean"`
	StdDev  float64 `json:"stddev" yaml:"stddev"`
	Samples int     `json:"samples" yaml:"samples"`
}

// MaxError returns the maximum of |f(x) - p(x)| over the points A, A+step,
// A+2*step, ... up to B+step, where f is evaluated with arbitrary precision
// and p is evaluated exactly.
//
// Points at which f cannot be evaluated are logged and skipped. The result is
// memoized per step.
func (a *Approximation) MaxError(step float64) (float64, error) {

	if err := a.check(); err != nil {
		return 0, err
	}

	if err := checkStep(step); err != nil {
		return 0, err
	}

	a.mu.Lock()
	max, ok := a.errors[step]
	a.mu.Unlock()

	if ok {
		return max, nil
	}

	diffs, err := a.absErrors(step)
	if err != nil {
		return 0, err
	}

	if max, err = stats.Max(diffs); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrComputationIncomplete, err)
	}

	a.mu.Lock()
	a.errors[step] = max
	a.mu.Unlock()

	a.logger.Info("computed maximum error", "error", max, "step", step, "samples", len(diffs))

	return max, nil
}

// NumericMaxError returns the maximum of |fn(x) - p(x)| over the same points
// as MaxError, where p is evaluated in float64 from Coefficients. It is meant
// to cross-check MaxError against an independent float64 rendition of the
// function. Points where fn is not finite are skipped.
func (a *Approximation) NumericMaxError(fn func(float64) float64, step float64) (float64, error) {

	if err := a.check(); err != nil {
		return 0, err
	}

	if fn == nil {
		return 0, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}

	if err := checkStep(step); err != nil {
		return 0, err
	}

	coeffs, err := a.Coefficients()
	if err != nil {
		return 0, err
	}

	samples, err := a.samples(step)
	if err != nil {
		return 0, err
	}

	diffs := make(stats.Float64Data, 0, len(samples))

	for _, x := range samples {
		y := fn(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			a.logger.Warn("skipping sample", "x", x, "value", y)
			continue
		}
		diffs = append(diffs, math.Abs(y-bignum.Polyval(coeffs, x)))
	}

	max, err := stats.Max(diffs)
	if err != nil {
		return 0, fmt.Errorf("%w: no sample could be evaluated: %w", ErrComputationIncomplete, err)
	}

	a.logger.Info("computed numeric maximum error", "error", max, "step", step, "samples", len(diffs))

	return max, nil
}

// ErrorStats returns the maximum, the mean and the standard deviation of the
// absolute error over the same points as MaxError.
func (a *Approximation) ErrorStats(step float64) (s ErrorStats, err error) {

	if err = a.check(); err != nil {
		return
	}

	if err = checkStep(step); err != nil {
		return
	}

	diffs, err := a.absErrors(step)
	if err != nil {
		return
	}

	s.Samples = len(diffs)

	if s.Max, err = stats.Max(diffs); err != nil {
		return ErrorStats{}, fmt.Errorf("%w: %w", ErrComputationIncomplete, err)
	}

	if s.Mean, err = stats.Mean(diffs); err != nil {
		return ErrorStats{}, fmt.Errorf("%w: %w", ErrComputationIncomplete, err)
	}

	if s.StdDev, err = stats.StandardDeviation(diffs); err != nil {
		return ErrorStats{}, fmt.Errorf("%w: %w", ErrComputationIncomplete, err)
	}

	return s, nil
}

func checkStep(step float64) error {
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: step %v must be positive and finite", ErrInvalidArgument, step)
	}
	return nil
}

// samples returns the sampled points of the interval every step.
func (a *Approximation) samples(step float64) ([]float64, error) {
	xs, err := a.interval.Samples(step)
	switch {
	case errors.Is(err, bignum.ErrTooManySamples):
		return nil, fmt.Errorf("%w: %w", ErrResourceExhausted, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return xs, nil
}

// absErrors returns |f(x) - p(x)| at every sample where f can be evaluated.
func (a *Approximation) absErrors(step float64) (stats.Float64Data, error) {

	samples, err := a.samples(step)
	if err != nil {
		return nil, err
	}

	diffs := make(stats.Float64Data, 0, len(samples))

	for _, x := range samples {
		d, err := a.absErrorAt(x)
		if err != nil {
			a.logger.Warn("skipping sample", "x", x, "error", err)
			continue
		}
		diffs = append(diffs, d)
	}

	if len(diffs) == 0 {
		return nil, fmt.Errorf("%w: no sample of %s could be evaluated", ErrComputationIncomplete, a.interval)
	}

	return diffs, nil
}

func (a *Approximation) absErrorAt(x float64) (float64, error) {

	fx, err := a.function.Evaluate(bignum.NewFloat(x, a.prec))
	if err != nil {
		return 0, err
	}

	px := bignum.NewFloat(a.polynomial.EvaluateRat(bignum.NewRat(x)), a.prec)

	d := new(big.Float).SetPrec(a.prec).Sub(fx, px)
	f, _ := d.Abs(d).Float64()

	return f, nil
}
