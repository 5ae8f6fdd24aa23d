package bignum

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInterval is returned when an interval is not of the form [A, B] with A <= B finite.
	ErrInvalidInterval = errors.New("bignum: invalid interval")

	// ErrInvalidStep is returned when a sampling step is not positive and
	// finite, or too small to move past a point of the interval.
	ErrInvalidStep = errors.New("bignum: invalid step")

	// ErrTooManySamples is returned when sampling an interval would produce
	// more than MaxSamples points.
	ErrTooManySamples = errors.New("bignum: too many samples")
)

// MaxSamples is the largest number of points returned by Samples.
const MaxSamples = 1 << 20

// Interval is a struct storing the domain [A, B] of a polynomial approximation.
type Interval struct {
	A, B float64
}

// NewInterval returns the interval [a, b].
func NewInterval(a, b float64) Interval {
	return Interval{A: a, B: b}
}

// Validate returns ErrInvalidInterval if A > B or if a bound is not finite.
func (i Interval) Validate() error {
	if math.IsNaN(i.A) || math.IsNaN(i.B) || math.IsInf(i.A, 0) || math.IsInf(i.B, 0) {
		return fmt.Errorf("%w: bounds of %s must be finite", ErrInvalidInterval, i)
	}
	if i.A > i.B {
		return fmt.Errorf("%w: lower bound of %s is greater than the upper bound", ErrInvalidInterval, i)
	}
	return nil
}

// Width returns B - A.
func (i Interval) Width() float64 {
	return i.B - i.A
}

// Samples returns the points A, A+step, A+2*step, ... while the point is not
// greater than B+step. The last point may overshoot B by up to one step.
// The points are accumulated in float64, x += step, so they carry the usual
// rounding of repeated additions.
//
// Returns ErrInvalidStep if step is not positive and finite or if adding it
// leaves a point unchanged, and ErrTooManySamples past MaxSamples points.
func (i Interval) Samples(step float64) (xs []float64, err error) {

	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: step %v must be positive and finite", ErrInvalidStep, step)
	}

	// (B + step - A) / step + 1 points, up to rounding.
	if n := i.Width()/step + 2; !(n <= MaxSamples) {
		return nil, fmt.Errorf("%w: sampling %s every %v needs about %g points, more than %d", ErrTooManySamples, i, step, n, MaxSamples)
	}

	for x := i.A; x <= i.B+step; x += step {

		if x+step == x {
			return nil, fmt.Errorf("%w: step %v is below the float64 spacing at %v", ErrInvalidStep, step, x)
		}

		if len(xs) == MaxSamples {
			return nil, fmt.Errorf("%w: sampling %s every %v exceeds %d points", ErrTooManySamples, i, step, MaxSamples)
		}

		xs = append(xs, x)
	}

	return xs, nil
}

// Linspace returns n evenly spaced points covering [A, B].
func (i Interval) Linspace(n int) (xs []float64) {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{i.A}
	}

	xs = make([]float64, n)
	delta := i.Width() / float64(n-1)
	for k := range xs {
		xs[k] = i.A + float64(k)*delta
	}
	xs[n-1] = i.B
	return
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.A, i.B)
}
