// Package approximation approximates real functions on an interval with
// polynomials of a given degree.
//
// An Approximation is built in two stages: the function is first expanded in
// a truncated Taylor series around a point, then the degree of the Taylor
// polynomial is lowered with Chebyshev polynomials (economization) until it
// does not exceed the requested degree.
package approximation

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"sync"

	"github.com/numerics/economize/chebyshev"
	"github.com/numerics/economize/symbolic"
	"github.com/numerics/economize/utils/bignum"
)

var (
	// ErrInvalidArgument is returned on a negative degree, a malformed
	// interval or a non-positive sampling step.
	ErrInvalidArgument = chebyshev.ErrInvalidArgument

	// ErrComputationIncomplete is returned when the series expansion or the
	// degree reduction failed, or when an Approximation was not built by New.
	ErrComputationIncomplete = errors.New("approximation: computation incomplete")

	// ErrResourceExhausted is returned by Search when the iteration bound is
	// reached before the error stopped decreasing.
	ErrResourceExhausted = errors.New("approximation: resource exhausted")
)

const (
	// DefaultTaylorDegree is the default order of the starting Taylor series.
	DefaultTaylorDegree = 20

	// DefaultStep is the default sampling step of the error evaluation.
	DefaultStep = 0.01
)

type options struct {
	taylorDegree int
	point        float64
	prec         uint
	cache        *chebyshev.Cache
	logger       *slog.Logger
}

// Option configures New.
type Option func(*options)

// WithTaylorDegree sets the order of the starting Taylor series: the series
// holds the terms of degree 0 to n-1. Defaults to DefaultTaylorDegree.
func WithTaylorDegree(n int) Option {
	return func(o *options) { o.taylorDegree = n }
}

// WithPoint sets the point around which the Taylor series is computed. Defaults to 0.
func WithPoint(point float64) Option {
	return func(o *options) { o.point = point }
}

// WithPrecision sets the bit precision of the arbitrary precision evaluations.
// Defaults to bignum.DefaultPrecision.
func WithPrecision(prec uint) Option {
	return func(o *options) { o.prec = prec }
}

// WithCache sets the Chebyshev cache used for the degree reduction.
// Defaults to chebyshev.Default().
func WithCache(cache *chebyshev.Cache) Option {
	return func(o *options) { o.cache = cache }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func newOptions(opts []Option) (o options) {
	o = options{
		taylorDegree: DefaultTaylorDegree,
		prec:         bignum.DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = chebyshev.Default()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return
}

// Approximation is a polynomial approximation of a function on an interval.
//
// An Approximation is immutable once built, except for the memoized errors.
// It is safe for concurrent use and must not be copied.
type Approximation struct {
	function         symbolic.Function
	interval         bignum.Interval
	polynomialDegree int
	taylorDegree     int
	point            float64
	prec             uint
	logger           *slog.Logger

	taylor     bignum.Polynomial
	polynomial bignum.Polynomial
	bound      *big.Rat
	complete   bool

	mu     sync.Mutex
	errors map[float64]float64
}

// New approximates function on interval with a polynomial of degree at most
// polynomialDegree.
//
// The Taylor series of function around the point is computed up to the
// configured order, then its degree is lowered with Chebyshev polynomials.
// The interval is used for error evaluation and rendering only.
//
// New either returns a complete Approximation or an error: a failure of the
// series expansion or of the reduction wraps ErrComputationIncomplete.
func New(function symbolic.Function, interval bignum.Interval, polynomialDegree int, opts ...Option) (*Approximation, error) {

	o := newOptions(opts)

	if function == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}

	logger := o.logger.With("function", function.String())

	logger.Info("initializing approximation",
		"interval", interval.String(),
		"polynomial_degree", polynomialDegree,
		"taylor_degree", o.taylorDegree,
		"point", o.point)

	a := &Approximation{
		function:         function,
		interval:         interval,
		polynomialDegree: polynomialDegree,
		taylorDegree:     o.taylorDegree,
		point:            o.point,
		prec:             o.prec,
		logger:           logger,
		errors:           map[float64]float64{},
	}

	if err := a.approximate(o.cache); err != nil {
		logger.Error("approximation failed", "error", err)
		return nil, err
	}

	a.complete = true

	return a, nil
}

func (a *Approximation) approximate(cache *chebyshev.Cache) (err error) {

	switch {
	case a.polynomialDegree < 0:
		return fmt.Errorf("%w: polynomial degree %d must be non-negative", ErrInvalidArgument, a.polynomialDegree)
	case a.taylorDegree < 1:
		return fmt.Errorf("%w: Taylor degree %d must be positive", ErrInvalidArgument, a.taylorDegree)
	case math.IsNaN(a.point) || math.IsInf(a.point, 0):
		return fmt.Errorf("%w: expansion point %v must be finite", ErrInvalidArgument, a.point)
	case a.prec < 53:
		return fmt.Errorf("%w: precision of %d bits is lower than float64", ErrInvalidArgument, a.prec)
	}

	if err = a.interval.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	a.logger.Info("creating Taylor approximation", "taylor_degree", a.taylorDegree, "point", a.point)

	point := bignum.NewRat(a.point)

	coeffs, err := a.function.Series(point, a.taylorDegree, a.prec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrComputationIncomplete, err)
	}

	a.taylor = bignum.NewPolynomial(coeffs).Translate(point)

	if a.polynomial, a.bound, err = cache.Economize(a.taylor, a.polynomialDegree); err != nil {
		return fmt.Errorf("%w: %w", ErrComputationIncomplete, err)
	}

	a.logger.Info("lowered polynomial degree", "taylor_degree", a.taylor.Degree(), "degree", a.polynomial.Degree())

	return nil
}

func (a *Approximation) check() error {
	if a == nil || !a.complete {
		return fmt.Errorf("%w: approximation was not built", ErrComputationIncomplete)
	}
	return nil
}

// Function returns the approximated function.
func (a *Approximation) Function() symbolic.Function {
	return a.function
}

// Interval returns the interval of the approximation.
func (a *Approximation) Interval() bignum.Interval {
	return a.interval
}

// PolynomialDegree returns the requested maximum degree.
func (a *Approximation) PolynomialDegree() int {
	return a.polynomialDegree
}

// TaylorDegree returns the order of the starting Taylor series.
func (a *Approximation) TaylorDegree() int {
	return a.taylorDegree
}

// Point returns the expansion point of the Taylor series.
func (a *Approximation) Point() float64 {
	return a.point
}

// Taylor returns the Taylor polynomial before the degree reduction.
func (a *Approximation) Taylor() (bignum.Polynomial, error) {
	if err := a.check(); err != nil {
		return bignum.Polynomial{}, err
	}
	return a.taylor, nil
}

// Polynomial returns the approximation polynomial with its exact coefficients.
func (a *Approximation) Polynomial() (bignum.Polynomial, error) {
	if err := a.check(); err != nil {
		return bignum.Polynomial{}, err
	}
	return a.polynomial, nil
}

// Bound returns the sum of the absolute values of the leading coefficients
// cancelled by the degree reduction. It bounds the difference between the
// Taylor polynomial and the approximation polynomial on [-1, 1].
func (a *Approximation) Bound() (*big.Rat, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	return new(big.Rat).Set(a.bound), nil
}

// Coefficients returns the coefficients of the approximation polynomial from
// the highest degree to the lowest, rounded to float64.
func (a *Approximation) Coefficients() ([]float64, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	coeffs := a.polynomial.Float64s()
	a.logger.Debug("coefficients of the approximation polynomial", "coefficients", coeffs)
	return coeffs, nil
}
