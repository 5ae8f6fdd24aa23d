package approximation

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/numerics/economize/symbolic"
	"github.com/numerics/economize/utils/bignum"
)

// DefaultMaxIterations is the default bound on the number of improvements of Search.
const DefaultMaxIterations = 64

type searchOptions struct {
	startTaylorDegree int
	maxIterations     int
	step              float64
	approximation     []Option
	logger            *slog.Logger
}

// SearchOption configures Search.
type SearchOption func(*searchOptions)

// WithStartTaylorDegree sets the Taylor degree of the first candidate.
// Defaults to the polynomial degree plus one.
func WithStartTaylorDegree(n int) SearchOption {
	return func(o *searchOptions) { o.startTaylorDegree = n }
}

// WithMaxIterations bounds the number of times the search may move to a
// higher Taylor degree. Defaults to DefaultMaxIterations.
func WithMaxIterations(n int) SearchOption {
	return func(o *searchOptions) { o.maxIterations = n }
}

// WithStep sets the sampling step used to compare the candidates.
// Defaults to DefaultStep.
func WithStep(step float64) SearchOption {
	return func(o *searchOptions) { o.step = step }
}

// WithApproximationOptions sets the options passed to New for every
// candidate. A WithTaylorDegree among them is ignored.
func WithApproximationOptions(opts ...Option) SearchOption {
	return func(o *searchOptions) { o.approximation = append(o.approximation, opts...) }
}

// WithSearchLogger sets the logger of the search. It is also the default
// logger of the candidates. Defaults to slog.Default().
func WithSearchLogger(logger *slog.Logger) SearchOption {
	return func(o *searchOptions) { o.logger = logger }
}

// SearchResult is the outcome of Search.
type SearchResult struct {
	// Best is the candidate with the lowest maximum error found.
	Best *Approximation

	StartTaylorDegree int

	// Iterations is the number of times the search moved to a higher Taylor degree.
	Iterations int

	// Converged is false if the search stopped on the iteration bound.
	Converged bool

	// Errors is the maximum error of every candidate, in construction order.
	Errors []float64

	// RunID identifies the search in the logs.
	RunID string
}

// Search looks for the Taylor degree that minimizes the maximum error of
// the approximation of f on interval by a polynomial of degree at most
// polynomialDegree.
//
// Starting from the start Taylor degree, candidates of increasing Taylor
// degree are built as long as each one strictly improves on the previous
// one. The previous candidate is returned on the first non-improvement.
// Construction and evaluation failures are returned unchanged.
//
// If the error is still decreasing after the configured number of
// iterations, the best candidate so far is returned along with an error
// wrapping ErrResourceExhausted.
func Search(f symbolic.Function, interval bignum.Interval, polynomialDegree int, opts ...SearchOption) (*SearchResult, error) {

	o := searchOptions{
		startTaylorDegree: polynomialDegree + 1,
		maxIterations:     DefaultMaxIterations,
		step:              DefaultStep,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	if o.maxIterations < 0 {
		return nil, fmt.Errorf("%w: maximum number of iterations %d must be non-negative", ErrInvalidArgument, o.maxIterations)
	}

	if err := checkStep(o.step); err != nil {
		return nil, err
	}

	res := &SearchResult{
		StartTaylorDegree: o.startTaylorDegree,
		RunID:             uuid.NewString(),
	}

	logger := o.logger.With("run_id", res.RunID)

	logger.Info("searching best approximation",
		"function", fmt.Sprint(f),
		"interval", interval.String(),
		"polynomial_degree", polynomialDegree,
		"start_taylor_degree", o.startTaylorDegree)

	candidate := func(taylorDegree int) (*Approximation, float64, error) {

		approxOpts := make([]Option, 0, len(o.approximation)+2)
		approxOpts = append(approxOpts, WithLogger(logger))
		approxOpts = append(approxOpts, o.approximation...)
		approxOpts = append(approxOpts, WithTaylorDegree(taylorDegree))

		a, err := New(f, interval, polynomialDegree, approxOpts...)
		if err != nil {
			return nil, 0, err
		}

		e, err := a.MaxError(o.step)
		if err != nil {
			return nil, 0, err
		}

		res.Errors = append(res.Errors, e)

		return a, e, nil
	}

	prev, prevErr, err := candidate(o.startTaylorDegree)
	if err != nil {
		return nil, err
	}

	curr, currErr, err := candidate(o.startTaylorDegree + 1)
	if err != nil {
		return nil, err
	}

	for prevErr > currErr {

		if res.Iterations == o.maxIterations {
			res.Best = curr
			logger.Warn("search stopped before convergence",
				"iterations", res.Iterations,
				"taylor_degree", curr.TaylorDegree(),
				"error", currErr)
			return res, fmt.Errorf("%w: error still decreasing after %d iterations", ErrResourceExhausted, res.Iterations)
		}

		logger.Debug("error improved",
			"taylor_degree", curr.TaylorDegree(),
			"previous_error", prevErr,
			"error", currErr)

		prev, prevErr = curr, currErr

		if curr, currErr, err = candidate(prev.TaylorDegree() + 1); err != nil {
			return nil, err
		}

		res.Iterations++
	}

	res.Best = prev
	res.Converged = true

	logger.Info("found best approximation",
		"taylor_degree", prev.TaylorDegree(),
		"error", prevErr,
		"iterations", res.Iterations)

	return res, nil
}
