package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/numerics/economize/approximation"
	"github.com/numerics/economize/symbolic"
	"github.com/numerics/economize/utils/bignum"
)

// target is the function, interval and degree given on the command line.
type target struct {
	function symbolic.Expr
	src      string
	interval bignum.Interval
	degree   int

	// bounds and order are the arguments as given, for error messages.
	bounds [2]string
	order  string
}

const targetUse = "<function> <a> <b> <degree>"

// parseTarget parses the arguments "<function> <a> <b> <degree>".
func parseTarget(args []string) (t target, err error) {

	t.src = args[0]
	t.bounds = [2]string{args[1], args[2]}
	t.order = args[3]

	if t.interval.A, err = strconv.ParseFloat(args[1], 64); err != nil {
		return t, t.fail(fmt.Errorf("%w: lower bound %q: %w", approximation.ErrInvalidArgument, args[1], err))
	}

	if t.interval.B, err = strconv.ParseFloat(args[2], 64); err != nil {
		return t, t.fail(fmt.Errorf("%w: upper bound %q: %w", approximation.ErrInvalidArgument, args[2], err))
	}

	if t.degree, err = strconv.Atoi(args[3]); err != nil {
		return t, t.fail(fmt.Errorf("%w: degree %q: %w", approximation.ErrInvalidArgument, args[3], err))
	}

	if t.function, err = symbolic.Parse(t.src); err != nil {
		return t, t.fail(err)
	}

	return t, nil
}

// fail wraps err with the description of the target.
func (t target) fail(err error) error {
	return &failure{target: t, err: err}
}

// failure is a failed computation on a target.
type failure struct {
	target target
	err    error
}

func (f *failure) Error() string {
	t := f.target
	return fmt.Sprintf("%s on [%s, %s] at degree %s: %s: %v", t.src, t.bounds[0], t.bounds[1], t.order, kind(f.err), f.err)
}

func (f *failure) Unwrap() error {
	return f.err
}

func kind(err error) string {
	switch {
	case errors.Is(err, approximation.ErrInvalidArgument):
		return "invalid argument"
	case errors.Is(err, symbolic.ErrSyntax):
		return "syntax error"
	case errors.Is(err, approximation.ErrResourceExhausted):
		return "resource exhausted"
	case errors.Is(err, approximation.ErrComputationIncomplete):
		return "computation incomplete"
	}
	return "failure"
}

// approximation flags, overriding the configuration when set.
var (
	taylorDegree int
	point        float64
	precision    uint
	step         float64
)

func addApproximationFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&taylorDegree, "taylor-degree", approximation.DefaultTaylorDegree, "order of the Taylor series")
	cmd.Flags().Float64Var(&point, "point", 0, "expansion point of the Taylor series")
	cmd.Flags().UintVar(&precision, "precision", bignum.DefaultPrecision, "bits of precision of the evaluations")
	cmd.Flags().Float64Var(&step, "step", approximation.DefaultStep, "sampling step of the error")
}

// applyFlags copies the flags set on cmd into the configuration.
func applyFlags(cmd *cobra.Command) error {

	if cmd.Flags().Changed("taylor-degree") {
		cfg.Approximation.TaylorDegree = taylorDegree
	}

	if cmd.Flags().Changed("point") {
		cfg.Approximation.Point = point
	}

	if cmd.Flags().Changed("precision") {
		cfg.Approximation.Precision = precision
	}

	if cmd.Flags().Changed("step") {
		cfg.Approximation.Step = step
	}

	return cfg.Validate()
}

// approximationOptions returns the options of New from the configuration.
func approximationOptions() []approximation.Option {
	return []approximation.Option{
		approximation.WithTaylorDegree(cfg.Approximation.TaylorDegree),
		approximation.WithPoint(cfg.Approximation.Point),
		approximation.WithPrecision(cfg.Approximation.Precision),
		approximation.WithLogger(logger),
	}
}
