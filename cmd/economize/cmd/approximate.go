package cmd

import (
	"github.com/spf13/cobra"

	"github.com/numerics/economize/approximation"
	"github.com/numerics/economize/internal/report"
	"github.com/numerics/economize/symbolic"
)

var check bool

var approximateCmd = &cobra.Command{
	Use:   "approximate " + targetUse,
	Short: "Approximate a function on an interval",
	Long: `Approximates a function on [a, b] by a polynomial of the given degree and
prints its coefficients and its maximum error.

Examples:
  economize approximate "sin(x)" 0 1 7
  economize approximate --taylor-degree 30 "exp(-x^2)" -1 1 8
  economize approximate --check -o markdown "cos(x)" 0 1 5`,
	Args: cobra.ExactArgs(4),
	RunE: runApproximate,
}

func init() {
	rootCmd.AddCommand(approximateCmd)

	addApproximationFlags(approximateCmd)
	approximateCmd.Flags().BoolVar(&check, "check", false, "cross-check the error with a float64 evaluation of the function")
}

func runApproximate(cmd *cobra.Command, args []string) error {

	if err := applyFlags(cmd); err != nil {
		return err
	}

	t, err := parseTarget(args)
	if err != nil {
		return err
	}

	a, err := approximation.New(t.function, t.interval, t.degree, approximationOptions()...)
	if err != nil {
		return t.fail(err)
	}

	r, err := report.New(a, cfg.Approximation.Step)
	if err != nil {
		return t.fail(err)
	}

	if check {

		fn, err := symbolic.NumericFunc(t.src)
		if err != nil {
			return t.fail(err)
		}

		numeric, err := a.NumericMaxError(fn, cfg.Approximation.Step)
		if err != nil {
			return t.fail(err)
		}

		r.NumericMaxError = &numeric

		logger.Info("numeric cross-check", "max_error", r.Error.Max, "numeric_max_error", numeric)
	}

	return r.Write(cmd.OutOrStdout(), cfg.Output.Format)
}
