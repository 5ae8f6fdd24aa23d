package cmd

import (
	"github.com/spf13/cobra"

	"github.com/numerics/economize/approximation"
	"github.com/numerics/economize/internal/report"
)

var (
	curvePoints int
	errorCurve  bool
)

var curveCmd = &cobra.Command{
	Use:   "curve " + targetUse,
	Short: "Sample the approximation or its error on the interval",
	Long: `Samples the approximation polynomial, or with --error the absolute error
|f(x) - p(x)|, at evenly spaced points of [a, b]. Points where the function
cannot be evaluated are left out.

Examples:
  economize curve -o json "sin(x)" 0 1 5
  economize curve --error --points 50 "cos(x)" 0 1 4`,
	Args: cobra.ExactArgs(4),
	RunE: runCurve,
}

func init() {
	rootCmd.AddCommand(curveCmd)

	addApproximationFlags(curveCmd)
	curveCmd.Flags().IntVar(&curvePoints, "points", approximation.DefaultCurvePoints, "number of points")
	curveCmd.Flags().BoolVar(&errorCurve, "error", false, "sample the absolute error instead of the polynomial")
}

func runCurve(cmd *cobra.Command, args []string) error {

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

	sample, title := a.Curve, a.Title
	if errorCurve {
		sample, title = a.ErrorCurve, a.ErrorTitle
	}

	points, err := sample(curvePoints)
	if err != nil {
		return t.fail(err)
	}

	name, err := title()
	if err != nil {
		return t.fail(err)
	}

	return report.NewCurve(name, points).Write(cmd.OutOrStdout(), cfg.Output.Format)
}
