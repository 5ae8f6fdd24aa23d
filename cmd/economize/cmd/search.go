package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/numerics/economize/approximation"
	"github.com/numerics/economize/internal/report"
)

var (
	startTaylorDegree int
	maxIterations     int
)

var searchCmd = &cobra.Command{
	Use:   "search " + targetUse,
	Short: "Search the Taylor degree with the lowest error",
	Long: `Builds approximations of increasing Taylor degree, starting at degree + 1,
as long as the maximum error decreases, and prints the best one.

Examples:
  economize search "sin(x)" 0 1 8
  economize search --start-taylor-degree 12 --max-iterations 10 "log(1 + x)" 0 0.5 6`,
	Args: cobra.ExactArgs(4),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addApproximationFlags(searchCmd)
	searchCmd.Flags().IntVar(&startTaylorDegree, "start-taylor-degree", 0, "Taylor degree of the first candidate (default: degree + 1)")
	searchCmd.Flags().IntVar(&maxIterations, "max-iterations", approximation.DefaultMaxIterations, "maximum number of improvements")
}

func runSearch(cmd *cobra.Command, args []string) error {

	if cmd.Flags().Changed("max-iterations") {
		cfg.Search.MaxIterations = maxIterations
	}

	if err := applyFlags(cmd); err != nil {
		return err
	}

	t, err := parseTarget(args)
	if err != nil {
		return err
	}

	opts := []approximation.SearchOption{
		approximation.WithMaxIterations(cfg.Search.MaxIterations),
		approximation.WithStep(cfg.Approximation.Step),
		approximation.WithSearchLogger(logger),
		approximation.WithApproximationOptions(approximationOptions()...),
	}

	if cmd.Flags().Changed("start-taylor-degree") {
		opts = append(opts, approximation.WithStartTaylorDegree(startTaylorDegree))
	}

	res, searchErr := approximation.Search(t.function, t.interval, t.degree, opts...)
	// On exhaustion of the iterations the best candidate so far is still
	// reported. Other failures, sampling limits included, carry no result.
	if searchErr != nil && (res == nil || !errors.Is(searchErr, approximation.ErrResourceExhausted)) {
		return t.fail(searchErr)
	}

	r, err := report.FromSearch(res, cfg.Approximation.Step)
	if err != nil {
		return t.fail(err)
	}

	if err = r.Write(cmd.OutOrStdout(), cfg.Output.Format); err != nil {
		return err
	}

	if searchErr != nil {
		return t.fail(searchErr)
	}

	return nil
}
