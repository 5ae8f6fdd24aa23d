package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/numerics/economize/approximation"
	"github.com/numerics/economize/chebyshev"
	"github.com/numerics/economize/internal/report"
)

var chebyshevFrom int

var chebyshevCmd = &cobra.Command{
	Use:   "chebyshev <n>",
	Short: "Print the Chebyshev polynomials up to degree n",
	Long: `Prints the Chebyshev polynomials of the first kind T_k and their normalised
form T_k / 2^(k-1) for k from --from to n.

Examples:
  economize chebyshev 6
  economize chebyshev --from 10 12 -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runChebyshev,
}

func init() {
	rootCmd.AddCommand(chebyshevCmd)

	chebyshevCmd.Flags().IntVar(&chebyshevFrom, "from", 0, "lowest degree")
}

func runChebyshev(cmd *cobra.Command, args []string) error {

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: degree %q: %w", approximation.ErrInvalidArgument, args[0], err)
	}

	if chebyshevFrom > n {
		return fmt.Errorf("%w: lowest degree %d is greater than %d", approximation.ErrInvalidArgument, chebyshevFrom, n)
	}

	reports, err := report.NewChebyshev(chebyshev.NewCache(chebyshev.WithLogger(logger)), chebyshevFrom, n)
	if err != nil {
		return err
	}

	return report.WriteChebyshev(cmd.OutOrStdout(), cfg.Output.Format, reports)
}
