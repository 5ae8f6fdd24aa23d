package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/numerics/economize/approximation"
	"github.com/numerics/economize/internal/config"
	"github.com/numerics/economize/symbolic"
)

var (
	cfgFile      string
	verbose      bool
	outputFormat string

	cfg    = config.Default()
	logger = slog.Default()
	runID  string
)

var rootCmd = &cobra.Command{
	Use:   "economize",
	Short: "Polynomial approximation by Taylor series and Chebyshev economization",
	Long: `economize approximates a function of x on an interval [a, b] by a
polynomial of a given degree.

The function is expanded in a Taylor series, whose degree is then lowered
with Chebyshev polynomials. The maximum error is sampled on the interval.

Functions are written with + - * / ^, parentheses, the constants pi and e
and the functions sin cos tan exp log sqrt sinh cosh tanh.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and prints the error, if any, to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, .toml or .yaml (default: $"+config.EnvConfig+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, markdown, yaml or json")
}

func setup(cmd *cobra.Command, args []string) (err error) {

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}

	if err != nil {
		return err
	}

	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}

	if verbose {
		cfg.Log.Level = "debug"
	}

	if err = cfg.Validate(); err != nil {
		return err
	}

	logger, err = newLogger(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}

	runID = uuid.NewString()
	logger = logger.With("run_id", runID)
	slog.SetDefault(logger)

	logger.Debug("configuration loaded", "config", cfgFile, "command", cmd.Name())

	return nil
}

func newLogger(w io.Writer, c config.LogConfig) (*slog.Logger, error) {

	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// ExitCode returns the exit status for err: 2 for invalid input, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, approximation.ErrInvalidArgument),
		errors.Is(err, symbolic.ErrSyntax),
		errors.Is(err, config.ErrInvalidConfig):
		return 2
	}
	return 1
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "economize: %v\n", err)
}
