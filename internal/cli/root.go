// Package cli provides the command-line interface for Formulate.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/formulate/internal/cli/commands"
	"github.com/leapstack-labs/formulate/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formulate",
		Short: "Formulate - Formula Dialect Translator",
		Long: `Formulate translates algebraic formulas between surface dialects,
preserving mathematical meaning.

It reads formulas from standard input and writes the translation to standard
output. The built-in dialects convert Mathematica-style input to Python/numpy
output; multi-line mode additionally lifts shared subexpressions into
temporary variables to reduce arithmetic work.`,
		Version: Version,
		Example: `  # Translate a single formula
  echo 'Sin[Pi/2]' | formulate

  # Translate a block of formulas with subexpression elimination
  formulate --multi < formulas.m

  # Translate back from the numeric to the symbolic dialect
  echo 'sin(x)**2' | formulate --from python --to mathematica`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			if cfg.Verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return commands.RunTranslate(cmd, cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Formula Dialect Translator
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./formulate.yaml)")
	rootCmd.PersistentFlags().String("from", "", "Source dialect (default: mathematica)")
	rootCmd.PersistentFlags().String("to", "", "Target dialect (default: python)")
	rootCmd.PersistentFlags().Bool("int2float", false, "Render integer literals with a trailing dot")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Root-only flags
	rootCmd.Flags().Bool("multi", false, "Multi-line mode with subexpression elimination")
	rootCmd.Flags().Bool("no-optimize", false, "Disable the optimizer in multi-line mode")
	rootCmd.Flags().Bool("stats", false, "Print optimizer statistics to stderr")

	// Register completion for dialect flags
	for _, flag := range []string{"from", "to"} {
		_ = rootCmd.RegisterFlagCompletionFunc(flag, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return commands.DialectNames(), cobra.ShellCompDirectiveNoFileComp
		})
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(commands.NewREPLCommand(func() *config.Config { return cfg }))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
