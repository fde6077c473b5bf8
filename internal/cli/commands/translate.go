// Package commands implements the Formulate subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/formulate/internal/cli/config"
	"github.com/leapstack-labs/formulate/pkg/dialect"
	_ "github.com/leapstack-labs/formulate/pkg/dialects/mathematica" // register built-in dialect
	"github.com/leapstack-labs/formulate/pkg/dialects/python"
	"github.com/leapstack-labs/formulate/pkg/format"
	"github.com/leapstack-labs/formulate/pkg/optimize"
	"github.com/leapstack-labs/formulate/pkg/translate"
)

// DialectNames returns the registered dialect names for flag completion.
func DialectNames() []string {
	return dialect.List()
}

// resolveDialects looks up the configured source and target dialects.
func resolveDialects(cfg *config.Config) (src, dst *dialect.Dialect, err error) {
	src, ok := dialect.Get(cfg.From)
	if !ok {
		return nil, nil, fmt.Errorf("unknown source dialect %q (known: %v)", cfg.From, dialect.List())
	}
	dst, ok = dialect.Get(cfg.To)
	if !ok {
		return nil, nil, fmt.Errorf("unknown target dialect %q (known: %v)", cfg.To, dialect.List())
	}
	if cfg.Int2Float && dst == python.Python {
		dst = python.New(true)
	}
	return src, dst, nil
}

// RunTranslate implements the root command: read formulas from stdin, write
// the translation to stdout.
func RunTranslate(cmd *cobra.Command, cfg *config.Config) error {
	multi, _ := cmd.Flags().GetBool("multi")
	noOptimize, _ := cmd.Flags().GetBool("no-optimize")
	stats, _ := cmd.Flags().GetBool("stats")

	src, dst, err := resolveDialects(cfg)
	if err != nil {
		return err
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Reading formulas from stdin; end with Ctrl-D.")
	}

	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	slog.Debug("translating", "from", src.Name, "to", dst.Name, "multi", multi)

	var output string
	if multi {
		output, err = translateMulti(cmd, cfg, string(input), src, dst, !noOptimize, stats)
	} else {
		output, err = translate.Line(string(input), src, dst)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func translateMulti(cmd *cobra.Command, cfg *config.Config, input string, src, dst *dialect.Dialect, optimizeProg, stats bool) (string, error) {
	prog, err := translate.Parse(input, src)
	if err != nil {
		return "", err
	}

	if !optimizeProg {
		return format.RenderProgram(dst, prog)
	}

	opt := optimize.New(cfg.CostModel())
	costBefore := opt.Annotate(prog)
	prog = opt.Optimize(prog)
	costAfter := opt.Annotate(prog)

	if stats {
		renderStats(cmd.ErrOrStderr(), costBefore, costAfter, opt.TempCount())
	}
	slog.Debug("optimized program",
		"cost_before", costBefore, "cost_after", costAfter, "temporaries", opt.TempCount())

	return format.RenderProgram(dst, prog)
}

// renderStats prints the optimizer summary as a table.
func renderStats(w io.Writer, before, after float64, temps int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Value"})
	t.AppendRows([]table.Row{
		{"Cost before", fmt.Sprintf("%.1f", before)},
		{"Cost after", fmt.Sprintf("%.1f", after)},
		{"Saving", fmt.Sprintf("%.1f", before-after)},
		{"Temporaries", temps},
	})
	t.Render()
}
