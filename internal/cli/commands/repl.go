package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/formulate/internal/cli/config"
	"github.com/leapstack-labs/formulate/pkg/translate"
)

var (
	replInfoStyle  = lipgloss.NewStyle().Faint(true)
	replErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// NewREPLCommand creates the repl command, an interactive translation
// shell.
func NewREPLCommand(getConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive translation shell",
		Long: `Start an interactive shell that translates each entered formula.

Dot-commands:
  .reverse   swap source and target dialect
  .multi     enter multi-line mode; finish the block with a lone .
  .help      show this help
  .quit      exit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, getConfig())
		},
	}
}

func runREPL(cmd *cobra.Command, cfg *config.Config) error {
	if f, ok := cmd.InOrStdin().(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return errors.New("repl requires an interactive terminal; pipe input to the root command instead")
	}

	src, dst, err := resolveDialects(cfg)
	if err != nil {
		return err
	}

	home, _ := os.UserHomeDir()
	historyFile := filepath.Join(home, ".formulate_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          src.Name + "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Formulate REPL (%s -> %s)\n", src.Name, dst.Name)
	fmt.Fprintln(out, replInfoStyle.Render("Type .help for commands, .quit to exit"))
	fmt.Fprintln(out)

	costs := cfg.CostModel()
	prompt := src.Name + "> "

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case ".quit", ".exit":
			return nil

		case ".help":
			fmt.Fprintln(out, replInfoStyle.Render(
				".reverse  swap dialects\n.multi    multi-line block (end with a lone .)\n.quit     exit"))
			continue

		case ".reverse":
			src, dst = dst, src
			prompt = src.Name + "> "
			rl.SetPrompt(prompt)
			fmt.Fprintf(out, "%s\n", replInfoStyle.Render(fmt.Sprintf("now translating %s -> %s", src.Name, dst.Name)))
			continue

		case ".multi":
			block, err := readBlock(rl, prompt)
			if err != nil {
				return err
			}
			result, err := translate.Text(block, src, dst, translate.Options{Optimize: true, Costs: costs})
			if err != nil {
				fmt.Fprintln(out, replErrorStyle.Render(err.Error()))
				continue
			}
			fmt.Fprintln(out, result)
			continue
		}

		result, err := translate.Line(line, src, dst)
		if err != nil {
			fmt.Fprintln(out, replErrorStyle.Render(err.Error()))
			continue
		}
		fmt.Fprintln(out, result)
	}
}

// readBlock collects lines until a lone dot.
func readBlock(rl *readline.Instance, restore string) (string, error) {
	var b strings.Builder
	rl.SetPrompt("  ...> ")
	defer rl.SetPrompt(restore)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "." {
			return b.String(), nil
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
