package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/formulate/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the registered dialects",
		Run: func(cmd *cobra.Command, _ []string) {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Call", "Index", "Power", "Assign"})
			for _, name := range dialect.List() {
				d, _ := dialect.Get(name)
				t.AppendRow(table.Row{
					d.Name,
					fmt.Sprintf("f%sx%s", d.FuncLPar, d.FuncRPar),
					fmt.Sprintf("a%s1%s", d.ArrayLPar, d.ArrayRPar),
					d.Power,
					d.CanonicalAssign(),
				})
			}
			t.Render()
		},
	}
}
