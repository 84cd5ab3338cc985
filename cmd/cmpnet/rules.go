package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/coregx/cmpnet/rules"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tWIRES\tDESCRIPTION")
			for _, r := range rules.All() {
				wires := "any"
				if r.Wires > 0 {
					wires = fmt.Sprint(r.Wires)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, wires, r.Description)
			}
			return tw.Flush()
		},
	}
}
