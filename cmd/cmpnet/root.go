package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "cmpnet",
		Short: "Synthesize minimal comparator networks",
		Long: `cmpnet finds shortest sequences of compare-swaps over N binary wires
that map every input to an output accepted by a named rule.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		newSearchCmd(),
		newVerifyCmd(),
		newRulesCmd(),
	)
	return root
}
