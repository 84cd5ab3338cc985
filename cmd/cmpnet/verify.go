package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/cmpnet/oracle"
	"github.com/coregx/cmpnet/rules"
	"github.com/coregx/cmpnet/space"
)

func newVerifyCmd() *cobra.Command {
	var (
		ruleName string
		wires    int
		pathText string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a network against a rule on every input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rule, err := rules.Lookup(ruleName)
			if err != nil {
				return err
			}
			n, err := rule.WiresFor(wires)
			if err != nil {
				return err
			}
			path, err := space.ParsePath(pathText)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			err = oracle.Verify(n, path, rule.Predicate)
			var m *oracle.Mismatch
			switch {
			case errors.As(err, &m):
				fmt.Fprintf(out, "FAIL: %v\n", m)
				return &exitStatus{code: exitNotFound}
			case err != nil:
				return err
			}
			fmt.Fprintf(out, "ok: %d swaps satisfy %s on all %d inputs (%d distinct outputs)\n",
				len(path), rule.Name, 1<<n, oracle.Images(n, path).GetCardinality())
			return nil
		},
	}

	cmd.Flags().StringVar(&ruleName, "rule", "", "rule name (see 'cmpnet rules')")
	cmd.Flags().IntVar(&wires, "wires", 0, "wire count (default: the rule's own)")
	cmd.Flags().StringVar(&pathText, "path", "", `network, e.g. "0-1,2-3,0-2,1-3,1-2"`)
	_ = cmd.MarkFlagRequired("rule")
	return cmd
}
