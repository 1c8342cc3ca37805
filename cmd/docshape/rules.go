package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docshape/internal/rules"
)

func newRulesCmd(opts *options) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the validation rules compiled from --schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			node, err := opts.loadSchema()
			if err != nil {
				return err
			}

			rs := rules.CompileSet(node)
			out := cmd.OutOrStdout()

			if dump {
				_, err := fmt.Fprint(out, rs.Dump())
				return err
			}

			for _, r := range rs.Rules() {
				fmt.Fprintln(out, rules.Describe(r))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Print every rule with all fields")

	return cmd
}
