package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docshape/internal/common"
	"docshape/internal/ordering"
)

func newOrderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "order [type...]",
		Short: "Show the stage plan for directive types, or for the directives of --schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			var plan *ordering.Plan

			if len(args) > 0 {
				table, err := opts.loadTable()
				if err != nil {
					return err
				}

				if plan, err = ordering.NewResolver(table).DetermineOrder(args); err != nil {
					return err
				}
			} else {
				p, err := opts.processor(cmd)
				if err != nil {
					return err
				}

				plan = p.Plan()
			}

			stage := color.New(color.FgCyan, color.Bold).SprintfFunc()
			out := cmd.OutOrStdout()

			for _, s := range plan.Stages {
				fmt.Fprintf(out, "%s %s\n", stage("stage %d:", s.Number), s.Description)

				for _, typ := range s.Types {
					line := "  " + typ
					if deps := plan.Graph[typ]; !common.IsEmpty(deps) {
						line += " (after " + strings.Join(deps, ", ") + ")"
					}

					fmt.Fprintln(out, line)
				}
			}

			return nil
		},
	}
}
