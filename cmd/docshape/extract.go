package main

import (
	"github.com/spf13/cobra"

	"docshape/internal/docpath"
)

func newExtractCmd(opts *options) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "extract --path <path> <document>",
		Short: "Print the value found at a path in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.outputFormat()
			if err != nil {
				return err
			}

			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			p, err := docpath.Parse(path)
			if err != nil {
				return err
			}

			value, _, err := docpath.Extract(doc, p)
			if err != nil {
				return err
			}

			return writeDocuments(cmd.OutOrStdout(), []any{value}, format)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Path to read, e.g. records[].title")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}
