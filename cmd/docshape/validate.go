package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"docshape/internal/codec"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [document...]",
		Short: "Apply the schema's directives to documents and validate the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.outputFormat()
			if err != nil {
				return err
			}

			p, err := opts.processor(cmd)
			if err != nil {
				return err
			}

			docs := make([]map[string]any, 0, len(args))

			for _, path := range args {
				doc, err := loadDocument(path)
				if err != nil {
					return err
				}

				docs = append(docs, doc)
			}

			results, err := p.ProcessAll(cmd.Context(), docs)
			if err != nil {
				return err
			}

			return writeDocuments(cmd.OutOrStdout(), results, format)
		},
	}
}

func loadDocument(path string) (map[string]any, error) {
	v, err := codec.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	if v == nil {
		return map[string]any{}, nil
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: top level must be a mapping", path)
	}

	return doc, nil
}

func writeDocuments(w io.Writer, docs []any, format codec.Format) error {
	for i, doc := range docs {
		data, err := codec.Encode(doc, format)
		if err != nil {
			return err
		}

		if format == codec.FormatYAML && i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}

		if _, err := w.Write(data); err != nil {
			return err
		}

		if format == codec.FormatJSON {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}

	return nil
}
