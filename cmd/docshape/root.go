package main

import (
	"errors"

	"github.com/spf13/cobra"

	"docshape/internal/codec"
	"docshape/internal/ctxlog"
	"docshape/internal/diagnostic"
	"docshape/internal/ordering"
	"docshape/internal/pipeline"
	"docshape/internal/registry"
	"docshape/internal/schema"
)

// options holds the persistent flags shared by every command.
type options struct {
	schemaPath   string
	tablePath    string
	registryPath string
	format       string
	policy       string
	wrap         string
	workers      int
	verbose      bool
	logFormat    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "docshape",
		Short:         "Apply schema directives to frontmatter documents and validate them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if opts.verbose {
				level = "debug"
			}

			logger := ctxlog.New(cmd.ErrOrStderr(), level, opts.logFormat)
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.schemaPath, "schema", "s", "", "Path to the JSON or YAML schema")
	f.StringVar(&opts.tablePath, "table", "", "Path to a YAML dependency table (default: built-in)")
	f.StringVar(&opts.registryPath, "registry", "", "Path to a YAML extension registry (default: built-in)")
	f.StringVarP(&opts.format, "output", "o", "json", "Output format: json or yaml")
	f.StringVar(&opts.policy, "policy", "fail-fast", "Error policy: fail-fast or collect-all")
	f.StringVar(&opts.wrap, "wrap", "", "Nest every output document under this path")
	f.IntVarP(&opts.workers, "workers", "w", 0, "Parallel workers (default: GOMAXPROCS)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	f.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(
		newValidateCmd(opts),
		newOrderCmd(opts),
		newRulesCmd(opts),
		newExtractCmd(opts),
	)

	return root
}

func (o *options) loadSchema() (schema.Node, error) {
	if o.schemaPath == "" {
		return nil, errors.New("--schema is required")
	}

	return schema.LoadFile(o.schemaPath)
}

func (o *options) loadTable() (*ordering.Table, error) {
	if o.tablePath == "" {
		return ordering.DefaultTable(), nil
	}

	return ordering.LoadTable(o.tablePath)
}

func (o *options) loadRegistry() (*registry.Registry, error) {
	if o.registryPath == "" {
		return registry.Default(), nil
	}

	return registry.Load(o.registryPath)
}

func (o *options) outputFormat() (codec.Format, error) {
	return codec.ParseFormat(o.format)
}

// processor loads the schema, table and registry and builds a Processor.
func (o *options) processor(cmd *cobra.Command) (*pipeline.Processor, error) {
	node, err := o.loadSchema()
	if err != nil {
		return nil, err
	}

	table, err := o.loadTable()
	if err != nil {
		return nil, err
	}

	reg, err := o.loadRegistry()
	if err != nil {
		return nil, err
	}

	policy, err := diagnostic.ParsePolicy(o.policy)
	if err != nil {
		return nil, err
	}

	cfg := pipeline.DefaultConfig()
	cfg.Policy = policy
	cfg.WrapPath = o.wrap

	if o.workers > 0 {
		cfg.Workers = o.workers
	}

	return pipeline.New(cmd.Context(), o.schemaPath, node,
		pipeline.WithConfig(cfg),
		pipeline.WithTable(table),
		pipeline.WithRegistry(reg),
	)
}
