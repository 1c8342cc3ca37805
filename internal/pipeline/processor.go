package pipeline

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"docshape/internal/ctxlog"
	"docshape/internal/directive"
	"docshape/internal/docpath"
	"docshape/internal/ordering"
	"docshape/internal/registry"
	"docshape/internal/rules"
	"docshape/internal/schema"
	"docshape/internal/structure"
	"docshape/internal/validate"
)

// Option customizes a Processor.
type Option func(*Processor)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(p *Processor) {
		p.cfg = cfg
	}
}

// WithRegistry replaces registry.Default().
func WithRegistry(r *registry.Registry) Option {
	return func(p *Processor) {
		p.registry = r
	}
}

// WithTable replaces ordering.DefaultTable().
func WithTable(t *ordering.Table) Option {
	return func(p *Processor) {
		p.table = t
	}
}

// WithRuleCache shares a rule-set cache between processors.
func WithRuleCache(c *rules.Cache) Option {
	return func(p *Processor) {
		p.rules = c
	}
}

// WithPathCache shares a path cache between processors.
func WithPathCache(c *docpath.Cache) Option {
	return func(p *Processor) {
		p.paths = c
	}
}

// Processor processes documents against one schema.
type Processor struct {
	cfg      Config
	id       string
	schema   schema.Node
	registry *registry.Registry
	table    *ordering.Table
	rules    *rules.Cache
	paths    *docpath.Cache

	plan       *ordering.Plan
	directives []directive.Directive
}

// New builds a Processor for the schema identified by id. The schema's
// directives are collected and ordered once, here.
func New(ctx context.Context, id string, node schema.Node, opts ...Option) (*Processor, error) {
	p := &Processor{
		cfg:      DefaultConfig(),
		id:       id,
		schema:   node,
		registry: registry.Default(),
		table:    ordering.DefaultTable(),
	}

	for _, opt := range opts {
		opt(p)
	}

	var err error

	if p.rules == nil {
		if p.rules, err = rules.NewCache(p.cfg.cacheOptions()); err != nil {
			return nil, err
		}
	}

	if p.paths == nil {
		if p.paths, err = docpath.NewCache(p.cfg.cacheOptions()); err != nil {
			return nil, err
		}
	}

	log := ctxlog.FromContext(ctx).With("schema", id)

	for _, w := range p.table.Check().Warnings {
		log.Warn("dependency table", "code", w.Code, "type", w.Subject, "message", w.Message)
	}

	directives, err := p.registry.Collect(node)
	if err != nil {
		return nil, fmt.Errorf("failed to collect directives: %w", err)
	}

	types := make([]string, 0, len(directives))
	for _, d := range directives {
		types = append(types, d.Type())
	}

	plan, err := ordering.NewResolver(p.table).DetermineOrder(types)
	if err != nil {
		return nil, fmt.Errorf("failed to order directives: %w", err)
	}

	slices.SortStableFunc(directives, func(a, b directive.Directive) int {
		return plan.Index(a.Type()) - plan.Index(b.Type())
	})

	p.plan = plan
	p.directives = directives

	log.Debug("processor ready", "directives", len(directives), "stages", len(plan.Stages))

	return p, nil
}

// Plan returns the resolved directive order.
func (p *Processor) Plan() *ordering.Plan {
	return p.plan
}

// Directives returns the collected directives in application order.
func (p *Processor) Directives() []directive.Directive {
	return slices.Clone(p.directives)
}

// RuleSet returns the compiled rules for the processor's schema.
func (p *Processor) RuleSet() *rules.RuleSet {
	return p.rules.Get(p.id, p.schema)
}

// Extract reads the value at path from doc.
func (p *Processor) Extract(doc any, path string) (any, bool, error) {
	parsed, err := p.paths.Parse(path)
	if err != nil {
		return nil, false, err
	}

	return docpath.Extract(doc, parsed)
}

// Process applies the schema's directives to doc stage by stage, then
// validates the result. doc is modified by the directives; the returned
// value is the validated, normalized document.
func (p *Processor) Process(ctx context.Context, doc map[string]any) (any, error) {
	log := ctxlog.FromContext(ctx).With("schema", p.id)

	for _, stage := range p.plan.Stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch := p.stageDirectives(stage)

		log.Debug("applying stage", "stage", stage.Number, "description", stage.Description, "directives", len(batch))

		if err := directive.ApplyAll(doc, batch, directive.WithPolicy(p.cfg.Policy)); err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", stage.Number, stage.Description, err)
		}
	}

	out, err := validate.Validate(doc, p.RuleSet(), rules.RootPath, validate.WithPolicy(p.cfg.Policy))
	if err != nil {
		return nil, err
	}

	if p.cfg.WrapPath == "" {
		return out, nil
	}

	wrap, err := p.paths.Parse(p.cfg.WrapPath)
	if err != nil {
		return nil, fmt.Errorf("invalid wrap path: %w", err)
	}

	return structure.BuildNestedPath(wrap, out)
}

func (p *Processor) stageDirectives(stage ordering.Stage) []directive.Directive {
	var out []directive.Directive

	for _, d := range p.directives {
		if slices.Contains(stage.Types, d.Type()) {
			out = append(out, d)
		}
	}

	return out
}

// ProcessAll processes docs on a bounded worker pool. Results keep the
// input order. The first failure cancels the remaining documents and is
// returned with the index of its document.
func (p *Processor) ProcessAll(ctx context.Context, docs []map[string]any) ([]any, error) {
	results := make([]any, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.workers())

	for i, doc := range docs {
		g.Go(func() error {
			out, err := p.Process(ctx, doc)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}

			results[i] = out

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
