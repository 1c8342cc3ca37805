package validate

import (
	"maps"
	"slices"

	"docshape/internal/diagnostic"
	"docshape/internal/rules"
)

type config struct {
	policy diagnostic.Policy
}

// Option configures validation.
type Option func(*config)

// WithPolicy selects the error policy. The default is diagnostic.FailFast:
// the first violation aborts validation and is returned as a *Error. With
// diagnostic.CollectAll every violation is reported; the returned error
// unwraps to each *Error.
func WithPolicy(p diagnostic.Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// Validator validates documents against one rule set. It holds no
// per-document state and is safe for concurrent use.
type Validator struct {
	rules *rules.RuleSet
	cfg   config
}

// New creates a Validator for rs.
func New(rs *rules.RuleSet, opts ...Option) *Validator {
	cfg := config{policy: diagnostic.FailFast}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Validator{rules: rs, cfg: cfg}
}

// Validate validates doc from the root path.
func (v *Validator) Validate(doc any) (any, error) {
	return v.ValidateAt(doc, rules.RootPath)
}

// ValidateAt validates doc as the value found at path.
func (v *Validator) ValidateAt(doc any, path string) (any, error) {
	w := &walker{rules: v.rules, policy: v.cfg.policy, diags: &diagnostic.Diagnostics{}}

	out, err := w.walk(doc, doc != nil, path)
	if err != nil {
		return nil, err
	}

	if err := w.diags.Err(); err != nil {
		return out, err
	}

	return out, nil
}

// Validate validates doc, the value at path, against rs and returns its
// normalized form.
func Validate(doc any, rs *rules.RuleSet, path string, opts ...Option) (any, error) {
	return New(rs, opts...).ValidateAt(doc, path)
}

type walker struct {
	rules  *rules.RuleSet
	policy diagnostic.Policy
	diags  *diagnostic.Diagnostics
}

// walk checks value against the rules at path and recurses into it.
// present is false when the key holding value does not exist.
// In collect-all mode violations are recorded and walk only returns an
// error for fail-fast.
func (w *walker) walk(value any, present bool, path string) (any, error) {
	rs := w.rules.At(path)
	if len(rs) == 0 {
		return value, nil
	}

	for _, r := range rs {
		c := &checker{value: value, present: present, path: path, required: r.Required()}

		if err := r.Accept(c); err != nil {
			if w.policy == diagnostic.FailFast {
				return nil, err
			}

			w.diags.AddCause(errorCode(err), "", path, err)

			return value, nil
		}

		value = c.value
	}

	switch t := value.(type) {
	case []any:
		out := make([]any, len(t))
		itemsPath := rules.ItemsOf(path)

		for i, elem := range t {
			n, err := w.walk(elem, true, itemsPath)
			if err != nil {
				return nil, err
			}

			out[i] = n
		}

		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))

		for _, key := range unionKeys(w.rules.ChildKeys(path), t) {
			child, ok := t[key]

			n, err := w.walk(child, ok, rules.JoinKey(path, key))
			if err != nil {
				return nil, err
			}

			if ok || n != nil {
				out[key] = n
			}
		}

		return out, nil
	default:
		return value, nil
	}
}

// unionKeys merges declared keys with the document's keys, sorted.
func unionKeys(declared []string, doc map[string]any) []string {
	keys := slices.Collect(maps.Keys(doc))

	for _, k := range declared {
		if _, ok := doc[k]; !ok {
			keys = append(keys, k)
		}
	}

	slices.Sort(keys)

	return keys
}

func errorCode(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Kind.String()
	}

	return "validation_failed"
}
