package diagnostic

import (
	"fmt"
	"strings"

	"docshape/internal/common"
)

// Policy selects how batch operations react to failures.
type Policy int

const (
	// FailFast aborts the batch on the first error and returns it unchanged.
	FailFast Policy = iota
	// CollectAll attempts every item and reports all failures together.
	CollectAll
)

// String returns a human-readable policy name.
func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case CollectAll:
		return "collect-all"
	default:
		return common.UnknownStr
	}
}

// ParsePolicy maps a policy name back to its value.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "fail-fast", "failfast":
		return FailFast, nil
	case "collect-all", "collectall":
		return CollectAll, nil
	default:
		return FailFast, fmt.Errorf("unknown error policy %q", s)
	}
}

// Diagnostics holds all diagnostic information from a batch operation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Subject identifies the directive type or table entry this relates to (if any).
	Subject string
	// Path identifies the document or schema path this relates to (if any).
	Path string
	// Cause is the underlying error, kept for errors.Is / errors.As.
	Cause error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticWarning DiagnosticSeverity = iota
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddCause adds an error diagnostic wrapping err.
func (d *Diagnostics) AddCause(code, subject, path string, err error) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  err.Error(),
		Subject:  subject,
		Path:     path,
		Cause:    err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, subject, path string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Subject:  subject,
		Path:     path,
	})
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Err returns a combined error from all error diagnostics, or nil if valid.
// The result unwraps to every diagnostic, so errors.As finds typed causes.
func (d *Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	return &joined{diags: append([]Diagnostic(nil), d.Errors...)}
}

// Error implements error so a single diagnostic can travel on its own.
func (d Diagnostic) Error() string {
	return d.String()
}

// Unwrap returns the underlying cause, if any.
func (d Diagnostic) Unwrap() error {
	return d.Cause
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Subject != "" {
		prefix = append(prefix, "["+d.Subject+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

type joined struct {
	diags []Diagnostic
}

func (j *joined) Error() string {
	parts := make([]string, 0, len(j.diags))
	for _, d := range j.diags {
		parts = append(parts, d.String())
	}

	return strings.Join(parts, "; ")
}

func (j *joined) Unwrap() []error {
	errs := make([]error, 0, len(j.diags))
	for _, d := range j.diags {
		errs = append(errs, d)
	}

	return errs
}
