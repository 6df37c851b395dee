package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes emitted by the hydrator.
const (
	CodeUnknownField  = "unknown-field"
	CodeLossyCoercion = "lossy-coercion"
	CodeNotAllowed    = "coercion-not-allowed"
	CodeShapeMismatch = "shape-mismatch"
	CodeSingleElement = "single-element-sequence"
	CodeNullStructure = "null-structure"
)

// Diagnostics holds all diagnostic information from one hydration.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Severity Severity
	// Code is one of the Code* constants.
	Code    string
	Message string
	// TypeName is the Go type being hydrated when the diagnostic was raised.
	TypeName string
	// FieldPath is the dotted wire path of the offending value, e.g. historyRecord[0].ItemParameters.Mass.
	FieldPath   string
	Suggestions []string
	// Cause is the underlying error, if any.
	Cause error
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Add appends d to the bucket matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) AddError(code, message, typeName, fieldPath string, cause error) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, TypeName: typeName, FieldPath: fieldPath, Cause: cause})
}

func (d *Diagnostics) AddWarning(code, message, typeName, fieldPath string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, TypeName: typeName, FieldPath: fieldPath})
}

func (d *Diagnostics) AddInfo(code, message, typeName, fieldPath string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, TypeName: typeName, FieldPath: fieldPath})
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

func (d *Diagnostics) IsEmpty() bool {
	return len(d.Errors)+len(d.Warnings)+len(d.Infos) == 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Err joins all error diagnostics, or returns nil when there are none.
// errors.Is matches against each diagnostic's Cause.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, diag := range d.Errors {
		errs = append(errs, diagError{diag})
	}

	return errors.Join(errs...)
}

type diagError struct{ d Diagnostic }

func (e diagError) Error() string { return e.d.String() }
func (e diagError) Unwrap() error { return e.d.Cause }

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.TypeName != "" {
		b.WriteString("[" + d.TypeName + "] ")
	}

	if d.FieldPath != "" {
		b.WriteString(d.FieldPath + ": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	return b.String()
}
