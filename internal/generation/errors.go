package generation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FailureKind classifies why a generation call did not produce a result.
type FailureKind string

const (
	// KindUnavailable means the backend could not be reached or refused the call.
	KindUnavailable FailureKind = "unavailable"
	// KindMalformed means the backend answered with a payload that breaks the
	// lesson or certificate invariants.
	KindMalformed FailureKind = "malformed"
	// KindTimeout means the call exceeded its deadline.
	KindTimeout FailureKind = "timeout"
	// KindCanceled means the caller abandoned the call.
	KindCanceled FailureKind = "canceled"
)

// Failure is the GenerationFailure raised by every Generator.
type Failure struct {
	Op   string
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Op, f.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", f.Op, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// KindOf returns the failure kind carried by err, or "" when err is not a *Failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsKind reports whether err is a *Failure of the given kind.
func IsKind(err error, kind FailureKind) bool {
	return KindOf(err) == kind
}

func malformed(op string, format string, args ...any) *Failure {
	return &Failure{Op: op, Kind: KindMalformed, Err: fmt.Errorf(format, args...)}
}

// contextFailure maps a context error onto the timeout or canceled kind.
func contextFailure(op string, err error) *Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Op: op, Kind: KindTimeout, Err: err}
	}
	return &Failure{Op: op, Kind: KindCanceled, Err: err}
}

// ValidationError is the ValidationFailure raised at the caller boundary when
// a required input is blank or out of range. The generator is never invoked.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
