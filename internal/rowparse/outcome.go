// Package rowparse holds the grammars that split officeholder table rows
// into dates and names. Every grammar returns an Outcome: either the parsed
// value or a Failure that keeps the original text.
package rowparse

import "fmt"

// FailureKind tells which grammar rejected the text.
type FailureKind string

const (
	DivideFailure FailureKind = "divide"
	DatingFailure FailureKind = "dating"
	NameFailure   FailureKind = "name"
)

// Failure is a data-level parse failure. It carries the untouched input.
type Failure struct {
	Text   string      `json:"text"`
	Kind   FailureKind `json:"kind"`
	Detail string      `json:"detail,omitempty"`
}

func (f *Failure) Error() string {
	if f.Detail == "" {
		return fmt.Sprintf("%s failure: %q", f.Kind, f.Text)
	}
	return fmt.Sprintf("%s failure: %q: %s", f.Kind, f.Text, f.Detail)
}

// Outcome is either Ok(value) or a Failure.
type Outcome[T any] struct {
	value T
	fail  *Failure
}

// Ok wraps a parsed value.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Failed builds a failed outcome.
func Failed[T any](text string, kind FailureKind, detail string) Outcome[T] {
	return Outcome[T]{fail: &Failure{Text: text, Kind: kind, Detail: detail}}
}

// IsOk reports whether parsing succeeded.
func (o Outcome[T]) IsOk() bool {
	return o.fail == nil
}

// Value returns the parsed value; the zero value for a failure.
func (o Outcome[T]) Value() T {
	return o.value
}

// Failure returns the failure, or nil.
func (o Outcome[T]) Failure() *Failure {
	return o.fail
}
