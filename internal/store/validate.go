package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackzampolin/hierarh/internal/schema"
)

// ErrInvalidRecord is returned for a record that does not match its schema.
var ErrInvalidRecord = errors.New("invalid record")

// Validating checks every record against a named schema before passing it on.
type Validating[T any] struct {
	inner  Sink[T]
	schema string
}

// NewValidating wraps inner with validation against the schema registered
// under name.
func NewValidating[T any](inner Sink[T], name string) (*Validating[T], error) {
	if _, err := schema.Get(name); err != nil {
		return nil, err
	}
	return &Validating[T]{inner: inner, schema: name}, nil
}

// Put implements Sink.
func (v *Validating[T]) Put(ctx context.Context, rec T) error {
	if err := schema.Validate(v.schema, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return v.inner.Put(ctx, rec)
}

// Close implements Sink.
func (v *Validating[T]) Close() error {
	return v.inner.Close()
}
