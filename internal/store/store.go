// Package store writes pipeline records to their final destination.
package store

import (
	"context"
	"errors"

	"github.com/jackzampolin/hierarh/internal/chain"
)

var (
	// ErrClosed is returned by Put after Close.
	ErrClosed = errors.New("sink is closed")

	// ErrPartialWrite is returned once a write may have left part of a
	// record behind. The sink accepts no more records.
	ErrPartialWrite = errors.New("partial write")
)

// Sink stores records of one type.
type Sink[T any] interface {
	Put(ctx context.Context, v T) error
	Close() error
}

// Stage adapts a Sink to the end of a chain: Process puts the record and
// Finish closes the sink.
type Stage[T any] struct {
	ctx   context.Context
	sink  Sink[T]
	count int
}

// NewStage creates a chain stage writing to sink.
func NewStage[T any](ctx context.Context, sink Sink[T]) *Stage[T] {
	return &Stage[T]{ctx: ctx, sink: sink}
}

var _ chain.Sink[int] = (*Stage[int])(nil)

// Process implements chain.Sink.
func (s *Stage[T]) Process(v T) error {
	if err := s.sink.Put(s.ctx, v); err != nil {
		return err
	}
	s.count++
	return nil
}

// Finish implements chain.Sink.
func (s *Stage[T]) Finish() error {
	return s.sink.Close()
}

// Count returns the number of records stored.
func (s *Stage[T]) Count() int {
	return s.count
}

// Memory keeps records in memory.
type Memory[T any] struct {
	Items  []T
	Closed bool
}

// Put implements Sink.
func (m *Memory[T]) Put(ctx context.Context, v T) error {
	if m.Closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Items = append(m.Items, v)
	return nil
}

// Close implements Sink.
func (m *Memory[T]) Close() error {
	m.Closed = true
	return nil
}
