// Package chain provides the plumbing for the single-threaded push pipeline:
// each stage processes one item and pushes results directly to the next.
package chain

// Sink consumes items pushed by the previous stage.
// Finish is called exactly once after the last item; stages flush buffered
// state there and then finish their own successor.
type Sink[T any] interface {
	Process(item T) error
	Finish() error
}

// Func adapts a function to a Sink with a no-op Finish.
type Func[T any] func(item T) error

// Process implements Sink.
func (f Func[T]) Process(item T) error { return f(item) }

// Finish implements Sink.
func (f Func[T]) Finish() error { return nil }

// Collector accumulates every item it receives.
type Collector[T any] struct {
	Items    []T
	Finished bool
}

// Process implements Sink.
func (c *Collector[T]) Process(item T) error {
	c.Items = append(c.Items, item)
	return nil
}

// Finish implements Sink.
func (c *Collector[T]) Finish() error {
	c.Finished = true
	return nil
}

// Discard drops everything.
type Discard[T any] struct{}

// Process implements Sink.
func (Discard[T]) Process(T) error { return nil }

// Finish implements Sink.
func (Discard[T]) Finish() error { return nil }

// Tee forwards each item to a side function before passing it on.
type Tee[T any] struct {
	Side func(T) error
	Next Sink[T]
}

// Process implements Sink.
func (t *Tee[T]) Process(item T) error {
	if err := t.Side(item); err != nil {
		return err
	}
	return t.Next.Process(item)
}

// Finish implements Sink.
func (t *Tee[T]) Finish() error {
	return t.Next.Finish()
}
