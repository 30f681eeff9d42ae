package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// JSONFile streams records into a JSON array. The array is written to a
// temporary file next to the target and renamed into place on Close, so
// an aborted run never leaves a truncated file behind.
type JSONFile[T any] struct {
	path  string
	tmp   *os.File
	w     *bufio.Writer
	count int
	done  bool
	err   error // sticky write failure
}

// NewJSONFile creates the parent directory and opens the temporary file.
func NewJSONFile[T any](path string) (*JSONFile[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	f := &JSONFile[T]{path: path, tmp: tmp, w: bufio.NewWriter(tmp)}
	if _, err := f.w.WriteString("["); err != nil {
		f.discard()
		return nil, err
	}
	return f, nil
}

// Path returns the target path.
func (f *JSONFile[T]) Path() string {
	return f.path
}

// Count returns the number of records written so far.
func (f *JSONFile[T]) Count() int {
	return f.count
}

// Put implements Sink.
func (f *JSONFile[T]) Put(ctx context.Context, v T) error {
	if f.done {
		return ErrClosed
	}
	if f.err != nil {
		return f.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record %d: %w", f.count+1, err)
	}

	// Separator and record go out in one write. Once a write fails the
	// array may hold a fragment, so the file refuses further records.
	rec := make([]byte, 0, len(data)+4)
	if f.count > 0 {
		rec = append(rec, ',')
	}
	rec = append(rec, "\n  "...)
	rec = append(rec, data...)
	if _, err := f.w.Write(rec); err != nil {
		f.err = fmt.Errorf("%w: record %d of %s: %v", ErrPartialWrite, f.count+1, f.path, err)
		return f.err
	}
	f.count++
	return nil
}

// Close terminates the array and moves the file into place.
func (f *JSONFile[T]) Close() error {
	if f.done {
		return nil
	}
	f.done = true
	if f.err != nil {
		f.discard()
		return f.err
	}

	end := "]\n"
	if f.count > 0 {
		end = "\n]\n"
	}
	if _, err := f.w.WriteString(end); err != nil {
		f.discard()
		return err
	}
	if err := f.w.Flush(); err != nil {
		f.discard()
		return err
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(f.tmp.Name())
		return err
	}
	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		_ = os.Remove(f.tmp.Name())
		return fmt.Errorf("failed to move %s into place: %w", f.path, err)
	}
	return nil
}

// Abort drops everything written so far. It is a no-op after Close.
func (f *JSONFile[T]) Abort() {
	if f.done {
		return
	}
	f.discard()
}

func (f *JSONFile[T]) discard() {
	f.done = true
	_ = f.tmp.Close()
	_ = os.Remove(f.tmp.Name())
}

// ReadJSON decodes a JSON array written by JSONFile, calling fn for each
// record in order.
func ReadJSON[T any](r io.Reader, fn func(T) error) error {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read array start: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return fmt.Errorf("expected a JSON array, got %v", tok)
	}
	for i := 1; dec.More(); i++ {
		var v T
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read array end: %w", err)
	}
	return nil
}

// ReadJSONFile is ReadJSON over a file.
func ReadJSONFile[T any](path string, fn func(T) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ReadJSON(file, fn)
}
