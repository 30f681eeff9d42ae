package signal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// none marks an absent line number or payload in the dump format.
const none = "##NONE##"

// ErrMalformedDump is returned when a dump line cannot be parsed.
var ErrMalformedDump = errors.New("malformed signal dump line")

// Serialize renders a signal as a single dump line: kind, line and payload
// separated by whitespace.
func (s Signal) Serialize() string {
	line := none
	if s.Line != 0 {
		line = strconv.Itoa(s.Line)
	}
	data := none
	if s.Data != nil && *s.Data != "" {
		data = *s.Data
	}
	return fmt.Sprintf("%-15s %-5s %s", s.Kind, line, data)
}

// Deserialize parses a line produced by Serialize.
func Deserialize(line string) (Signal, error) {
	fields := splitN(line, 3)
	if len(fields) < 2 {
		return Signal{}, fmt.Errorf("%w: %q", ErrMalformedDump, line)
	}

	s := Signal{Kind: fields[0]}
	if fields[1] != none {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Signal{}, fmt.Errorf("%w: bad line number %q", ErrMalformedDump, fields[1])
		}
		s.Line = n
	}
	if len(fields) == 3 && fields[2] != none {
		data := fields[2]
		s.Data = &data
	}
	return s, nil
}

// splitN splits on runs of whitespace into at most n fields; the last field
// keeps its inner whitespace.
func splitN(s string, n int) []string {
	var out []string
	s = strings.TrimLeft(s, " \t")
	for len(out) < n-1 {
		i := strings.IndexAny(s, " \t")
		if i < 0 {
			break
		}
		out = append(out, s[:i])
		s = strings.TrimLeft(s[i:], " \t")
	}
	s = strings.TrimRight(s, "\r\n")
	if s != "" {
		out = append(out, s)
	}
	return out
}

// Writer writes signals in dump format, one per line.
type Writer struct {
	w      *bufio.Writer
	counts map[Kind]int
}

// NewWriter creates a dump writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), counts: make(map[Kind]int)}
}

// Write appends one signal.
func (w *Writer) Write(s Signal) error {
	w.counts[s.Kind]++
	if _, err := w.w.WriteString(s.Serialize() + "\n"); err != nil {
		return fmt.Errorf("failed to write signal dump: %w", err)
	}
	return nil
}

// Counts returns how many signals of each kind were written.
func (w *Writer) Counts() map[Kind]int {
	out := make(map[Kind]int, len(w.counts))
	for k, v := range w.counts {
		out[k] = v
	}
	return out
}

// Flush flushes buffered output.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
