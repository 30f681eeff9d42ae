// Package report collects the rows the grammars could not parse, so that
// they can be corrected by hand.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/hierarh/internal/api"
	"github.com/jackzampolin/hierarh/internal/rowparse"
)

// Entry is one unparsed cell.
type Entry struct {
	Header string               `json:"header" yaml:"header"`
	Line   int                  `json:"line,omitempty" yaml:"line,omitempty"`
	Kind   rowparse.FailureKind `json:"kind" yaml:"kind"`
	Text   string               `json:"text" yaml:"text"`
	Row    string               `json:"row,omitempty" yaml:"row,omitempty"`
	Detail string               `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Log is the unparsed-row report of one run.
type Log struct {
	RunID   string                       `json:"run_id" yaml:"run_id"`
	Source  string                       `json:"source,omitempty" yaml:"source,omitempty"`
	Started time.Time                    `json:"started" yaml:"started"`
	Sees    int                          `json:"sees" yaml:"sees"`
	Rows    int                          `json:"rows" yaml:"rows"`
	Counts  map[rowparse.FailureKind]int `json:"counts" yaml:"counts"`
	Entries []Entry                      `json:"entries" yaml:"entries"`
}

// New starts a report for the given source file.
func New(source string) *Log {
	return &Log{
		RunID:   uuid.NewString(),
		Source:  source,
		Started: time.Now().UTC(),
		Counts:  make(map[rowparse.FailureKind]int),
	}
}

// Add records a failure in the row at line. row is the row as printed in
// the book, markup included.
func (l *Log) Add(header string, line int, row string, f *rowparse.Failure) {
	l.Entries = append(l.Entries, Entry{
		Header: header,
		Line:   line,
		Kind:   f.Kind,
		Text:   f.Text,
		Row:    row,
		Detail: f.Detail,
	})
	l.Counts[f.Kind]++
}

// CountSee records a processed see.
func (l *Log) CountSee() {
	l.Sees++
}

// CountRow records a processed officeholder row.
func (l *Log) CountRow() {
	l.Rows++
}

// Failures returns the number of recorded failures.
func (l *Log) Failures() int {
	return len(l.Entries)
}

// Sorted returns the entries ordered by header, then line.
func (l *Log) Sorted() []Entry {
	out := append([]Entry(nil), l.Entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Header != out[j].Header {
			return out[i].Header < out[j].Header
		}
		return out[i].Line < out[j].Line
	})
	return out
}

// WriteFile writes the report in the given format, creating parent
// directories as needed.
func (l *Log) WriteFile(path string, format api.OutputFormat) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := api.OutputTo(f, format, l); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
