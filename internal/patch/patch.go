// Package patch applies manual corrections to the signal stream. Patches
// are addressed by source line and assert the payload they expect to find.
package patch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/signal"
)

// Action is what a patch does with the matched signal.
type Action string

const (
	ActionSkip   Action = "SKIP!"
	ActionBreak  Action = "BR!"
	ActionEdit   Action = "EDIT!"
	ActionRename Action = "rename"
)

// editSeparator splits the expected payload from the replacement in EDIT! patches.
const editSeparator = "===>"

var (
	// ErrPatchMismatch is returned when a signal does not carry the payload
	// its patch expects.
	ErrPatchMismatch = errors.New("signal and patch differ")

	// ErrDuplicatePatch is returned when two patches address the same line.
	ErrDuplicatePatch = errors.New("duplicate patch for line")
)

// Patch is one manual correction.
type Patch struct {
	Line     int
	Action   Action
	Expected string
	NewKind  signal.Kind // ActionRename
	NewData  string      // ActionEdit
}

// Set holds patches keyed by source line.
type Set map[int]Patch

// Parse reads patches in signal dump format. The kind column holds either a
// new signal kind or one of SKIP!, BR!, EDIT!. Blank lines and lines starting
// with # are ignored.
func Parse(r io.Reader) (Set, error) {
	set := make(Set)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		s, err := signal.Deserialize(text)
		if err != nil {
			return nil, fmt.Errorf("patch line %d: %w", lineNo, err)
		}
		p := Patch{Line: s.Line, Expected: s.Text()}
		switch Action(s.Kind) {
		case ActionSkip, ActionBreak:
			p.Action = Action(s.Kind)
		case ActionEdit:
			expected, replacement, ok := strings.Cut(s.Text(), editSeparator)
			if !ok {
				return nil, fmt.Errorf("patch line %d: EDIT! needs 'expected%sreplacement'", lineNo, editSeparator)
			}
			p.Action, p.Expected, p.NewData = ActionEdit, expected, replacement
		default:
			p.Action, p.NewKind = ActionRename, s.Kind
		}

		if _, dup := set[p.Line]; dup {
			return nil, fmt.Errorf("patch line %d: %w %d", lineNo, ErrDuplicatePatch, p.Line)
		}
		set[p.Line] = p
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading patches: %w", err)
	}
	return set, nil
}

// Load reads a patch file. A missing path yields an empty set.
func Load(path string) (Set, error) {
	if path == "" {
		return Set{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open patch file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// matches reports whether payload satisfies the patch expectation: equal, or
// starting with the expected text once both are trimmed.
func (p Patch) matches(payload string) bool {
	return payload == p.Expected ||
		strings.HasPrefix(strings.TrimSpace(payload), strings.TrimSpace(p.Expected))
}

// Patcher is a chain stage applying a patch set.
type Patcher struct {
	patches Set
	next    chain.Sink[signal.Signal]
	applied map[int]bool
}

// NewPatcher creates a patcher.
func NewPatcher(patches Set, next chain.Sink[signal.Signal]) *Patcher {
	return &Patcher{patches: patches, next: next, applied: make(map[int]bool)}
}

// Process implements chain.Sink.
func (p *Patcher) Process(s signal.Signal) error {
	pt, ok := p.patches[s.Line]
	if !ok || s.Line == 0 || s.Data == nil {
		return p.next.Process(s)
	}
	if !pt.matches(s.Text()) {
		return fmt.Errorf("%w: expected %q for signal %s", ErrPatchMismatch, pt.Expected, s.Serialize())
	}
	p.applied[s.Line] = true

	switch pt.Action {
	case ActionSkip:
		return nil
	case ActionBreak:
		if err := p.next.Process(signal.Break(s.Line)); err != nil {
			return err
		}
	case ActionEdit:
		s = s.WithData(pt.NewData)
	case ActionRename:
		s = s.WithKind(pt.NewKind)
	}
	return p.next.Process(s)
}

// Finish implements chain.Sink.
func (p *Patcher) Finish() error {
	return p.next.Finish()
}

// Unapplied returns the lines of patches that never matched a signal.
func (p *Patcher) Unapplied() []int {
	var lines []int
	for line := range p.patches {
		if !p.applied[line] {
			lines = append(lines, line)
		}
	}
	return lines
}
