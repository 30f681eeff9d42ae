// Package assemble builds raw see articles from the classified signal
// stream. Each article is a header, an optional body text, the officeholder
// table and the footnotes; canonical and schismatic sees are assembled by
// parallel sets of states.
package assemble

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/fsm"
	"github.com/jackzampolin/hierarh/internal/signal"
	"github.com/jackzampolin/hierarh/internal/types"
)

var (
	// ErrCategoryMismatch is returned when a header's text disagrees with the
	// dialect of the style it was set in.
	ErrCategoryMismatch = errors.New("header category does not match its style")

	// ErrFootnoteSequence is returned when footnote numbers and bodies do not alternate.
	ErrFootnoteSequence = errors.New("broken footnote sequence")

	// ErrEmptyFootnote is returned for a footnote without text.
	ErrEmptyFootnote = errors.New("empty footnote")

	// ErrFinishState is returned when the stream ends outside a footnote.
	ErrFinishState = errors.New("wrong finish state")
)

var (
	schismaticHeader = regexp.MustCompile(`^.*(\s(обн\.|григ\.|самозв\.|укр\.)|\(ПАПЦ\))`)
	redirectHeader   = regexp.MustCompile(`^.*(\(|\s)см\.`)
)

// DefaultNoTextHeaders lists the sees whose officeholder table follows the
// header directly, without a body text.
var DefaultNoTextHeaders = []string{
	"Викариатство Киевской епархии",
	"ВЛАДИВОСТОКСКАЯ, григ.",
	"МОСКОВСКИЙ И ВСЕЯ РОССИИ ПАТРИАРХАТ, обн.",
	"САРАТОВСКАЯ, григ.",
	"ХАРЬКОВСКАЯ, григ.",
	"ЯРОСЛАВСКАЯ, григ.",
}

// AssemblyError carries the position of a fatal assembly error.
type AssemblyError struct {
	Line    int
	State   string
	Kind    string
	Context string
	Err     error
}

func (e *AssemblyError) Error() string {
	msg := fmt.Sprintf("line %d: state %q, signal %q: %v", e.Line, e.State, e.Kind, e.Err)
	if e.Context != "" {
		msg += "\nbuffered signals:\n" + e.Context
	}
	return msg
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

// Config configures an Assembler.
type Config struct {
	Next          chain.Sink[*types.Article]
	NoTextHeaders []string // defaults to DefaultNoTextHeaders
	Logger        *slog.Logger
}

// Assembler is a chain stage turning signals into articles.
type Assembler struct {
	next    chain.Sink[*types.Article]
	noText  []string
	logger  *slog.Logger
	machine *fsm.Machine[signal.Signal]

	buf     []signal.Signal
	article *types.Article
	pending *int // footnote number waiting for its body
	emitted int
}

// New creates an assembler in the expect-header state.
func New(cfg Config) (*Assembler, error) {
	m, err := fsm.New[signal.Signal](states(), StateExpectHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to build assembler states: %w", err)
	}

	a := &Assembler{
		next:    cfg.Next,
		noText:  cfg.NoTextHeaders,
		logger:  cfg.Logger,
		machine: m,
	}
	if a.noText == nil {
		a.noText = DefaultNoTextHeaders
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	m.ContextFunc = a.bufferDump
	a.register()
	return a, nil
}

func (a *Assembler) register() {
	m := a.machine

	m.On(fsm.AnyState, fsm.EventEnter, func(_ *fsm.Machine[signal.Signal], kind string, s signal.Signal) (bool, error) {
		a.buf = a.buf[:0]
		if kind != "" && kind != signal.LineBreak {
			a.buf = append(a.buf, s)
		}
		return false, nil
	})
	m.On(fsm.AnyState, fsm.EventCycle, func(_ *fsm.Machine[signal.Signal], _ string, s signal.Signal) (bool, error) {
		a.buf = append(a.buf, s)
		return false, nil
	})
	m.On(fsm.AnyState, fsm.EventFail, a.onFail)

	for _, st := range []string{StateHeader, StateHeaderAlt} {
		m.On(st, fsm.EventEnter, a.onHeaderEnter)
	}
	m.On(StateHeader, fsm.EventExit, a.headerExit(false))
	m.On(StateHeaderAlt, fsm.EventExit, a.headerExit(true))

	for _, st := range []string{StateBodyText, StateBodyTextAlt} {
		m.On(st, fsm.EventExit, a.onTextExit)
	}
	for _, st := range []string{StateTableRow, StateTableRowAlt} {
		m.On(st, fsm.EventExit, a.onRowExit)
	}
	m.On(StateTableSubheader, fsm.EventExit, a.onSubheaderExit)
	for _, st := range []string{StateFootnoteStart, StateFootnoteStartAlt} {
		m.On(st, fsm.EventExit, a.onNoteStartExit)
	}
	for _, st := range []string{StateFootnoteBody, StateFootnoteBodyAlt} {
		m.On(st, fsm.EventExit, a.onNoteExit)
	}
}

// Process implements chain.Sink.
func (a *Assembler) Process(s signal.Signal) error {
	if s.Kind == signal.Properties || s.Kind == signal.Skipped {
		return nil
	}
	state := a.machine.State()
	if err := a.machine.Signal(s.Kind, s); err != nil {
		return a.wrap(err, state, s)
	}
	return nil
}

// Finish flushes the last footnote and article. The stream must end inside
// a footnote body.
func (a *Assembler) Finish() error {
	state := a.machine.State()
	if state != StateFootnoteBody && state != StateFootnoteBodyAlt {
		return &AssemblyError{State: state, Err: ErrFinishState, Context: a.bufferDump()}
	}
	if err := a.machine.SetState(StateExpectHeader, true); err != nil {
		return a.wrap(err, state, signal.Signal{})
	}
	if err := a.emit(); err != nil {
		return err
	}
	a.logger.Debug("assembly finished", "articles", a.emitted)
	return a.next.Finish()
}

// Emitted returns the number of articles sent downstream.
func (a *Assembler) Emitted() int {
	return a.emitted
}

func (a *Assembler) wrap(err error, state string, s signal.Signal) error {
	var ae *AssemblyError
	if errors.As(err, &ae) {
		return err
	}
	out := &AssemblyError{Line: s.Line, State: state, Kind: s.Kind, Err: err}
	// A wrong signal already carries the buffer dump.
	var ws *fsm.WrongSignalError
	if !errors.As(err, &ws) {
		out.Context = a.bufferDump()
	}
	return out
}

func (a *Assembler) bufferDump() string {
	lines := make([]string, 0, len(a.buf))
	for _, s := range a.buf {
		lines = append(lines, s.Serialize())
	}
	return strings.Join(lines, "\n")
}

// emit sends the current article downstream.
func (a *Assembler) emit() error {
	art := a.article
	if art == nil {
		return nil
	}
	if art.Header == "" {
		return fmt.Errorf("article at line %d has no header", art.StartLine)
	}
	if a.pending != nil {
		return fmt.Errorf("%w: footnote %d of %q has no text", ErrFootnoteSequence, *a.pending, art.Header)
	}
	art.ID = types.ArticleID(art.Header, art.StartLine)
	a.article = nil
	a.emitted++
	a.logger.Debug("article assembled", "header", art.Header, "line", art.StartLine,
		"rows", len(art.Rows), "notes", len(art.Notes), "redirect", art.IsRedirect)
	return a.next.Process(art)
}

func (a *Assembler) onHeaderEnter(_ *fsm.Machine[signal.Signal], _ string, s signal.Signal) (bool, error) {
	if err := a.emit(); err != nil {
		return false, err
	}
	a.article = &types.Article{StartLine: s.Line}
	return false, nil
}

func (a *Assembler) headerExit(schismatic bool) fsm.Hook[signal.Signal] {
	return func(m *fsm.Machine[signal.Signal], kind string, _ signal.Signal) (bool, error) {
		art := a.article
		art.Header = signal.JoinPlain(a.buf)
		art.IsSchismatic = schismatic

		if schismaticHeader.MatchString(art.Header) != schismatic {
			return false, fmt.Errorf("%w: %q, schismatic style: %v", ErrCategoryMismatch, art.Header, schismatic)
		}

		if kind == signal.LineBreak && redirectHeader.MatchString(art.Header) {
			art.IsRedirect = true
			if err := a.emit(); err != nil {
				return false, err
			}
			a.buf = a.buf[:0]
			if err := m.SetState(StateExpectHeader, false); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	}
}

func (a *Assembler) onTextExit(_ *fsm.Machine[signal.Signal], _ string, _ signal.Signal) (bool, error) {
	text, err := signal.JoinMarkup(a.buf, true)
	if err != nil {
		return false, err
	}
	a.article.Text = text
	return false, nil
}

func (a *Assembler) onRowExit(_ *fsm.Machine[signal.Signal], _ string, _ signal.Signal) (bool, error) {
	text, err := signal.JoinMarkup(a.buf, false)
	if err != nil {
		return false, err
	}
	row := types.Row{Text: text}
	if len(a.buf) > 0 {
		row.Line = a.buf[0].Line
	}
	a.article.Rows = append(a.article.Rows, row)
	return false, nil
}

func (a *Assembler) onSubheaderExit(_ *fsm.Machine[signal.Signal], _ string, _ signal.Signal) (bool, error) {
	text, err := signal.JoinMarkup(a.buf, true)
	if err != nil {
		return false, err
	}
	a.article.Rows = append(a.article.Rows, types.Row{Subheader: text})
	return false, nil
}

func (a *Assembler) onNoteStartExit(_ *fsm.Machine[signal.Signal], _ string, _ signal.Signal) (bool, error) {
	raw := signal.JoinPlain(a.buf)
	if a.pending != nil {
		return false, fmt.Errorf("%w: footnote %s started before footnote %d got its text",
			ErrFootnoteSequence, raw, *a.pending)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return false, fmt.Errorf("%w: footnote number %q", ErrFootnoteSequence, raw)
	}
	a.pending = &n
	return false, nil
}

func (a *Assembler) onNoteExit(_ *fsm.Machine[signal.Signal], _ string, _ signal.Signal) (bool, error) {
	if a.pending == nil {
		return false, fmt.Errorf("%w: footnote text without a number", ErrFootnoteSequence)
	}
	text, err := signal.JoinMarkup(a.buf, true)
	if err != nil {
		return false, err
	}
	if text == "" {
		return false, fmt.Errorf("%w: footnote %d", ErrEmptyFootnote, *a.pending)
	}
	a.article.Notes = append(a.article.Notes, types.Note{Num: *a.pending, Text: text})
	a.pending = nil
	return false, nil
}

// onFail lets the sees without a body text go straight to their table.
func (a *Assembler) onFail(m *fsm.Machine[signal.Signal], kind string, s signal.Signal) (bool, error) {
	if a.article == nil || !slices.Contains(a.noText, a.article.Header) {
		return false, nil
	}

	var target string
	switch {
	case m.State() == StateExpectText && kind == signal.TableRow:
		target = StateBodyText
	case m.State() == StateExpectTextAlt && kind == signal.TableRowAlt:
		target = StateBodyTextAlt
	default:
		return false, nil
	}

	a.logger.Debug("see without body text", "header", a.article.Header, "line", s.Line)
	if err := m.SetState(target, false); err != nil {
		return false, err
	}
	return true, m.Signal(kind, s)
}
