// Package classify turns the markup event stream of the book export into a
// stream of semantic signals (headers, body text, table rows, footnotes).
package classify

import (
	"log/slog"
	"strings"

	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/markup"
	"github.com/jackzampolin/hierarh/internal/signal"
)

// Tag names the classifier reacts to.
const (
	tagInit           = "init"
	tagParagraph      = "ParagraphStyleRange"
	tagCharacter      = "CharacterStyleRange"
	tagContent        = "Content"
	tagProperties     = "Properties"
	tagBreak          = "Br"
	attrStyle         = "AppliedParagraphStyle"
	attrJustification = "Justification"
	attrPosition      = "Position"
	positionSuperText = "Superscript"
)

// frame is one level of the classification stack. The frame is popped when
// an end event arrives at the depth of the tag that pushed it.
type frame struct {
	kind  signal.Kind
	tag   string
	depth int
}

// Config configures a Classifier.
type Config struct {
	Styles *StyleTable
	Next   chain.Sink[signal.Signal]
	Logger *slog.Logger
}

// Classifier is a chain stage from markup events to signals.
type Classifier struct {
	styles *StyleTable
	next   chain.Sink[signal.Signal]
	logger *slog.Logger
	stack  []frame
}

// New creates a classifier.
func New(cfg Config) *Classifier {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Classifier{
		styles: cfg.Styles,
		next:   cfg.Next,
		logger: cfg.Logger,
		stack:  []frame{{tag: tagInit, depth: -1}},
	}
}

func (c *Classifier) top() frame {
	return c.stack[len(c.stack)-1]
}

func (c *Classifier) push(kind signal.Kind, ev markup.Event) {
	c.stack = append(c.stack, frame{kind: kind, tag: ev.Name, depth: ev.Depth})
}

func (c *Classifier) pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

// Depth returns the number of pushed classification frames.
func (c *Classifier) Depth() int {
	return len(c.stack) - 1
}

// Process implements chain.Sink.
func (c *Classifier) Process(ev markup.Event) error {
	cur := c.top()
	if ev.Kind == markup.End && ev.Depth == cur.depth {
		c.pop()
		return nil
	}

	var (
		consumed bool
		err      error
	)
	switch cur.tag {
	case tagInit:
		c.inInit(ev)
	case tagParagraph:
		c.inParagraph(ev, cur)
	case tagCharacter:
		err = c.inCharacter(ev, cur)
	case tagContent, tagProperties:
		consumed, err = c.inText(ev, cur)
	}
	if err != nil {
		return err
	}

	if ev.Kind == markup.Text && !consumed && strings.TrimSpace(ev.Text) != "" {
		c.logger.Debug("unclassified text", "line", ev.Line, "context", cur.tag)
		return c.next.Process(signal.New(signal.Skipped, ev.Text, ev.Line))
	}
	return nil
}

// Finish implements chain.Sink.
func (c *Classifier) Finish() error {
	return c.next.Finish()
}

func (c *Classifier) inInit(ev markup.Event) {
	if ev.Kind != markup.Start {
		return
	}
	switch ev.Name {
	case tagParagraph:
		if kind, ok := c.styles.Match(ev.Attr(attrStyle), ev.Attr(attrJustification)); ok {
			c.push(kind, ev)
		}
	case tagProperties:
		c.push(signal.Properties, ev)
	}
}

func (c *Classifier) inParagraph(ev markup.Event, cur frame) {
	if ev.Kind != markup.Start {
		return
	}
	switch ev.Name {
	case tagCharacter:
		if ev.Attr(attrPosition) == positionSuperText {
			kind := signal.FootnoteMarker
			if cur.kind == signal.FootnoteBody || cur.kind == signal.FootnoteBodyAlt {
				kind = signal.FootnoteStart
			}
			c.push(kind, ev)
			return
		}
		c.push(cur.kind, ev)
	case tagProperties:
		c.push(signal.Properties, ev)
	}
}

func (c *Classifier) inCharacter(ev markup.Event, cur frame) error {
	if ev.Kind != markup.Start {
		return nil
	}
	switch ev.Name {
	case tagContent:
		c.push(cur.kind, ev)
	case tagBreak:
		return c.next.Process(signal.Break(ev.Line))
	case tagProperties:
		c.push(signal.Properties, ev)
	}
	return nil
}

func (c *Classifier) inText(ev markup.Event, cur frame) (bool, error) {
	if ev.Kind != markup.Text {
		return false, nil
	}
	return true, c.next.Process(signal.New(cur.kind, ev.Text, ev.Line))
}
