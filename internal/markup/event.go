// Package markup models the low-level tag/text event stream the classifier
// consumes and provides an XML-backed source for it.
package markup

import "io"

// Kind is the type of a markup event.
type Kind string

const (
	Start Kind = "start"
	Text  Kind = "text"
	End   Kind = "end"
)

// Event is one start, text or end event.
// Depth is the nesting level of the tag (0 = root); a start event and its
// matching end event carry the same depth, text events carry the depth of
// their children.
type Event struct {
	Kind  Kind
	Name  string            // tag name, empty for text
	Attrs map[string]string // start events only
	Text  string            // text events only
	Depth int
	Line  int // 1-based source line
}

// Attr returns an attribute value or "".
func (e Event) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// Source yields markup events in document order.
// Next returns io.EOF once the stream is exhausted.
type Source interface {
	Next() (Event, error)
}

// SliceSource replays a fixed list of events.
type SliceSource struct {
	events []Event
	pos    int
}

// NewSliceSource creates a source over events.
func NewSliceSource(events []Event) *SliceSource {
	return &SliceSource{events: events}
}

// Next implements Source.
func (s *SliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}
