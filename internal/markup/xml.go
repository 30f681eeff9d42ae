package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XMLSource reads markup events from an XML document.
type XMLSource struct {
	dec *xml.Decoder

	// KeepWhitespace emits text events that contain only whitespace.
	KeepWhitespace bool

	depth int
}

// NewXMLSource creates a source reading XML from r.
func NewXMLSource(r io.Reader) *XMLSource {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	return &XMLSource{dec: dec}
}

// Next implements Source.
func (s *XMLSource) Next() (Event, error) {
	for {
		// position before reading is where the token starts
		line, _ := s.dec.InputPos()
		tok, err := s.dec.Token()
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, fmt.Errorf("error parsing XML near line %d: %w", line, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Name.Local] = a.Value
			}
			ev := Event{Kind: Start, Name: t.Name.Local, Attrs: attrs, Depth: s.depth, Line: line}
			s.depth++
			return ev, nil

		case xml.EndElement:
			s.depth--
			return Event{Kind: End, Name: t.Name.Local, Depth: s.depth, Line: line}, nil

		case xml.CharData:
			text := string(t)
			if !s.KeepWhitespace && strings.TrimSpace(text) == "" {
				continue
			}
			return Event{Kind: Text, Text: text, Depth: s.depth, Line: line}, nil
		}
	}
}
