// Package signal defines the tagged event that flows between the classifier,
// the patcher and the article assembler.
package signal

// Kind names the semantic class of a signal.
// The set is open: patches may rename a signal to any kind the assembler knows.
type Kind = string

const (
	Header          Kind = "header"
	HeaderAlt       Kind = "header-alt"
	BodyText        Kind = "body-text"
	BodyTextAlt     Kind = "body-text-alt"
	BodyTextUnknown Kind = "body-text-unknown"
	TableRow        Kind = "table-row"
	TableRowAlt     Kind = "table-row-alt"
	TableSubheader  Kind = "table-subheader"
	FootnoteMarker  Kind = "footnote-marker"
	FootnoteStart   Kind = "footnote-start"
	FootnoteBody    Kind = "footnote-body"
	FootnoteBodyAlt Kind = "footnote-body-alt"
	LineBreak       Kind = "line-break"
	Properties      Kind = "properties"
	Skipped         Kind = "skipped"
)

// Signal is a classified piece of the source document.
// Data is nil for payload-less signals such as line breaks.
type Signal struct {
	Kind Kind
	Data *string
	Line int // 1-based source line, 0 when unknown
}

// New returns a signal carrying text.
func New(kind Kind, data string, line int) Signal {
	return Signal{Kind: kind, Data: &data, Line: line}
}

// Break returns a payload-less line-break signal.
func Break(line int) Signal {
	return Signal{Kind: LineBreak, Line: line}
}

// Text returns the payload, or an empty string for a nil payload.
func (s Signal) Text() string {
	if s.Data == nil {
		return ""
	}
	return *s.Data
}

// WithData returns a copy of s carrying a new payload.
func (s Signal) WithData(data string) Signal {
	s.Data = &data
	return s
}

// WithKind returns a copy of s with a new kind.
func (s Signal) WithKind(kind Kind) Signal {
	s.Kind = kind
	return s
}

// IsAlt reports whether the kind belongs to the schismatic dialect.
func IsAlt(kind Kind) bool {
	switch kind {
	case HeaderAlt, BodyTextAlt, TableRowAlt, FootnoteBodyAlt:
		return true
	}
	return false
}
