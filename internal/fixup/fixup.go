// Package fixup corrects structured sees that the book gets wrong in ways
// no grammar can express.
package fixup

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/types"
)

var (
	// ErrSplitNotApplied is returned at Finish when a note split never found
	// its recipient.
	ErrSplitNotApplied = errors.New("note split not applied")

	// ErrSplitMismatch is returned when the donor or recipient does not look
	// the way the split expects.
	ErrSplitMismatch = errors.New("note split does not match the sees")
)

// NoteSplit moves the leading part of a shared footnote list from the
// recipient see to the donor see. The book prints one list of footnotes for
// two consecutive articles; notes 1..Boundary belong to the donor.
type NoteSplit struct {
	Donor     string `mapstructure:"donor" yaml:"donor" json:"donor"`
	Recipient string `mapstructure:"recipient" yaml:"recipient" json:"recipient"`
	Boundary  int    `mapstructure:"boundary" yaml:"boundary" json:"boundary"`
}

// DefaultNoteSplits is the Metropolia of all Russia, whose footnotes are
// printed with the Moscow Patriarchate article.
var DefaultNoteSplits = []NoteSplit{{
	Donor:     "ВСЕРОССИЙСКАЯ Митрополия Киевская и всея Руссии («Митрополия России»), Митрополия Московская и всея Руссии",
	Recipient: "Московский и всея России Патриархат",
	Boundary:  67,
}}

// Validate checks that the split names both sees and a boundary of at
// least one note.
func (ns NoteSplit) Validate() error {
	switch {
	case ns.Donor == "" || ns.Recipient == "":
		return fmt.Errorf("%w: donor and recipient are required", ErrSplitMismatch)
	case ns.Donor == ns.Recipient:
		return fmt.Errorf("%w: %q is both donor and recipient", ErrSplitMismatch, ns.Donor)
	case ns.Boundary < 1:
		return fmt.Errorf("%w: boundary %d of %q must be at least 1", ErrSplitMismatch, ns.Boundary, ns.Recipient)
	}
	return nil
}

type splitState struct {
	NoteSplit
	stashed *types.See
	done    bool
}

// Splitter is a chain stage applying note splits.
type Splitter struct {
	next   chain.Sink[*types.See]
	splits []*splitState
	logger *slog.Logger
}

// NewSplitter creates a splitter. Every split must be applied by the time
// the stream finishes.
func NewSplitter(splits []NoteSplit, next chain.Sink[*types.See], logger *slog.Logger) (*Splitter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Splitter{next: next, logger: logger}
	for _, ns := range splits {
		if err := ns.Validate(); err != nil {
			return nil, err
		}
		s.splits = append(s.splits, &splitState{NoteSplit: ns})
	}
	return s, nil
}

// Process implements chain.Sink.
func (s *Splitter) Process(see *types.See) error {
	for _, st := range s.splits {
		switch see.Header {
		case st.Donor:
			return st.stash(see)
		case st.Recipient:
			donor, err := st.split(see)
			if err != nil {
				return err
			}
			s.logger.Info("footnotes split", "donor", st.Donor, "recipient", st.Recipient, "boundary", st.Boundary)
			if err := s.next.Process(donor); err != nil {
				return err
			}
			return s.next.Process(see)
		}
	}
	return s.next.Process(see)
}

// Finish implements chain.Sink.
func (s *Splitter) Finish() error {
	for _, st := range s.splits {
		if !st.done {
			return fmt.Errorf("%w: %q -> %q", ErrSplitNotApplied, st.Recipient, st.Donor)
		}
	}
	return s.next.Finish()
}

func (st *splitState) stash(see *types.See) error {
	if len(see.Notes) != 0 {
		return fmt.Errorf("%w: %q has its own footnotes", ErrSplitMismatch, see.Header)
	}
	last := see.LastTenure()
	if last == nil || last.LastNote() != st.Boundary {
		return fmt.Errorf("%w: last footnote reference of %q is not %d", ErrSplitMismatch, see.Header, st.Boundary)
	}
	st.stashed = see
	return nil
}

func (st *splitState) split(see *types.See) (*types.See, error) {
	if st.stashed == nil {
		return nil, fmt.Errorf("%w: %q arrived before %q", ErrSplitMismatch, see.Header, st.Donor)
	}
	i := st.Boundary - 1
	if i < 0 || len(see.Notes) <= i || see.Notes[i].Num != st.Boundary {
		return nil, fmt.Errorf("%w: footnote %d of %q is not at position %d", ErrSplitMismatch, st.Boundary, see.Header, st.Boundary)
	}

	donor := st.stashed
	donor.Notes = append([]types.Note(nil), see.Notes[:i+1]...)
	see.Notes = append([]types.Note(nil), see.Notes[i+1:]...)
	st.stashed = nil
	st.done = true
	return donor, nil
}
