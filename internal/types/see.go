package types

import (
	"fmt"
	"strings"
)

// See is the structured form of an article: officeholder rows split into
// dates and names.
type See struct {
	ID           string        `json:"id"`
	Header       string        `json:"header"`
	IsSchismatic bool          `json:"is_schismatic"`
	IsRedirect   bool          `json:"is_redirect"`
	Text         string        `json:"text,omitempty"`
	Tenures      []TenureEntry `json:"tenures"`
	Notes        []Note        `json:"notes"`
}

// TenureEntry is either a table subheader or a tenure.
type TenureEntry struct {
	Subheader string  `json:"subheader,omitempty"`
	Tenure    *Tenure `json:"tenure,omitempty"`
}

// LastTenure returns the last tenure of the see, or nil.
func (s *See) LastTenure() *Tenure {
	for i := len(s.Tenures) - 1; i >= 0; i-- {
		if t := s.Tenures[i].Tenure; t != nil {
			return t
		}
	}
	return nil
}

// Tenure is one officeholder row. When the row could not be divided, Row
// keeps the original text and Unparsed is set; when only the name failed,
// Who keeps the name text and Name is nil.
type Tenure struct {
	Row      string       `json:"row"`           // cleaned cell text
	Raw      string       `json:"raw,omitempty"` // row markup, when cleaning changed it
	Line     int          `json:"line,omitempty"`
	Who      string       `json:"who,omitempty"`
	Begin    *DatingField `json:"begin,omitempty"`
	End      *DatingField `json:"end,omitempty"`
	Name     *Person      `json:"name,omitempty"`
	Acting   string       `json:"acting,omitempty"` // "в/у" or "в/у?"
	Repeat   int          `json:"repeat,omitempty"` // 2 for "паки", N for "в N-й раз"
	Inexact  bool         `json:"inexact,omitempty"`
	Notes    []int        `json:"notes,omitempty"`
	Unparsed bool         `json:"unparsed,omitempty"`
}

// Title renders the officeholder with the acting and repeat markers, the
// way tenure lists show it.
func (t *Tenure) Title() string {
	title := strings.TrimSpace(t.Who)
	if t.Acting != "" {
		title = t.Acting + " " + title
	}
	switch {
	case t.Repeat == 2:
		title += ", паки"
	case t.Repeat > 2:
		title += fmt.Sprintf(", в %d-й раз", t.Repeat)
	}
	return title
}

// LastNote returns the last footnote referenced by the row, or 0.
func (t *Tenure) LastNote() int {
	if len(t.Notes) == 0 {
		return 0
	}
	return t.Notes[len(t.Notes)-1]
}

// DatingField is a begin or end date of a tenure. Text is always the
// source text; the remaining fields are set when Parsed is true. From and To
// bound the calendar interval the dating denotes, as ISO dates.
type DatingField struct {
	Text      string `json:"text"`
	Year      int    `json:"year,omitempty"`
	Month     int    `json:"month,omitempty"`
	Day       int    `json:"day,omitempty"`
	Qualifier string `json:"qualifier,omitempty"`
	Parsed    bool   `json:"parsed"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
}

// Person is a parsed officeholder name.
type Person struct {
	Given          string `json:"given,omitempty"`
	GivenOrdinal   string `json:"given_ordinal,omitempty"`
	Surname        string `json:"surname,omitempty"`
	SurnameOrdinal string `json:"surname_ordinal,omitempty"`
	Ecclesiastical string `json:"ecclesiastical,omitempty"`
	Worldly        string `json:"worldly,omitempty"`
	Remark         string `json:"remark,omitempty"`
	Key            string `json:"key"`
}
