// Package types provides the records shared across the pipeline stages.
// This package has no dependencies on other hierarh packages to avoid import cycles.
package types

import (
	"strconv"

	"github.com/google/uuid"
)

// articleNamespace seeds deterministic article IDs.
var articleNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("hierarh/article"))

// ArticleID derives a stable ID from the header and the source line the
// article starts at. Re-running the pipeline over the same book yields the
// same IDs.
func ArticleID(header string, startLine int) string {
	return uuid.NewSHA1(articleNamespace, []byte(strconv.Itoa(startLine)+":"+header)).String()
}

// Article is a raw see article as assembled from the signal stream.
// Text, row texts and note texts carry light markup: escaped text, note
// spans and <br> tokens.
type Article struct {
	ID           string `json:"id"`
	Header       string `json:"header"`
	IsSchismatic bool   `json:"is_schismatic"`
	IsRedirect   bool   `json:"is_redirect"`
	StartLine    int    `json:"start_line"`
	Text         string `json:"text,omitempty"`
	Rows         []Row  `json:"rows"`
	Notes        []Note `json:"notes"`
}

// Row is one entry of the officeholder table: either a subheader such as
// "Архиепископы" or the raw text of an officeholder row.
type Row struct {
	Subheader string `json:"subheader,omitempty"`
	Text      string `json:"text,omitempty"`
	Line      int    `json:"line,omitempty"`
}

// IsSubheader reports whether the row is a table subheader.
func (r Row) IsSubheader() bool {
	return r.Subheader != ""
}

// Note is a numbered footnote of an article.
type Note struct {
	Num  int    `json:"num"`
	Text string `json:"text"`
}

// LastRowText returns the text of the last officeholder row, or "".
func (a *Article) LastRowText() string {
	for i := len(a.Rows) - 1; i >= 0; i-- {
		if !a.Rows[i].IsSubheader() {
			return a.Rows[i].Text
		}
	}
	return ""
}
