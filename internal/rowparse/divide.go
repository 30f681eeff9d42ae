package rowparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackzampolin/hierarh/internal/signal"
)

// rowSeparator is a dash followed by whitespace; hyphens inside names and
// dashes inside year ranges without a following space do not split.
var rowSeparator = regexp.MustCompile(`\s*[–—]\s+`)

// Division is an officeholder row split into its three cells.
type Division struct {
	Begin   string
	End     string
	Who     string
	Inexact bool // the row was wrapped in parentheses
}

// Divide splits a row "begin – end – who". A row wrapped in one pair of
// parentheses is unwrapped and marked inexact.
func Divide(row string) Outcome[Division] {
	text := strings.TrimSpace(signal.StripBreaks(row))

	var d Division
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") && len(text) > 1 {
		d.Inexact = true
		text = strings.TrimSpace(text[1 : len(text)-1])
	}

	parts := rowSeparator.Split(text, -1)
	if len(parts) != 3 {
		return Failed[Division](row, DivideFailure, fmt.Sprintf("expected 3 cells, got %d", len(parts)))
	}
	d.Begin = strings.TrimSpace(parts[0])
	d.End = strings.TrimSpace(parts[1])
	d.Who = strings.TrimSpace(parts[2])
	return Ok(d)
}
