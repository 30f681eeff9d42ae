package signal

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// BreakToken is the markup a line break is rendered to.
const BreakToken = "<br>\n"

var noteSpanPattern = regexp.MustCompile(`<span\s+class="note"[^>]*>\s*(\d+)\s*</span>`)

// NoteSpan renders an inline footnote reference.
func NoteSpan(num int) string {
	return fmt.Sprintf(`<span class="note" data-note="%d">%d</span>`, num, num)
}

// JoinPlain concatenates payloads, turning line breaks into newlines.
// The result is trimmed.
func JoinPlain(sigs []Signal) string {
	var b strings.Builder
	for _, s := range sigs {
		if s.Kind == LineBreak {
			b.WriteString("\n")
			continue
		}
		b.WriteString(s.Text())
	}
	return strings.TrimSpace(b.String())
}

// JoinMarkup concatenates payloads into lightly marked-up text: text is
// HTML-escaped, footnote markers become note spans and line breaks become
// BreakToken. Trailing breaks are dropped, inner ones are kept.
func JoinMarkup(sigs []Signal, trim bool) (string, error) {
	parts := make([]string, 0, len(sigs))
	for _, s := range sigs {
		switch s.Kind {
		case LineBreak:
			parts = append(parts, BreakToken)
		case FootnoteMarker:
			num, err := strconv.Atoi(strings.TrimSpace(s.Text()))
			if err != nil {
				return "", fmt.Errorf("footnote marker %q at line %d is not a number", s.Text(), s.Line)
			}
			parts = append(parts, NoteSpan(num))
		default:
			parts = append(parts, html.EscapeString(s.Text()))
		}
	}

	for len(parts) > 0 && parts[len(parts)-1] == BreakToken {
		parts = parts[:len(parts)-1]
	}

	res := strings.Join(parts, "")
	if trim {
		res = strings.TrimSpace(res)
	}
	return res, nil
}

// SplitMarkup is the inverse of JoinMarkup. Text runs become signals of
// textKind, note spans become footnote markers and break tokens become line
// breaks. Adjacent text signals come back merged.
func SplitMarkup(s string, textKind Kind) []Signal {
	var out []Signal
	pushText := func(t string) {
		if t == "" {
			return
		}
		out = append(out, New(textKind, html.UnescapeString(t), 0))
	}

	for s != "" {
		brAt := strings.Index(s, BreakToken)
		loc := noteSpanPattern.FindStringSubmatchIndex(s)

		switch {
		case brAt < 0 && loc == nil:
			pushText(s)
			s = ""
		case loc == nil || (brAt >= 0 && brAt < loc[0]):
			pushText(s[:brAt])
			out = append(out, Break(0))
			s = s[brAt+len(BreakToken):]
		default:
			pushText(s[:loc[0]])
			out = append(out, New(FootnoteMarker, s[loc[2]:loc[3]], 0))
			s = s[loc[1]:]
		}
	}
	return out
}

// NoteRefs collects the footnote numbers referenced in s and returns s with
// the note spans removed.
func NoteRefs(s string) ([]int, string) {
	var nums []int
	for _, m := range noteSpanPattern.FindAllStringSubmatch(s, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums, noteSpanPattern.ReplaceAllString(s, "")
}

// StripBreaks replaces break tokens with a single space.
func StripBreaks(s string) string {
	s = strings.ReplaceAll(s, BreakToken, " ")
	return strings.ReplaceAll(s, "<br>", " ")
}
