// Package clean holds the signal stages that sit between the classifier and
// the assembler: the skipped-text alarm and the text cleaner.
package clean

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/signal"
)

// ErrSkippedText is returned when the classifier left text unclassified and
// the catcher is configured to fail on it.
var ErrSkippedText = errors.New("skipped text detected")

// lineSeparator is U+2028, which editors and browsers do not treat as a newline.
const lineSeparator = '\u2028'

// SkippedCatcher raises an alarm for every skipped signal.
type SkippedCatcher struct {
	Next         chain.Sink[signal.Signal]
	FailOnSkip   bool
	Logger       *slog.Logger
	skippedCount int
}

// Process implements chain.Sink.
func (c *SkippedCatcher) Process(s signal.Signal) error {
	if s.Kind == signal.Skipped {
		c.skippedCount++
		if c.FailOnSkip {
			return fmt.Errorf("%w at line %d: %q", ErrSkippedText, s.Line, s.Text())
		}
		if c.Logger != nil {
			c.Logger.Warn("skipped text", "line", s.Line, "text", s.Text())
		}
	}
	return c.Next.Process(s)
}

// Finish implements chain.Sink.
func (c *SkippedCatcher) Finish() error {
	return c.Next.Finish()
}

// Skipped returns the number of skipped signals seen.
func (c *SkippedCatcher) Skipped() int {
	return c.skippedCount
}

// TextCleaner normalizes signal payloads.
type TextCleaner struct {
	Next chain.Sink[signal.Signal]
}

// Process implements chain.Sink.
func (c *TextCleaner) Process(s signal.Signal) error {
	if s.Data != nil && *s.Data != "" {
		s = s.WithData(Text(*s.Data))
	}
	return c.Next.Process(s)
}

// Finish implements chain.Sink.
func (c *TextCleaner) Finish() error {
	return c.Next.Finish()
}

// Text applies all cleaning rules to a payload.
func Text(s string) string {
	s = norm.NFC.String(s)
	if strings.ContainsRune(s, lineSeparator) {
		s = ReplaceLineSeparators(s)
	}
	return FixLatinInCyrillic(s)
}

// ReplaceLineSeparators turns U+2028 into a space, or drops it after a hyphen
// so that hyphenated words split across lines are joined back.
func ReplaceLineSeparators(s string) string {
	var b strings.Builder
	var prev rune
	for _, r := range s {
		if r == lineSeparator {
			if prev != '-' {
				b.WriteRune(' ')
			}
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

// latinToCyrillic maps Latin letters that look identical to Cyrillic ones.
var latinToCyrillic = map[rune]rune{
	'A': 'А', 'B': 'В', 'C': 'С', 'E': 'Е', 'H': 'Н', 'K': 'К', 'M': 'М',
	'O': 'О', 'P': 'Р', 'T': 'Т', 'X': 'Х', 'Y': 'У',
	'a': 'а', 'c': 'с', 'e': 'е', 'o': 'о', 'p': 'р', 'x': 'х', 'y': 'у',
}

// FixLatinInCyrillic replaces Latin look-alike letters inside words that
// also contain Cyrillic letters. Pure Latin words, including Roman
// numerals, are left alone.
func FixLatinInCyrillic(s string) string {
	runes := []rune(s)
	for start := 0; start < len(runes); {
		if !unicode.IsLetter(runes[start]) {
			start++
			continue
		}
		end := start
		hasCyrillic := false
		for end < len(runes) && unicode.IsLetter(runes[end]) {
			if unicode.Is(unicode.Cyrillic, runes[end]) {
				hasCyrillic = true
			}
			end++
		}
		if hasCyrillic {
			for i := start; i < end; i++ {
				if r, ok := latinToCyrillic[runes[i]]; ok {
					runes[i] = r
				}
			}
		}
		start = end
	}
	return string(runes)
}
