package rowparse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanner walks a cell left to right. Tokens are regexps anchored at the
// current position; whitespace before a token is skipped.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.s) {
		r, size := utf8.DecodeRuneInString(sc.s[sc.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		sc.pos += size
	}
}

func (sc *scanner) rest() string {
	return sc.s[sc.pos:]
}

func (sc *scanner) done() bool {
	sc.skipSpace()
	return sc.pos == len(sc.s)
}

// token matches re at the current position. re must start with ^.
func (sc *scanner) token(re *regexp.Regexp) (string, bool) {
	sc.skipSpace()
	m := re.FindString(sc.rest())
	if m == "" {
		return "", false
	}
	sc.pos += len(m)
	return m, true
}

// word is like token but also requires the match to end at a word boundary.
func (sc *scanner) word(re *regexp.Regexp) (string, bool) {
	save := sc.pos
	m, ok := sc.token(re)
	if !ok {
		return "", false
	}
	if r, _ := utf8.DecodeRuneInString(sc.rest()); sc.pos < len(sc.s) && unicode.IsLetter(r) {
		sc.pos = save
		return "", false
	}
	return m, true
}

func (sc *scanner) literal(lit string) bool {
	sc.skipSpace()
	if !strings.HasPrefix(sc.rest(), lit) {
		return false
	}
	sc.pos += len(lit)
	return true
}

// parens skips a parenthesized group and returns its content.
func (sc *scanner) parens() (string, bool) {
	save := sc.pos
	if !sc.literal("(") {
		return "", false
	}
	end := strings.IndexByte(sc.rest(), ')')
	if end < 0 {
		sc.pos = save
		return "", false
	}
	inner := sc.rest()[:end]
	sc.pos += end + 1
	return inner, true
}
