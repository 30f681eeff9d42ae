package rowparse

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackzampolin/hierarh/internal/signal"
)

// SurnameSuppressesNamesakeOrdinal decides how Key treats the Roman numeral
// after a given name: when a surname is known the numeral is taken as a
// namesake counter, not part of the person's identity.
const SurnameSuppressesNamesakeOrdinal = true

// UnknownPerson stands for an officeholder whose name is not known.
const UnknownPerson = "N"

var (
	actingToken         = regexp.MustCompile(`^(?i)\(?\s*в\s*/\s*у\s*\(?\s*\??\s*\)?\s*\)?`)
	ecclesiasticalToken = regexp.MustCompile(`^(свщисп|сщисп|свщмч|сщмч|равноап|прмч|прав|прп|свт|блж|исп|мч|св)\.`)
	givenToken          = regexp.MustCompile(`^(N|[А-ЯЁ][а-яё]+)`)
	romanToken          = regexp.MustCompile(`^[IVX]+`)
	worldlyToken        = regexp.MustCompile(`^(кн\.|князь|гр\.|граф|бар\.|барон)`)
	surnameWordToken    = regexp.MustCompile(`^[А-ЯЁ][а-яё]+(-[А-ЯЁ]?[а-яё]+)*`)
	repeatToken         = regexp.MustCompile(`^,\s*(паки|в\s+(\d+)-й\s+раз)`)
	repeatCount         = regexp.MustCompile(`\d+`)
)

// Name is a parsed officeholder name.
type Name struct {
	Text           string
	Given          string
	GivenOrdinal   string
	Surname        string
	SurnameOrdinal string
	Ecclesiastical string // "свт.", "сщмч.", ...
	Worldly        string // "кн.", "граф", ...
	Remark         string // parenthetical remark, without the parentheses
	Acting         string // "в/у", or "в/у?" when uncertain
	Repeat         string // "паки" or "в N-й раз"
}

// IsUnknown reports whether the officeholder is the unknown person N.
func (n Name) IsUnknown() bool {
	return n.Given == UnknownPerson
}

// RepeatCount returns which tenure of the same see this is: 2 for "паки",
// N for "в N-й раз", 0 when unmarked.
func (n Name) RepeatCount() int {
	return ParseRepeat(n.Repeat)
}

// Key identifies the person across sees.
func (n Name) Key() string {
	parts := []string{n.Given}
	if n.GivenOrdinal != "" && !(SurnameSuppressesNamesakeOrdinal && n.Surname != "") {
		parts = append(parts, n.GivenOrdinal)
	}
	if n.Surname != "" {
		parts = append(parts, n.Surname)
	}
	if n.SurnameOrdinal != "" {
		parts = append(parts, n.SurnameOrdinal)
	}
	return strings.Join(parts, " ")
}

// ParseRepeat converts a repeat marker to a tenure count.
func ParseRepeat(marker string) int {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return 0
	}
	if strings.EqualFold(marker, "паки") {
		return 2
	}
	n, err := strconv.Atoi(repeatCount.FindString(marker))
	if err != nil {
		return 0
	}
	return n
}

// ActingMarker normalizes a matched acting prefix.
func ActingMarker(raw string) string {
	if strings.Contains(raw, "?") {
		return "в/у?"
	}
	return "в/у"
}

// CleanCell removes note spans and break tokens from a cell and unescapes
// it, returning the referenced note numbers.
func CleanCell(cell string) (string, []int) {
	notes, text := signal.NoteRefs(cell)
	text = html.UnescapeString(signal.StripBreaks(text))
	return strings.Join(strings.Fields(text), " "), notes
}

// ParseName parses a name cell such as "в/у Михаил II Бирюков, паки".
// Tokens are recognized in a fixed order; any text left over fails the
// whole parse.
func ParseName(text string) Outcome[Name] {
	clean, _ := CleanCell(text)
	sc := &scanner{s: clean}
	n := Name{Text: text}

	if m, ok := sc.token(actingToken); ok {
		n.Acting = ActingMarker(m)
	}
	if m, ok := sc.token(ecclesiasticalToken); ok {
		n.Ecclesiastical = m
	}

	given, ok := sc.word(givenToken)
	if !ok {
		return Failed[Name](text, NameFailure, "no given name at "+quoteRest(sc))
	}
	n.Given = given

	n.GivenOrdinal = ordinal(sc)
	if m, ok := sc.word(worldlyToken); ok {
		n.Worldly = m
	}

	if first, ok := sc.word(surnameWordToken); ok {
		n.Surname = first
		save := sc.pos
		if second, ok := sc.word(surnameWordToken); ok {
			n.Surname += " " + second
		} else {
			sc.pos = save
		}
		n.SurnameOrdinal = ordinal(sc)
	}

	if remark, ok := sc.parens(); ok {
		n.Remark = strings.TrimSpace(remark)
	}
	sc.skipSpace()
	if m := repeatToken.FindStringSubmatch(sc.rest()); m != nil {
		sc.pos += len(m[0])
		n.Repeat = strings.Join(strings.Fields(m[1]), " ")
	}
	sc.literal(".")

	if !sc.done() {
		return Failed[Name](text, NameFailure, "unexpected text at "+quoteRest(sc))
	}
	return Ok(n)
}

// ordinal consumes a Roman numeral that ends at a word boundary.
func ordinal(sc *scanner) string {
	save := sc.pos
	m, ok := sc.word(romanToken)
	if !ok {
		return ""
	}
	if _, err := FromRoman(m); err != nil {
		sc.pos = save
		return ""
	}
	return m
}

func quoteRest(sc *scanner) string {
	sc.skipSpace()
	return fmt.Sprintf("%q", sc.rest())
}
