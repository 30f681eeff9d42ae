package rowparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	qualifierToken = regexp.MustCompile(`^(не\s+)?[а-я]+\.?`)
	dayToken       = regexp.MustCompile(`^(30|31|[12]\d|0?[1-9])`)
	monthToken     = regexp.MustCompile(`^(1[012]|0?[1-9])`)
	yearToken      = regexp.MustCompile(`^(2[01]\d\d|1\d{3}|\d{2,3})`)
)

// Dating is a parsed historical date. Month and Day are 0 when absent; a
// day is only ever set together with a month and a year.
type Dating struct {
	Text      string
	Year      int
	Month     int
	Day       int
	Qualifier string // "около", "не ранее", "лето", ...
}

// datingForms are tried in order; the first one that consumes the whole
// text wins.
var datingForms = []func(*scanner, *Dating) bool{
	dayMonthYear,
	monthYear,
	yearOnly,
}

// ParseDating parses a dating such as "31.10.1859", "не позднее
// 01(14)09.1921" or "кон. 1927". Alternate calendar values in parentheses
// are dropped, only the primary value is kept. Day-of-month validity is not
// checked here.
func ParseDating(text string) Outcome[Dating] {
	sc := &scanner{s: text}
	d := Dating{Text: text}
	if q, ok := sc.token(qualifierToken); ok {
		d.Qualifier = strings.Join(strings.Fields(q), " ")
	}

	start := sc.pos
	for _, form := range datingForms {
		sc.pos = start
		d.Year, d.Month, d.Day = 0, 0, 0
		if form(sc, &d) && trailer(sc) {
			return Ok(d)
		}
	}

	sc.skipSpace()
	return Failed[Dating](text, DatingFailure, fmt.Sprintf("unexpected text at %q", sc.s[start:]))
}

func dayMonthYear(sc *scanner, d *Dating) bool {
	return number(sc, dayToken, &d.Day) && separator(sc) &&
		number(sc, monthToken, &d.Month) && separator(sc) &&
		number(sc, yearToken, &d.Year)
}

func monthYear(sc *scanner, d *Dating) bool {
	return number(sc, monthToken, &d.Month) && separator(sc) &&
		number(sc, yearToken, &d.Year)
}

func yearOnly(sc *scanner, d *Dating) bool {
	return number(sc, yearToken, &d.Year)
}

func number(sc *scanner, re *regexp.Regexp, dst *int) bool {
	m, ok := sc.token(re)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return false
	}
	*dst = n
	return true
}

// separator is "." or a parenthesized alternate value with an optional ".".
func separator(sc *scanner) bool {
	if sc.literal(".") {
		return true
	}
	if _, ok := sc.parens(); ok {
		sc.literal(".")
		return true
	}
	return false
}

// trailer accepts an optional parenthesized remark and the end of text.
func trailer(sc *scanner) bool {
	sc.parens()
	return sc.done()
}
