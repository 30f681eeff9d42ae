// Package extract turns raw articles into structured sees by running the
// row grammars over every officeholder row.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/interval"
	"github.com/jackzampolin/hierarh/internal/report"
	"github.com/jackzampolin/hierarh/internal/rowparse"
	"github.com/jackzampolin/hierarh/internal/types"
)

// fallbackName splits a name cell the grammar rejected into the acting
// marker, the verbatim name and the repeat marker.
var fallbackName = regexp.MustCompile(`(?i)^\s*(\(?\s*в\s*/\s*у\s*\(?\s*\??\s*\)?\s*\)?)?(.*?)(,\s*(паки|в\s+\d+-й\s+раз))?\s*$`)

// Config configures a Parser.
type Config struct {
	Next   chain.Sink[*types.See]
	Report *report.Log // optional
	Logger *slog.Logger
}

// Parser is a chain stage converting articles to sees. It never drops a
// row: whatever the grammars reject is kept verbatim and reported.
type Parser struct {
	next   chain.Sink[*types.See]
	report *report.Log
	logger *slog.Logger
}

// New creates a parser.
func New(cfg Config) *Parser {
	p := &Parser{next: cfg.Next, report: cfg.Report, logger: cfg.Logger}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Process implements chain.Sink.
func (p *Parser) Process(art *types.Article) error {
	return p.next.Process(p.Parse(art))
}

// Finish implements chain.Sink.
func (p *Parser) Finish() error {
	return p.next.Finish()
}

// Parse converts one article.
func (p *Parser) Parse(art *types.Article) *types.See {
	see := &types.See{
		ID:           art.ID,
		Header:       art.Header,
		IsSchismatic: art.IsSchismatic,
		IsRedirect:   art.IsRedirect,
		Text:         art.Text,
		Notes:        art.Notes,
	}
	for _, row := range art.Rows {
		if row.IsSubheader() {
			see.Tenures = append(see.Tenures, types.TenureEntry{Subheader: row.Subheader})
			continue
		}
		see.Tenures = append(see.Tenures, types.TenureEntry{Tenure: p.tenure(art.Header, row)})
	}
	if p.report != nil {
		p.report.CountSee()
	}
	return see
}

func (p *Parser) tenure(header string, row types.Row) *types.Tenure {
	clean, notes := rowparse.CleanCell(row.Text)
	t := &types.Tenure{Row: clean, Line: row.Line, Notes: notes}
	if clean != row.Text {
		t.Raw = row.Text
	}
	if p.report != nil {
		p.report.CountRow()
	}

	div := rowparse.Divide(clean)
	if !div.IsOk() {
		t.Unparsed = true
		p.fail(header, row, div.Failure())
		return t
	}
	d := div.Value()
	t.Inexact = d.Inexact
	t.Begin = p.dating(header, row, d.Begin)
	t.End = p.dating(header, row, d.End)

	m := fallbackName.FindStringSubmatch(strings.TrimSuffix(d.Who, "."))
	t.Who = strings.TrimSpace(m[2])
	if t.Who == "" {
		t.Who = "?"
	}

	name := rowparse.ParseName(d.Who)
	if name.IsOk() {
		n := name.Value()
		t.Acting = n.Acting
		t.Repeat = n.RepeatCount()
		t.Name = person(n)
		return t
	}

	p.fail(header, row, name.Failure())
	if m[1] != "" {
		t.Acting = rowparse.ActingMarker(m[1])
	}
	t.Repeat = rowparse.ParseRepeat(m[4])
	return t
}

// dating parses a begin or end cell. An empty cell yields nil.
func (p *Parser) dating(header string, row types.Row, text string) *types.DatingField {
	if text == "" {
		return nil
	}
	field := &types.DatingField{Text: text}
	res := rowparse.ParseDating(text)
	if !res.IsOk() {
		p.fail(header, row, res.Failure())
		return field
	}

	d := res.Value()
	field.Parsed = true
	field.Year, field.Month, field.Day, field.Qualifier = d.Year, d.Month, d.Day, d.Qualifier
	iv, err := interval.FromDating(d)
	if err != nil {
		p.logger.Warn("dating outside the calendar", "header", header, "line", row.Line, "dating", text, "error", err)
		return field
	}
	field.From, field.To = iv.FromISO(), iv.ToISO()
	return field
}

func (p *Parser) fail(header string, row types.Row, f *rowparse.Failure) {
	p.logger.Debug("unparsed cell", "header", header, "line", row.Line, "kind", f.Kind, "text", f.Text)
	if p.report != nil {
		p.report.Add(header, row.Line, row.Text, f)
	}
}

func person(n rowparse.Name) *types.Person {
	return &types.Person{
		Given:          n.Given,
		GivenOrdinal:   n.GivenOrdinal,
		Surname:        n.Surname,
		SurnameOrdinal: n.SurnameOrdinal,
		Ecclesiastical: n.Ecclesiastical,
		Worldly:        n.Worldly,
		Remark:         n.Remark,
		Key:            n.Key(),
	}
}
