package assemble

import (
	"errors"
	"strings"
	"testing"

	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/fsm"
	"github.com/jackzampolin/hierarh/internal/signal"
	"github.com/jackzampolin/hierarh/internal/types"
)

// feed numbers signals by position and pushes them through a new assembler.
func feed(t *testing.T, sigs []signal.Signal, finish bool) ([]*types.Article, error) {
	t.Helper()

	out := &chain.Collector[*types.Article]{}
	a, err := New(Config{Next: out})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i, s := range sigs {
		s.Line = i + 1
		if err := a.Process(s); err != nil {
			return out.Items, err
		}
	}
	if finish {
		if err := a.Finish(); err != nil {
			return out.Items, err
		}
		if !out.Finished {
			t.Error("Finish not propagated")
		}
	}
	return out.Items, nil
}

func sig(kind signal.Kind, data string) signal.Signal {
	return signal.New(kind, data, 0)
}

func br() signal.Signal {
	return signal.Break(0)
}

func TestStates_Valid(t *testing.T) {
	if _, err := fsm.New[signal.Signal](states(), StateExpectHeader); err != nil {
		t.Fatalf("state table is invalid: %v", err)
	}
}

func TestAssembler_Article(t *testing.T) {
	arts, err := feed(t, []signal.Signal{
		sig(signal.Header, "АРХАНГЕЛЬСКАЯ"),
		br(),
		sig(signal.BodyText, "Учреждена в 1682 г."),
		sig(signal.FootnoteMarker, "1"),
		br(),
		sig(signal.BodyText, "Вторая строка & конец"),
		sig(signal.TableSubheader, "Архиепископы"),
		br(),
		sig(signal.TableRow, "1682 – 1702 – Афанасий"),
		sig(signal.FootnoteMarker, "2"),
		br(),
		sig(signal.Properties, "12"),
		sig(signal.TableRow, "1702 – 1708 – Рафаил"),
		sig(signal.FootnoteStart, "1"),
		sig(signal.FootnoteBody, "Первая сноска."),
		sig(signal.FootnoteStart, "2"),
		sig(signal.FootnoteBody, "Вторая"),
		br(),
		sig(signal.FootnoteBody, "сноска."),
		br(),
	}, true)
	if err != nil {
		t.Fatalf("assembly failed: %v", err)
	}
	if len(arts) != 1 {
		t.Fatalf("expected 1 article, got %d", len(arts))
	}

	a := arts[0]
	if a.Header != "АРХАНГЕЛЬСКАЯ" || a.IsSchismatic || a.IsRedirect {
		t.Errorf("unexpected header fields: %+v", a)
	}
	if a.StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", a.StartLine)
	}
	if a.ID != types.ArticleID("АРХАНГЕЛЬСКАЯ", 1) {
		t.Errorf("unexpected ID %q", a.ID)
	}
	wantText := `Учреждена в 1682 г.<span class="note" data-note="1">1</span><br>` + "\n" + `Вторая строка &amp; конец`
	if a.Text != wantText {
		t.Errorf("Text = %q, want %q", a.Text, wantText)
	}

	wantRows := []types.Row{
		{Subheader: "Архиепископы"},
		{Text: `1682 – 1702 – Афанасий<span class="note" data-note="2">2</span>`, Line: 9},
		{Text: "1702 – 1708 – Рафаил", Line: 13},
	}
	if len(a.Rows) != len(wantRows) {
		t.Fatalf("rows = %+v", a.Rows)
	}
	for i, want := range wantRows {
		if a.Rows[i] != want {
			t.Errorf("row %d = %+v, want %+v", i, a.Rows[i], want)
		}
	}

	wantNotes := []types.Note{{Num: 1, Text: "Первая сноска."}, {Num: 2, Text: "Вторая<br>\nсноска."}}
	if len(a.Notes) != 2 || a.Notes[0] != wantNotes[0] || a.Notes[1] != wantNotes[1] {
		t.Errorf("notes = %+v, want %+v", a.Notes, wantNotes)
	}
}

func TestAssembler_TwoArticles(t *testing.T) {
	arts, err := feed(t, []signal.Signal{
		sig(signal.Header, "АРХАНГЕЛЬСКАЯ"),
		sig(signal.BodyText, "Текст."),
		sig(signal.TableRow, "1682 – 1702 – Афанасий"),
		sig(signal.TableRow, "1702 – 1708 – Рафаил"),
		sig(signal.Header, "АСТРАХАНСКАЯ"),
		sig(signal.BodyText, "Учреждена."),
	}, false)
	if err != nil {
		t.Fatalf("assembly failed: %v", err)
	}
	if len(arts) != 1 || arts[0].Header != "АРХАНГЕЛЬСКАЯ" {
		t.Fatalf("expected first article emitted at the second header, got %+v", arts)
	}
	if len(arts[0].Rows) != 1 || arts[0].Rows[0].Text != "1682 – 1702 – Афанасий1702 – 1708 – Рафаил" {
		t.Errorf("consecutive row texts without a break form one row: %+v", arts[0].Rows)
	}

	arts, err = feed(t, []signal.Signal{
		sig(signal.Header, "АРХАНГЕЛЬСКАЯ"),
		sig(signal.BodyText, "Текст."),
		sig(signal.TableRow, "1682 – 1702 – Афанасий"),
		br(),
		sig(signal.TableRow, "1702 – 1708 – Рафаил"),
		sig(signal.Header, "АСТРАХАНСКАЯ"),
		sig(signal.BodyText, "Учреждена."),
		sig(signal.FootnoteStart, "1"),
		sig(signal.FootnoteBody, "Сноска."),
	}, true)
	if err != nil {
		t.Fatalf("assembly failed: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(arts))
	}
	if len(arts[0].Rows) != 2 {
		t.Errorf("first article rows = %+v", arts[0].Rows)
	}
	if arts[1].Header != "АСТРАХАНСКАЯ" || arts[1].Text != "Учреждена." || len(arts[1].Notes) != 1 {
		t.Errorf("unexpected second article %+v", arts[1])
	}
}

func TestAssembler_Schismatic(t *testing.T) {
	arts, err := feed(t, []signal.Signal{
		sig(signal.HeaderAlt, "ХАРЬКОВСКАЯ, обн."),
		br(),
		sig(signal.BodyTextAlt, "Образована в 1990 г."),
		sig(signal.TableRowAlt, "1990 – 1995 – Иоанн"),
		sig(signal.FootnoteMarker, "1"),
		br(),
		sig(signal.FootnoteStart, "1"),
		sig(signal.FootnoteBody, "Сноска обычным стилем."),
	}, true)
	if err != nil {
		t.Fatalf("assembly failed: %v", err)
	}
	if len(arts) != 1 || !arts[0].IsSchismatic {
		t.Fatalf("expected one schismatic article, got %+v", arts)
	}
	if len(arts[0].Notes) != 1 || arts[0].Notes[0].Text != "Сноска обычным стилем." {
		t.Errorf("notes = %+v", arts[0].Notes)
	}
}

func TestAssembler_CategoryMismatch(t *testing.T) {
	tests := []struct {
		name string
		kind signal.Kind
		text string
		next signal.Kind
	}{
		{"schismatic text in canonical style", signal.Header, "ХАРЬКОВСКАЯ, обн.", signal.BodyText},
		{"canonical text in schismatic style", signal.HeaderAlt, "ХАРЬКОВСКАЯ", signal.BodyTextAlt},
		{"papts", signal.Header, "КИЕВСКАЯ (ПАПЦ)", signal.BodyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := feed(t, []signal.Signal{sig(tt.kind, tt.text), sig(tt.next, "Текст.")}, false)
			if !errors.Is(err, ErrCategoryMismatch) {
				t.Errorf("expected ErrCategoryMismatch, got %v", err)
			}
			var ae *AssemblyError
			if !errors.As(err, &ae) || ae.Line != 2 {
				t.Errorf("expected AssemblyError at line 2, got %v", err)
			}
		})
	}
}

func TestAssembler_Redirect(t *testing.T) {
	arts, err := feed(t, []signal.Signal{
		sig(signal.Header, "АЛАТЫРСКАЯ см. ЧЕБОКСАРСКАЯ"),
		br(),
		br(),
		sig(signal.Header, "АРХАНГЕЛЬСКАЯ"),
		sig(signal.BodyText, "Текст."),
		sig(signal.FootnoteStart, "1"),
		sig(signal.FootnoteBody, "Сноска."),
	}, true)
	if err != nil {
		t.Fatalf("assembly failed: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(arts))
	}
	r := arts[0]
	if !r.IsRedirect || r.Header != "АЛАТЫРСКАЯ см. ЧЕБОКСАРСКАЯ" || r.Text != "" || len(r.Rows) != 0 {
		t.Errorf("unexpected redirect %+v", r)
	}
	if arts[1].IsRedirect {
		t.Error("second article is not a redirect")
	}
}

func TestAssembler_RedirectNeedsLineBreak(t *testing.T) {
	arts, err := feed(t, []signal.Signal{
		sig(signal.Header, "АЛАТЫРСКАЯ см. ЧЕБОКСАРСКАЯ"),
		sig(signal.BodyText, "Учреждена в 1918 г."),
		sig(signal.FootnoteStart, "1"),
		sig(signal.FootnoteBody, "Сноска."),
	}, true)
	if err != nil {
		t.Fatalf("assembly failed: %v", err)
	}
	if len(arts) != 1 {
		t.Fatalf("expected 1 article, got %d", len(arts))
	}
	if arts[0].IsRedirect || arts[0].Text == "" {
		t.Errorf("header followed by text must not be a redirect: %+v", arts[0])
	}
}

func TestAssembler_NoTextHeaders(t *testing.T) {
	input := func(header string) []signal.Signal {
		return []signal.Signal{
			sig(signal.HeaderAlt, header),
			br(),
			sig(signal.TableRowAlt, "1919 – 1921 – Иоанн"),
			br(),
			sig(signal.FootnoteStart, "1"),
			sig(signal.FootnoteBodyAlt, "Сноска."),
		}
	}

	arts, err := feed(t, input("ХАРЬКОВСКАЯ, григ."), true)
	if err != nil {
		t.Fatalf("assembly failed: %v", err)
	}
	if len(arts) != 1 || arts[0].Text != "" || len(arts[0].Rows) != 1 {
		t.Errorf("unexpected articles %+v", arts)
	}

	_, err = feed(t, input("КИЕВСКАЯ, григ."), true)
	var wrong *fsm.WrongSignalError
	if !errors.As(err, &wrong) || wrong.State != StateExpectTextAlt {
		t.Errorf("expected wrong signal in %s, got %v", StateExpectTextAlt, err)
	}
}

func TestAssembler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		sigs   []signal.Signal
		finish bool
		want   error
	}{
		{
			name:   "finish outside footnote",
			sigs:   []signal.Signal{sig(signal.Header, "АРХАНГЕЛЬСКАЯ"), sig(signal.BodyText, "Текст.")},
			finish: true,
			want:   ErrFinishState,
		},
		{
			name: "text before header",
			sigs: []signal.Signal{sig(signal.BodyText, "Текст.")},
			want: fsm.ErrWrongSignal,
		},
		{
			name: "unpatched unknown text",
			sigs: []signal.Signal{sig(signal.Header, "АРХАНГЕЛЬСКАЯ"), sig(signal.BodyTextUnknown, "Текст.")},
			want: fsm.ErrWrongSignal,
		},
		{
			name: "footnote number is not a number",
			sigs: []signal.Signal{
				sig(signal.Header, "АРХАНГЕЛЬСКАЯ"), sig(signal.BodyText, "Текст."),
				sig(signal.FootnoteStart, "*"), sig(signal.FootnoteBody, "Сноска."),
			},
			want: ErrFootnoteSequence,
		},
		{
			name: "header after footnote number",
			sigs: []signal.Signal{
				sig(signal.Header, "АРХАНГЕЛЬСКАЯ"), sig(signal.BodyText, "Текст."),
				sig(signal.FootnoteStart, "1"), sig(signal.Header, "АСТРАХАНСКАЯ"),
			},
			want: fsm.ErrWrongSignal,
		},
		{
			name: "two footnote numbers in a row",
			sigs: []signal.Signal{
				sig(signal.Header, "АРХАНГЕЛЬСКАЯ"), sig(signal.BodyText, "Текст."),
				sig(signal.FootnoteStart, "1"), sig(signal.FootnoteStart, "2"),
			},
			want: fsm.ErrWrongSignal,
		},
		{
			name: "empty footnote",
			sigs: []signal.Signal{
				sig(signal.Header, "АРХАНГЕЛЬСКАЯ"), sig(signal.BodyText, "Текст."),
				sig(signal.FootnoteStart, "1"), sig(signal.FootnoteBody, "  "),
				sig(signal.FootnoteStart, "2"),
			},
			want: ErrEmptyFootnote,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := feed(t, tt.sigs, tt.finish)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAssembler_ErrorContext(t *testing.T) {
	_, err := feed(t, []signal.Signal{
		sig(signal.Header, "АРХАНГЕЛЬСКАЯ"),
		sig(signal.BodyText, "Текст."),
		sig(signal.TableSubheader, "Архиепископы"),
		sig(signal.Header, "АСТРАХАНСКАЯ"),
	}, false)

	var ae *AssemblyError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AssemblyError, got %v", err)
	}
	if ae.Line != 4 || ae.State != StateTableSubheader || ae.Kind != signal.Header {
		t.Errorf("unexpected error position %+v", ae)
	}
	var ws *fsm.WrongSignalError
	if !errors.As(err, &ws) || ws.Context == "" {
		t.Fatalf("expected buffered signals in the wrong signal error, got %v", err)
	}
	if ae.Context != "" {
		t.Errorf("buffer dumped twice: %q", ae.Context)
	}
	if n := strings.Count(err.Error(), "Архиепископы"); n != 1 {
		t.Errorf("buffered signal appears %d times in %q", n, err.Error())
	}
}

func TestAssembler_ErrorContextFootnote(t *testing.T) {
	_, err := feed(t, []signal.Signal{
		sig(signal.Header, "АРХАНГЕЛЬСКАЯ"),
		sig(signal.BodyText, "Текст."),
		sig(signal.FootnoteStart, "1"),
		sig(signal.FootnoteBody, "Сноска."),
		sig(signal.FootnoteStart, "2"),
		sig(signal.FootnoteBody, " "),
		sig(signal.FootnoteStart, "3"),
	}, false)

	var ae *AssemblyError
	if !errors.As(err, &ae) || !errors.Is(err, ErrEmptyFootnote) {
		t.Fatalf("expected AssemblyError for an empty footnote, got %v", err)
	}
	if ae.Context == "" {
		t.Error("expected buffered signals in the error context")
	}
}
