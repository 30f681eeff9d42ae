package types

import "testing"

func TestArticleID(t *testing.T) {
	a := ArticleID("АРХАНГЕЛЬСКАЯ", 12)
	if a != ArticleID("АРХАНГЕЛЬСКАЯ", 12) {
		t.Error("ArticleID is not deterministic")
	}
	if a == ArticleID("АРХАНГЕЛЬСКАЯ", 13) {
		t.Error("different start lines must give different IDs")
	}
	if len(a) != 36 {
		t.Errorf("unexpected ID %q", a)
	}
}

func TestTenure_Title(t *testing.T) {
	tests := []struct {
		name   string
		tenure Tenure
		want   string
	}{
		{"plain", Tenure{Who: "Андрей Сухенко"}, "Андрей Сухенко"},
		{"acting", Tenure{Who: "Михаил", Acting: "в/у"}, "в/у Михаил"},
		{"again", Tenure{Who: "Михаил", Repeat: 2}, "Михаил, паки"},
		{"third time", Tenure{Who: "Михаил", Acting: "в/у?", Repeat: 3}, "в/у? Михаил, в 3-й раз"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tenure.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastRowAndTenure(t *testing.T) {
	a := Article{Rows: []Row{{Text: "первый"}, {Subheader: "Митрополиты"}}}
	if got := a.LastRowText(); got != "первый" {
		t.Errorf("LastRowText() = %q", got)
	}

	s := See{Tenures: []TenureEntry{{Tenure: &Tenure{Notes: []int{3, 67}}}, {Subheader: "x"}}}
	if got := s.LastTenure().LastNote(); got != 67 {
		t.Errorf("LastNote() = %d", got)
	}
	if (&See{}).LastTenure() != nil {
		t.Error("expected nil tenure for empty see")
	}
}
