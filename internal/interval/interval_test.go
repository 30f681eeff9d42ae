package interval

import (
	"errors"
	"testing"
	"time"

	"github.com/jackzampolin/hierarh/internal/rowparse"
)

func TestFromDating(t *testing.T) {
	tests := []struct {
		in       string
		from, to string
	}{
		{"31.10.1859", "1859-10-31", "1859-10-31"},
		{"02.1378", "1378-02-01", "1378-02-28"},
		{"02.1900", "1900-02-01", "1900-02-28"},
		{"02.2000", "2000-02-01", "2000-02-29"},
		{"754", "0754-01-01", "0754-12-31"},
		{"не позднее 01(14)09.1921", "1921-09-01", "1921-09-01"},
		{"лето 1931", "1931-06-01", "1931-08-31"},
		{"кон. 1927", "1927-09-01", "1927-12-31"},
		{"нач. 03.1700", "1700-03-01", "1700-03-11"},
		{"кон. 04.1700", "1700-04-20", "1700-04-30"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res := rowparse.ParseDating(tt.in)
			if !res.IsOk() {
				t.Fatalf("ParseDating failed: %v", res.Failure())
			}
			iv, err := FromDating(res.Value())
			if err != nil {
				t.Fatalf("FromDating failed: %v", err)
			}
			if iv.FromISO() != tt.from || iv.ToISO() != tt.to {
				t.Errorf("got %s, want %s..%s", iv, tt.from, tt.to)
			}
		})
	}
}

func TestFromDating_InvalidDay(t *testing.T) {
	for _, in := range []string{"31.02.1900", "29.02.1900", "31.04.1800"} {
		res := rowparse.ParseDating(in)
		if !res.IsOk() {
			t.Fatalf("ParseDating(%q) failed: %v", in, res.Failure())
		}
		if _, err := FromDating(res.Value()); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("FromDating(%q): expected ErrInvalidDate, got %v", in, err)
		}
	}

	if _, err := FromDating(rowparse.Dating{Text: "?"}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate without a year, got %v", err)
	}
}

func TestInterval_Contains(t *testing.T) {
	iv := Year(1900)
	if !iv.Contains(time.Date(1900, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("mid-year day must be inside")
	}
	if iv.Contains(time.Date(1901, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("next year must be outside")
	}
	if r := YearsRange(1900, 1902); r.String() != "1900-01-01..1902-12-31" {
		t.Errorf("YearsRange = %s", r)
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct{ year, month, want int }{
		{1900, 2, 28}, {2000, 2, 29}, {1921, 12, 31}, {1921, 4, 30},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
