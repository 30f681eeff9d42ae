package rowparse

import "testing"

func TestParseDating(t *testing.T) {
	tests := []struct {
		in               string
		year, month, day int
		qualifier        string
	}{
		{"31.10.1859", 1859, 10, 31, ""},
		{"02.1378", 1378, 2, 0, ""},
		{"754", 754, 0, 0, ""},
		{"1380", 1380, 0, 0, ""},
		{"2.1930", 1930, 2, 0, ""},
		{"10(23)11.1921", 1921, 11, 10, ""},
		{"19.06(02.07)1930", 1930, 6, 19, ""},
		{"29.05(11.06)1921", 1921, 5, 29, ""},
		{"не позднее 01(14)09.1921", 1921, 9, 1, "не позднее"},
		{"не ранее 07.1922", 1922, 7, 0, "не ранее"},
		{"после 01(14)09.1921", 1921, 9, 1, "после"},
		{"кон. 1927", 1927, 0, 0, "кон."},
		{"лето 1931", 1931, 0, 0, "лето"},
		{"до 370", 370, 0, 0, "до"},
		{"1921 (ст. ст.)", 1921, 0, 0, ""},
		{" 12 . 03 . 1700 ", 1700, 3, 12, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res := ParseDating(tt.in)
			if !res.IsOk() {
				t.Fatalf("ParseDating(%q) failed: %v", tt.in, res.Failure())
			}
			d := res.Value()
			if d.Year != tt.year || d.Month != tt.month || d.Day != tt.day || d.Qualifier != tt.qualifier {
				t.Errorf("got %+v, want year=%d month=%d day=%d qualifier=%q",
					d, tt.year, tt.month, tt.day, tt.qualifier)
			}
			if d.Text != tt.in {
				t.Errorf("Text = %q, want the original input", d.Text)
			}
		})
	}
}

func TestParseDating_Failures(t *testing.T) {
	for _, in := range []string{
		"23.04.? г.",
		"ок. 348 – 349",
		"(1570 ?) 1571",
		"?",
		"",
		"1921 г.",
		"кон.",
	} {
		t.Run(in, func(t *testing.T) {
			res := ParseDating(in)
			if res.IsOk() {
				t.Fatalf("ParseDating(%q) = %+v, want failure", in, res.Value())
			}
			f := res.Failure()
			if f.Kind != DatingFailure || f.Text != in {
				t.Errorf("unexpected failure %+v", f)
			}
		})
	}
}

func TestParseDating_NoCalendarCheck(t *testing.T) {
	res := ParseDating("31.02.1900")
	if !res.IsOk() {
		t.Fatalf("day validity is not a parse concern: %v", res.Failure())
	}
	if d := res.Value(); d.Day != 31 || d.Month != 2 {
		t.Errorf("got %+v", d)
	}
}
