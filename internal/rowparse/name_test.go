package rowparse

import "testing"

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{
			in:   "Андрей Сухенко",
			want: Name{Given: "Андрей", Surname: "Сухенко"},
		},
		{
			in:   "в/у Михаил II Бирюков, паки",
			want: Name{Acting: "в/у", Given: "Михаил", GivenOrdinal: "II", Surname: "Бирюков", Repeat: "паки"},
		},
		{
			in:   "(в/у?) Иоанн",
			want: Name{Acting: "в/у?", Given: "Иоанн"},
		},
		{
			in:   "сщмч. Петр Полянский",
			want: Name{Ecclesiastical: "сщмч.", Given: "Петр", Surname: "Полянский"},
		},
		{
			in:   "Дмитрий кн. Шаховской",
			want: Name{Given: "Дмитрий", Worldly: "кн.", Surname: "Шаховской"},
		},
		{
			in:   "Леонтий Бобрикович-Копоть-Анехожский",
			want: Name{Given: "Леонтий", Surname: "Бобрикович-Копоть-Анехожский"},
		},
		{
			in:   "Иоанн Максимович (Шанхайский), в 3-й раз.",
			want: Name{Given: "Иоанн", Surname: "Максимович", Remark: "Шанхайский", Repeat: "в 3-й раз"},
		},
		{
			in:   "Феодосий Лазарев I",
			want: Name{Given: "Феодосий", Surname: "Лазарев", SurnameOrdinal: "I"},
		},
		{
			in:   `Петр Данилов<span class="note" data-note="12">12</span>`,
			want: Name{Given: "Петр", Surname: "Данилов"},
		},
		{
			in:   "N",
			want: Name{Given: "N"},
		},
		{
			in:   "Иона III",
			want: Name{Given: "Иона", GivenOrdinal: "III"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res := ParseName(tt.in)
			if !res.IsOk() {
				t.Fatalf("ParseName(%q) failed: %v", tt.in, res.Failure())
			}
			got := res.Value()
			tt.want.Text = tt.in
			if got != tt.want {
				t.Errorf("got  %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestParseName_Failures(t *testing.T) {
	for _, in := range []string{
		"Андрей Сухенко 1921 г.",
		"неизвестен",
		"",
		"Михаил, епископ Смоленский",
		"Иоанн IIII",
	} {
		t.Run(in, func(t *testing.T) {
			res := ParseName(in)
			if res.IsOk() {
				t.Fatalf("ParseName(%q) = %+v, want failure", in, res.Value())
			}
			if f := res.Failure(); f.Kind != NameFailure || f.Text != in {
				t.Errorf("unexpected failure %+v", f)
			}
		})
	}
}

func TestName_Key(t *testing.T) {
	tests := []struct {
		name Name
		want string
	}{
		{Name{Given: "Михаил", GivenOrdinal: "II", Surname: "Бирюков"}, "Михаил Бирюков"},
		{Name{Given: "Иона", GivenOrdinal: "III"}, "Иона III"},
		{Name{Given: "Феодосий", Surname: "Лазарев", SurnameOrdinal: "I"}, "Феодосий Лазарев I"},
	}
	for _, tt := range tests {
		if got := tt.name.Key(); got != tt.want {
			t.Errorf("Key() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseRepeat(t *testing.T) {
	tests := map[string]int{"": 0, "паки": 2, "в 3-й раз": 3, "в 10-й раз": 10}
	for in, want := range tests {
		if got := ParseRepeat(in); got != want {
			t.Errorf("ParseRepeat(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestRoman(t *testing.T) {
	for n := 1; n <= maxRoman; n++ {
		s, err := ToRoman(n)
		if err != nil {
			t.Fatalf("ToRoman(%d) failed: %v", n, err)
		}
		back, err := FromRoman(s)
		if err != nil || back != n {
			t.Errorf("FromRoman(%q) = %d, %v; want %d", s, back, err, n)
		}
	}
	for _, bad := range []string{"", "IIII", "VX", "abc", "XL"} {
		if _, err := FromRoman(bad); err == nil {
			t.Errorf("FromRoman(%q) should fail", bad)
		}
	}
	if _, err := ToRoman(0); err == nil {
		t.Error("ToRoman(0) should fail")
	}
}
