package chain

import (
	"errors"
	"testing"
)

func TestTee(t *testing.T) {
	var side []int
	out := &Collector[int]{}
	tee := &Tee[int]{
		Side: func(n int) error { side = append(side, n*10); return nil },
		Next: out,
	}
	for _, n := range []int{1, 2, 3} {
		if err := tee.Process(n); err != nil {
			t.Fatalf("Process(%d) failed: %v", n, err)
		}
	}
	if err := tee.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	if len(out.Items) != 3 || out.Items[2] != 3 {
		t.Errorf("next got %v", out.Items)
	}
	if len(side) != 3 || side[0] != 10 {
		t.Errorf("side got %v", side)
	}
	if !out.Finished {
		t.Error("Finish not propagated")
	}
}

func TestTee_SideError(t *testing.T) {
	boom := errors.New("boom")
	out := &Collector[string]{}
	tee := &Tee[string]{Side: func(string) error { return boom }, Next: out}

	if err := tee.Process("x"); !errors.Is(err, boom) {
		t.Errorf("expected side error, got %v", err)
	}
	if len(out.Items) != 0 {
		t.Errorf("item passed on despite side error: %v", out.Items)
	}
}

func TestFunc(t *testing.T) {
	var got []string
	var s Sink[string] = Func[string](func(v string) error {
		got = append(got, v)
		return nil
	})
	s.Process("a")
	s.Process("b")
	if err := s.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if len(got) != 2 || got[1] != "b" {
		t.Errorf("got %v", got)
	}
}
