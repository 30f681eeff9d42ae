package clean

import (
	"errors"
	"testing"

	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/signal"
)

func TestReplaceLineSeparators(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Бобрикович-Копоть-\u2028Анехожский", "Бобрикович-Копоть-Анехожский"},
		{"епископ\u2028Смоленский", "епископ Смоленский"},
		{"без разделителя", "без разделителя"},
	}
	for _, tt := range tests {
		if got := ReplaceLineSeparators(tt.in); got != tt.want {
			t.Errorf("ReplaceLineSeparators(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFixLatinInCyrillic(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"mixed word", "Mиxaил", "Михаил"},
		{"roman numeral kept", "Михаил II", "Михаил II"},
		{"latin word kept", "Acta Sanctorum", "Acta Sanctorum"},
		{"mixed with punctuation", "eп. Пaвел,", "еп. Павел,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixLatinInCyrillic(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextCleaner(t *testing.T) {
	out := &chain.Collector[signal.Signal]{}
	c := &TextCleaner{Next: out}

	c.Process(signal.New(signal.BodyText, "Cвят eйший", 1))
	c.Process(signal.Break(2))
	c.Finish()

	if len(out.Items) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(out.Items))
	}
	if got := out.Items[0].Text(); got != "Свят ейший" {
		t.Errorf("got %q", got)
	}
	if out.Items[1].Data != nil {
		t.Error("break payload must stay nil")
	}
	if !out.Finished {
		t.Error("Finish not propagated")
	}
}

func TestSkippedCatcher(t *testing.T) {
	t.Run("fails on skipped", func(t *testing.T) {
		c := &SkippedCatcher{Next: chain.Discard[signal.Signal]{}, FailOnSkip: true}
		err := c.Process(signal.New(signal.Skipped, "lost", 9))
		if !errors.Is(err, ErrSkippedText) {
			t.Errorf("expected ErrSkippedText, got %v", err)
		}
	})

	t.Run("passes through when tolerant", func(t *testing.T) {
		out := &chain.Collector[signal.Signal]{}
		c := &SkippedCatcher{Next: out}
		if err := c.Process(signal.New(signal.Skipped, "lost", 9)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Skipped() != 1 || len(out.Items) != 1 {
			t.Errorf("skipped=%d forwarded=%d", c.Skipped(), len(out.Items))
		}
	})
}
