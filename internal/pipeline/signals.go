package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/classify"
	"github.com/jackzampolin/hierarh/internal/clean"
	"github.com/jackzampolin/hierarh/internal/markup"
	"github.com/jackzampolin/hierarh/internal/patch"
	"github.com/jackzampolin/hierarh/internal/signal"
)

// checkEvery is how many markup events are pumped between context checks.
const checkEvery = 1024

// SignalStats summarizes the front of the pipeline.
type SignalStats struct {
	Events    int
	Skipped   int
	Unapplied []int // lines of patches that matched nothing
}

// Signals pumps the markup events of src through the classifier, the
// skipped-text catcher, the cleaner and the patcher into next.
func Signals(ctx context.Context, src markup.Source, opts *Options, next chain.Sink[signal.Signal]) (*SignalStats, error) {
	logger := opts.logger()

	patcher := patch.NewPatcher(opts.Patches, next)
	cleaner := &clean.TextCleaner{Next: patcher}
	catcher := &clean.SkippedCatcher{Next: cleaner, FailOnSkip: opts.FailOnSkipped, Logger: logger}
	classifier := classify.New(classify.Config{Styles: opts.Styles, Next: catcher, Logger: logger})

	stats := &SignalStats{}
	for {
		if stats.Events%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.Events++
		if err := classifier.Process(ev); err != nil {
			return stats, err
		}
	}
	if err := classifier.Finish(); err != nil {
		return stats, err
	}

	stats.Skipped = catcher.Skipped()
	stats.Unapplied = patcher.Unapplied()
	sort.Ints(stats.Unapplied)
	for _, line := range stats.Unapplied {
		logger.Warn("patch not applied", "line", line, "expected", opts.Patches[line].Expected)
	}
	return stats, nil
}

// openInput opens the book XML as a markup source.
func openInput(path string) (*markup.XMLSource, io.Closer, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("no input file")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return markup.NewXMLSource(f), f, nil
}

// dumpFile writes signals in dump format to a file.
type dumpFile struct {
	f *os.File
	*signal.Writer
}

func createDump(path string) (*dumpFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create signal dump: %w", err)
	}
	return &dumpFile{f: f, Writer: signal.NewWriter(f)}, nil
}

func (d *dumpFile) Close() error {
	if err := d.Flush(); err != nil {
		d.f.Close()
		return err
	}
	return d.f.Close()
}

// SignalsStage writes the signal dump of the input with per-kind counts.
type SignalsStage struct{}

func (SignalsStage) Name() string           { return "signals" }
func (SignalsStage) Dependencies() []string { return nil }
func (SignalsStage) Description() string {
	return "Classify the book markup and write the signal dump"
}

// Run implements Stage.
func (s SignalsStage) Run(ctx context.Context, opts *Options) (*Result, error) {
	src, closer, err := openInput(opts.Input)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	dump, err := createDump(opts.SignalsPath)
	if err != nil {
		return nil, err
	}

	stats, err := Signals(ctx, src, opts, chain.Func[signal.Signal](dump.Write))
	if err != nil {
		dump.Close()
		return nil, err
	}
	if err := dump.Close(); err != nil {
		return nil, err
	}

	res := newResult(s.Name())
	for kind, n := range dump.Counts() {
		res.Counts[kind] = n
	}
	res.Counts["events"] = stats.Events
	res.Counts["unapplied_patches"] = len(stats.Unapplied)
	res.Outputs = []string{opts.SignalsPath}
	return res, nil
}
