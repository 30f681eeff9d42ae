package pipeline

import (
	"context"

	"github.com/jackzampolin/hierarh/internal/assemble"
	"github.com/jackzampolin/hierarh/internal/chain"
	"github.com/jackzampolin/hierarh/internal/signal"
	"github.com/jackzampolin/hierarh/internal/store"
	"github.com/jackzampolin/hierarh/internal/types"
)

// articleCounter tallies articles on their way to the store.
type articleCounter struct {
	next       chain.Sink[*types.Article]
	total      int
	redirects  int
	schismatic int
	rows       int
	notes      int
}

func (c *articleCounter) Process(a *types.Article) error {
	c.total++
	if a.IsRedirect {
		c.redirects++
	}
	if a.IsSchismatic {
		c.schismatic++
	}
	c.rows += len(a.Rows)
	c.notes += len(a.Notes)
	return c.next.Process(a)
}

func (c *articleCounter) Finish() error {
	return c.next.Finish()
}

// ParseStage assembles the articles of the input book.
type ParseStage struct{}

func (ParseStage) Name() string           { return "parse" }
func (ParseStage) Dependencies() []string { return nil }
func (ParseStage) Description() string {
	return "Assemble see articles from the book markup"
}

// Run implements Stage.
func (s ParseStage) Run(ctx context.Context, opts *Options) (res *Result, err error) {
	src, closer, err := openInput(opts.Input)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	file, err := store.NewJSONFile[*types.Article](opts.ArticlesPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			file.Abort()
		}
	}()
	sink, err := outputSink[*types.Article](file, "Article", opts)
	if err != nil {
		return nil, err
	}

	counter := &articleCounter{next: store.NewStage(ctx, sink)}
	asm, err := assemble.New(assemble.Config{
		Next:          counter,
		NoTextHeaders: opts.NoTextHeaders,
		Logger:        opts.logger(),
	})
	if err != nil {
		return nil, err
	}

	var head chain.Sink[signal.Signal] = asm
	var dump *dumpFile
	if opts.SignalsDump {
		if dump, err = createDump(opts.SignalsPath); err != nil {
			return nil, err
		}
		defer func() {
			if err != nil {
				dump.Close()
			}
		}()
		head = &chain.Tee[signal.Signal]{Side: dump.Write, Next: asm}
	}

	stats, err := Signals(ctx, src, opts, head)
	if err != nil {
		return nil, err
	}
	if dump != nil {
		if err = dump.Close(); err != nil {
			return nil, err
		}
	}

	res = newResult(s.Name())
	res.Counts["events"] = stats.Events
	res.Counts["skipped"] = stats.Skipped
	res.Counts["unapplied_patches"] = len(stats.Unapplied)
	res.Counts["articles"] = counter.total
	res.Counts["redirects"] = counter.redirects
	res.Counts["schismatic"] = counter.schismatic
	res.Counts["rows"] = counter.rows
	res.Counts["notes"] = counter.notes
	res.Outputs = []string{opts.ArticlesPath}
	if dump != nil {
		res.Outputs = append(res.Outputs, opts.SignalsPath)
	}
	opts.logger().Info("articles assembled", "articles", counter.total, "output", opts.ArticlesPath)
	return res, nil
}

// outputSink wraps a record file with schema validation and retries as
// configured.
func outputSink[T any](file store.Sink[T], schemaName string, opts *Options) (store.Sink[T], error) {
	var sink store.Sink[T] = store.NewRetrying[T](file, store.RetryConfig{
		Attempts: opts.RetryAttempts,
		Logger:   opts.logger(),
	})
	if opts.Validate {
		v, err := store.NewValidating[T](sink, schemaName)
		if err != nil {
			return nil, err
		}
		sink = v
	}
	return sink, nil
}
