package pipeline

import (
	"context"
	"fmt"

	"github.com/jackzampolin/hierarh/internal/extract"
	"github.com/jackzampolin/hierarh/internal/fixup"
	"github.com/jackzampolin/hierarh/internal/report"
	"github.com/jackzampolin/hierarh/internal/store"
	"github.com/jackzampolin/hierarh/internal/types"
)

// ExtractStage turns assembled articles into structured sees and writes the
// unparsed row report.
type ExtractStage struct{}

func (ExtractStage) Name() string           { return "extract" }
func (ExtractStage) Dependencies() []string { return []string{"parse"} }
func (ExtractStage) Description() string {
	return "Split officeholder rows into dates and names"
}

// Run implements Stage.
func (s ExtractStage) Run(ctx context.Context, opts *Options) (res *Result, err error) {
	file, err := store.NewJSONFile[*types.See](opts.SeesPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			file.Abort()
		}
	}()
	sink, err := outputSink[*types.See](file, "See", opts)
	if err != nil {
		return nil, err
	}

	log := report.New(opts.ArticlesPath)
	splitter, err := fixup.NewSplitter(opts.NoteSplits, store.NewStage(ctx, sink), opts.logger())
	if err != nil {
		return nil, err
	}
	parser := extract.New(extract.Config{Next: splitter, Report: log, Logger: opts.logger()})

	articles := 0
	err = store.ReadJSONFile(opts.ArticlesPath, func(a *types.Article) error {
		articles++
		if err := ctx.Err(); err != nil {
			return err
		}
		return parser.Process(a)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", opts.ArticlesPath, err)
	}
	if err = parser.Finish(); err != nil {
		return nil, err
	}

	if err = log.WriteFile(opts.ReportPath, opts.ReportFormat); err != nil {
		return nil, err
	}

	res = newResult(s.Name())
	res.Counts["articles"] = articles
	res.Counts["sees"] = log.Sees
	res.Counts["rows"] = log.Rows
	res.Counts["unparsed"] = log.Failures()
	for kind, n := range log.Counts {
		res.Counts["unparsed_"+string(kind)] = n
	}
	res.Outputs = []string{opts.SeesPath, opts.ReportPath}
	opts.logger().Info("sees extracted", "sees", log.Sees, "rows", log.Rows,
		"unparsed", log.Failures(), "report", opts.ReportPath)
	return res, nil
}
