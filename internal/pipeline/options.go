package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/jackzampolin/hierarh/internal/api"
	"github.com/jackzampolin/hierarh/internal/classify"
	"github.com/jackzampolin/hierarh/internal/config"
	"github.com/jackzampolin/hierarh/internal/fixup"
	"github.com/jackzampolin/hierarh/internal/home"
	"github.com/jackzampolin/hierarh/internal/patch"
)

// Options is everything a run needs, resolved from configuration.
type Options struct {
	Input     string // book XML for signals/parse
	PatchFile string

	Styles        *classify.StyleTable
	Patches       patch.Set
	FailOnSkipped bool
	NoTextHeaders []string
	NoteSplits    []fixup.NoteSplit

	ArticlesPath string
	SeesPath     string
	ReportPath   string
	SignalsPath  string
	SignalsDump  bool
	ReportFormat api.OutputFormat

	Validate      bool
	RetryAttempts uint

	Logger *slog.Logger
}

// NewOptions resolves options from configuration. Empty output paths fall
// back to the home data directory.
func NewOptions(cfg *config.Config, h *home.Dir, logger *slog.Logger) (*Options, error) {
	opts := &Options{
		PatchFile:     cfg.Pipeline.PatchFile,
		FailOnSkipped: cfg.Pipeline.FailOnSkipped,
		NoTextHeaders: cfg.Assembler.NoTextHeaders,
		NoteSplits:    cfg.Fixups.NoteSplits,
		ArticlesPath:  home.Or(cfg.Output.ArticlesFile, h.ArticlesPath()),
		SeesPath:      home.Or(cfg.Output.SeesFile, h.SeesPath()),
		ReportPath:    home.Or(cfg.Output.ReportFile, h.ReportPath()),
		SignalsPath:   h.SignalsPath(),
		SignalsDump:   cfg.Pipeline.SignalsDump,
		Validate:      cfg.Output.Validate,
		RetryAttempts: cfg.Output.RetryAttempts,
		Logger:        logger,
	}

	format, err := api.ParseOutputFormat(cfg.Output.ReportFormat)
	if err != nil {
		return nil, fmt.Errorf("report format: %w", err)
	}
	opts.ReportFormat = format

	for _, ns := range opts.NoteSplits {
		if err := ns.Validate(); err != nil {
			return nil, fmt.Errorf("fixups.note_splits: %w", err)
		}
	}

	if cfg.Classifier.StylesFile != "" {
		opts.Styles, err = classify.LoadStyles(cfg.Classifier.StylesFile)
	} else {
		opts.Styles, err = classify.DefaultStyles()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load paragraph styles: %w", err)
	}

	if err := opts.ReloadPatches(); err != nil {
		return nil, err
	}
	return opts, nil
}

// ReloadPatches re-reads the patch file.
func (o *Options) ReloadPatches() error {
	set, err := patch.Load(o.PatchFile)
	if err != nil {
		return fmt.Errorf("failed to load patches: %w", err)
	}
	o.Patches = set
	return nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
