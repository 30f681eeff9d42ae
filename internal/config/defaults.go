package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jackzampolin/hierarh/internal/assemble"
	"github.com/jackzampolin/hierarh/internal/fixup"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// Entry is one configuration key with its default value.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns the default configuration entries.
// These are registered with viper as defaults and listed by `config show --defaults`.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Key:         "log_level",
			Value:       "info",
			Description: "Log level: debug, info, warn or error",
		},

		// Pipeline
		{
			Key:         "pipeline.fail_on_skipped",
			Value:       true,
			Description: "Abort the run when the classifier leaves text unclassified",
		},
		{
			Key:         "pipeline.patch_file",
			Value:       "",
			Description: "Manual correction patches applied before assembly",
		},
		{
			Key:         "pipeline.signals_dump",
			Value:       false,
			Description: "Write the signal dump next to the articles while parsing",
		},

		// Classifier
		{
			Key:         "classifier.styles_file",
			Value:       "",
			Description: "Paragraph style table replacing the embedded one",
		},

		// Assembler
		{
			Key:         "assembler.no_text_headers",
			Value:       slices.Clone(assemble.DefaultNoTextHeaders),
			Description: "Sees whose officeholder table follows the header directly",
		},

		// Fixups
		{
			Key:         "fixups.note_splits",
			Value:       slices.Clone(fixup.DefaultNoteSplits),
			Description: "Footnote lists to split between two consecutive sees",
		},

		// Output
		{
			Key:         "output.articles_file",
			Value:       "",
			Description: "Articles output (default: {home}/data/articles.json)",
		},
		{
			Key:         "output.sees_file",
			Value:       "",
			Description: "Structured sees output (default: {home}/data/sees.json)",
		},
		{
			Key:         "output.report_file",
			Value:       "",
			Description: "Unparsed row report (default: {home}/data/unparsed.yaml)",
		},
		{
			Key:         "output.report_format",
			Value:       "yaml",
			Description: "Unparsed row report format: yaml or json",
		},
		{
			Key:         "output.validate",
			Value:       true,
			Description: "Validate output records against the embedded JSON schemas",
		},
		{
			Key:         "output.retry_attempts",
			Value:       uint(3),
			Description: "Attempts per output record write",
		},
	}
}

// GetDefault returns the default value for a config key.
func GetDefault(key string) (any, error) {
	for _, e := range DefaultEntries() {
		if e.Key == key {
			return e.Value, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoDefault, key)
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Pipeline: PipelineCfg{
			FailOnSkipped: true,
		},
		Assembler: AssemblerCfg{
			NoTextHeaders: slices.Clone(assemble.DefaultNoTextHeaders),
		},
		Fixups: FixupsCfg{
			NoteSplits: slices.Clone(fixup.DefaultNoteSplits),
		},
		Output: OutputCfg{
			ReportFormat:  "yaml",
			Validate:      true,
			RetryAttempts: 3,
		},
	}
}
