package config

import "github.com/jackzampolin/hierarh/internal/fixup"

// Config holds hierarh configuration.
// Stored at: {home}/config.yaml
type Config struct {
	LogLevel   string        `mapstructure:"log_level" yaml:"log_level"`
	Pipeline   PipelineCfg   `mapstructure:"pipeline" yaml:"pipeline"`
	Classifier ClassifierCfg `mapstructure:"classifier" yaml:"classifier"`
	Assembler  AssemblerCfg  `mapstructure:"assembler" yaml:"assembler"`
	Fixups     FixupsCfg     `mapstructure:"fixups" yaml:"fixups"`
	Output     OutputCfg     `mapstructure:"output" yaml:"output"`
}

// PipelineCfg configures the signal stages in front of the assembler.
type PipelineCfg struct {
	FailOnSkipped bool   `mapstructure:"fail_on_skipped" yaml:"fail_on_skipped"` // abort on unclassified text
	PatchFile     string `mapstructure:"patch_file" yaml:"patch_file"`           // supports ${ENV_VAR} syntax
	SignalsDump   bool   `mapstructure:"signals_dump" yaml:"signals_dump"`       // write the signal dump while parsing
}

// ClassifierCfg configures the markup classifier.
type ClassifierCfg struct {
	// StylesFile replaces the embedded paragraph style table when set.
	StylesFile string `mapstructure:"styles_file" yaml:"styles_file"`
}

// AssemblerCfg configures the article assembler.
type AssemblerCfg struct {
	NoTextHeaders []string `mapstructure:"no_text_headers" yaml:"no_text_headers"`
}

// FixupsCfg lists the structural fixups applied to sees.
type FixupsCfg struct {
	NoteSplits []fixup.NoteSplit `mapstructure:"note_splits" yaml:"note_splits"`
}

// OutputCfg configures the output files. Empty paths fall back to the
// home data directory.
type OutputCfg struct {
	ArticlesFile  string `mapstructure:"articles_file" yaml:"articles_file"`
	SeesFile      string `mapstructure:"sees_file" yaml:"sees_file"`
	ReportFile    string `mapstructure:"report_file" yaml:"report_file"`
	ReportFormat  string `mapstructure:"report_format" yaml:"report_format"` // "yaml" or "json"
	Validate      bool   `mapstructure:"validate" yaml:"validate"`
	RetryAttempts uint   `mapstructure:"retry_attempts" yaml:"retry_attempts"`
}

// resolve expands ${ENV_VAR} references in path settings.
func (c *Config) resolve() {
	c.Pipeline.PatchFile = ResolveEnvVars(c.Pipeline.PatchFile)
	c.Classifier.StylesFile = ResolveEnvVars(c.Classifier.StylesFile)
	c.Output.ArticlesFile = ResolveEnvVars(c.Output.ArticlesFile)
	c.Output.SeesFile = ResolveEnvVars(c.Output.SeesFile)
	c.Output.ReportFile = ResolveEnvVars(c.Output.ReportFile)
}
