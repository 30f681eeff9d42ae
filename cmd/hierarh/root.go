package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/hierarh/internal/api"
	"github.com/jackzampolin/hierarh/internal/config"
	"github.com/jackzampolin/hierarh/internal/home"
	"github.com/jackzampolin/hierarh/internal/pipeline"
	"github.com/jackzampolin/hierarh/internal/svcctx"
	"github.com/jackzampolin/hierarh/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "hierarh",
	Short: "Reconstruct see and officeholder records from a typeset reference book",
	Long: `Hierarh turns the markup export of a reference book on church sees into
structured records.

The pipeline includes:
  - Paragraph style classification into a signal stream
  - Manual correction patches
  - Article assembly (canonical and schismatic sees)
  - Officeholder row parsing into dates and names, with an unparsed report`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.hierarh/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "hierarh home directory (default: ~/.hierarh)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn, error (default: config log_level)",
	)

	// Set output format and services before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		api.SetOutputFormat(outputFormat)
		return setupServices(cmd)
	}

	rootCmd.AddCommand(versionCmd)
}

// setupServices loads configuration, builds the logger and attaches both to
// the command context.
func setupServices(cmd *cobra.Command) error {
	h, err := home.New(homeDir)
	if err != nil {
		return err
	}

	file := cfgFile
	if file == "" && h.ConfigExists() {
		file = h.ConfigPath()
	}
	mgr, err := config.NewManager(file)
	if err != nil {
		return err
	}

	level := logLevel
	if level == "" {
		level = mgr.Get().LogLevel
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	cmd.SetContext(svcctx.WithServices(cmd.Context(), &svcctx.Services{
		Logger: logger,
		Config: mgr,
		Home:   h,
	}))
	return nil
}

// runOptions resolves pipeline options for the current command.
func runOptions(cmd *cobra.Command) (*pipeline.Options, error) {
	ctx := cmd.Context()
	h := svcctx.HomeFrom(ctx)
	if h == nil {
		return nil, fmt.Errorf("home directory not initialized")
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}
	return pipeline.NewOptions(svcctx.ConfigFrom(ctx), h, svcctx.LoggerFrom(ctx))
}
