package main

import (
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/hierarh/internal/api"
	"github.com/jackzampolin/hierarh/internal/config"
	"github.com/jackzampolin/hierarh/internal/pipeline"
	"github.com/jackzampolin/hierarh/internal/svcctx"
)

var parseWatch bool

var parseCmd = &cobra.Command{
	Use:   "parse <book.xml>",
	Short: "Assemble see articles from the book markup",
	Long: `Classify the markup of the book, apply the manual patches and assemble
the see articles into the articles file.

With --watch the command keeps running and re-parses the book whenever the
patch file or the book changes, which makes fixing patch mismatches a tight
edit-and-check loop.

Examples:
  hierarh parse book.xml
  hierarh parse book.xml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}
		opts.Input = args[0]

		if !parseWatch {
			res, err := pipeline.ParseStage{}.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return api.Output(res)
		}

		ctx := cmd.Context()
		logger := svcctx.LoggerFrom(ctx)
		files := []string{opts.Input}

		// Config edits rebuild the options before the next run.
		var fresh atomic.Pointer[config.Config]
		if svc := svcctx.ServicesFrom(ctx); svc != nil && svc.Config != nil && svc.Config.FileUsed() != "" {
			svc.Config.OnChange(func(c *config.Config) { fresh.Store(c) })
			svc.Config.WatchConfig(logger)
			files = append(files, svc.Config.FileUsed())
		}

		rerun := func(string) error {
			if c := fresh.Swap(nil); c != nil {
				next, err := pipeline.NewOptions(c, svcctx.HomeFrom(ctx), logger)
				if err != nil {
					return err
				}
				next.Input = opts.Input
				opts = next
			} else if err := opts.ReloadPatches(); err != nil {
				return err
			}
			res, err := pipeline.ParseStage{}.Run(ctx, opts)
			if err != nil {
				return err
			}
			return api.Output(res)
		}
		if err := rerun(opts.Input); err != nil {
			logger.Error("parse failed", "error", err)
		}

		if opts.PatchFile != "" {
			files = append(files, opts.PatchFile)
		}
		w := &pipeline.Watcher{Files: files, Logger: logger}
		logger.Info("watching for changes", "files", files)
		return w.Run(cmd.Context(), rerun)
	},
}

var signalsCmd = &cobra.Command{
	Use:   "signals <book.xml>",
	Short: "Write the signal dump of the book markup",
	Long: `Classify the markup of the book and write the resulting signals, one per
line, to the signal dump. The dump format is the one patch files use, so
lines can be copied into the patch file and edited.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}
		opts.Input = args[0]

		res, err := pipeline.SignalsStage{}.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return api.Output(res)
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [articles.json]",
	Short: "Split officeholder rows into dates and names",
	Long: `Read assembled articles and write structured sees together with the report
of rows the grammars could not parse. Defaults to the articles file of the
last parse.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			opts.ArticlesPath = args[0]
		}

		res, err := pipeline.ExtractStage{}.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return api.Output(res)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <book.xml>",
	Short: "Parse the book and extract structured sees",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}
		opts.Input = args[0]

		results, err := pipeline.DefaultRegistry().Run(cmd.Context(), opts, "extract")
		if err != nil {
			return err
		}
		return api.Output(results)
	},
}

func init() {
	parseCmd.Flags().BoolVarP(&parseWatch, "watch", "w", false, "re-parse when the patch file or the book changes")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(signalsCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(runCmd)
}
