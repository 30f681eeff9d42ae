package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/hierarh/internal/api"
	"github.com/jackzampolin/hierarh/internal/config"
	"github.com/jackzampolin/hierarh/internal/svcctx"
)

var (
	configForce    bool
	configDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hierarh configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the home directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		h := svcctx.HomeFrom(cmd.Context())
		if h == nil {
			return fmt.Errorf("home directory not initialized")
		}
		if h.ConfigExists() && !configForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", h.ConfigPath())
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		svcctx.LoggerFrom(cmd.Context()).Info("config written", "path", h.ConfigPath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configDefaults {
			return api.Output(config.DefaultEntries())
		}
		return api.Output(svcctx.ConfigFrom(cmd.Context()))
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configShowCmd.Flags().BoolVar(&configDefaults, "defaults", false, "list every key with its default and description")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
