// Package main provides the entry point for the support portal admin CLI
// tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nami21/support-portal/cmd/adm/commands"
	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/services"
	"github.com/nami21/support-portal/internal/store"
)

func main() {
	ctx := context.Background()

	if os.Getenv("PORTAL_CONFIG_FILE") == "" {
		// Try to find the config file in common locations
		defaultPaths := []string{
			"config.yaml",
			"../config.yaml",
			"../../config.yaml",
		}
		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := os.Setenv("PORTAL_CONFIG_FILE", path); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to set PORTAL_CONFIG_FILE environment variable: %v\n", err)
					os.Exit(1)
				}
				break
			}
		}
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Quiet logging and no telemetry export for the CLI
	cfg.Server.LogLevel = "error"
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false
	cfg.OpenTelemetry.EnableLogging = false

	_, _, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "support-portal-adm")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to open storage backend", err, nil)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn(ctx, "Failed to close storage backend", map[string]interface{}{"error": err.Error()})
		}
	}()

	userService := services.NewUserService(st, logger, cfg)

	rootCmd := &cobra.Command{
		Use:   "adm",
		Short: "Support Portal Administration Tool",
		Long: `Support Portal Administration Tool

A CLI tool for administering the support portal. Provides commands for
account management and storage operations against whichever backend the
configuration selects.`,

		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Printf("Error showing help: %v\n", err)
			}
		},
	}

	rootCmd.AddCommand(commands.UserCommands(userService, st, logger))
	rootCmd.AddCommand(commands.StoreCommands(st, cfg, logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
