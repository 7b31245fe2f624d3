package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
	"github.com/nami21/support-portal/internal/store/remotestore"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// StoreCommands returns the storage maintenance commands.
func StoreCommands(st store.Store, cfg *config.Config, logger *observability.Logger) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Storage maintenance commands",
		Long: `Storage maintenance commands for the support portal.

Available commands:
  info     - Show the active backend
  seed     - Seed demo data (local backend only, idempotent)
  migrate  - Apply pending database migrations (remote backend only)`,
	}

	storeCmd.AddCommand(storeInfoCmd(st, cfg))
	storeCmd.AddCommand(storeSeedCmd(st, logger))
	storeCmd.AddCommand(storeMigrateCmd(cfg, logger))

	return storeCmd
}

func storeInfoCmd(st store.Store, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the active backend",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("Backend: %s\n", st.Backend())
			if st.Backend() == store.BackendLocal {
				fmt.Printf("Data directory: %s\n", cfg.Store.DataDir)
			} else {
				fmt.Printf("Remote URL: %s\n", maskDatabaseURL(cfg.Remote.URL))
			}
			return nil
		},
	}
}

func storeSeedCmd(st store.Store, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed demo data into the local backend",
		Long:  `Seed the demo dataset into the local backend. A no-op if the store was already initialized, and a no-op on the remote backend.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			if err := st.Initialize(ctx); err != nil {
				return contextutils.WrapError(err, "failed to seed store")
			}
			logger.Info(ctx, "Store initialized", map[string]interface{}{"backend": st.Backend()})
			fmt.Printf("Store initialized (backend: %s)\n", st.Backend())
			return nil
		},
	}
}

func storeMigrateCmd(cfg *config.Config, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			if !cfg.RemoteConfigured() {
				return contextutils.ErrorWithContextf("no remote backend configured, nothing to migrate")
			}

			if err := remotestore.RunMigrations(ctx, cfg.Remote.URL, logger); err != nil {
				return contextutils.WrapError(err, "migrations failed")
			}
			fmt.Println("Migrations applied")
			return nil
		},
	}
}
