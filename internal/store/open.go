package store

import (
	"context"

	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store/localstore"
	"github.com/nami21/support-portal/internal/store/remotestore"
)

// Open selects and opens the storage backend for the process. The remote
// database is used only when both its URL and service key are configured;
// anything less falls back to the embedded local store. The choice is made
// once, here, and never revisited.
func Open(ctx context.Context, cfg *config.Config, logger *observability.Logger) (Store, error) {
	if cfg.RemoteConfigured() {
		logger.Info(ctx, "Opening remote storage backend", map[string]interface{}{
			"backend": BackendRemote,
		})
		return remotestore.New(ctx, cfg, logger)
	}

	logger.Info(ctx, "Remote backend not configured, using local store", map[string]interface{}{
		"backend":  BackendLocal,
		"data_dir": cfg.Store.DataDir,
	})
	return localstore.New(cfg.Store.DataDir, logger)
}
