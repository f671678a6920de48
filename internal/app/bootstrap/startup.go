// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/shelfhub/internal/app/resources"
	"github.com/dalemusser/shelfhub/internal/app/system/seed"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It loads
// the shared templates and, when seed_dir is configured, imports the CSV
// seed data.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if appCfg.SeedDir != "" {
		runID, err := seed.LoadDir(ctx, deps.ShelfHubMongoDatabase, appCfg.SeedDir, appCfg.SeedReset, logger)
		if err != nil {
			logger.Error("seed import failed",
				zap.String("seed_dir", appCfg.SeedDir), zap.Error(err))
			return err
		}
		logger.Info("seed import complete",
			zap.String("seed_dir", appCfg.SeedDir),
			zap.String("seed_run", runID))
	}

	return nil
}
