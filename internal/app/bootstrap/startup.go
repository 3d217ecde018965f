// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. NoteHub
// uses it to apply timeout overrides and make sure the attachment bucket
// exists.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("handler timeouts configured from environment", zap.Int("count", n))
	}

	if err := deps.Blob.EnsureBucket(ctx); err != nil {
		logger.Error("attachment bucket setup failed", zap.Error(err))
		return err
	}
	return nil
}
