package serve

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voicemail-whisper/cmd/vmw/cmd/shared"
	"voicemail-whisper/internal/app"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the clip pipeline",
	Long: `Run the HTTP API and the clip pipeline.

- Clips left waiting by a previous run are resumed first
- SIGINT/SIGTERM stops accepting requests and lets running stages finish`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		application, cleanup, err := app.InitializeApplication(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		logger := application.Logger

		resumed, err := application.Orchestrator.Resume(ctx)
		if err != nil {
			return err
		}
		if resumed > 0 {
			logger.Info("resumed pending clips", zap.Int("count", resumed))
		}

		application.Server.Start()

		var serveErr error
		select {
		case <-ctx.Done():
		case serveErr = <-application.Server.Errors():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := application.Server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown incomplete", zap.Error(err))
		}
		if err := application.Orchestrator.Shutdown(shutdownCtx); err != nil {
			logger.Warn("pipeline stopped before clips finished, they will resume on next start", zap.Error(err))
		}
		return serveErr
	},
}
