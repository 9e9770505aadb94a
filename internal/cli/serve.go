package cli

import (
	"fmt"

	"task-tracker/internal/config"
	"task-tracker/internal/infrastructure/app"
	"task-tracker/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the gRPC and HTTP APIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config load error: %w", err)
			}
			log, err := logger.Init(cfg.Logger.Env)
			if err != nil {
				return fmt.Errorf("logger init error: %w", err)
			}

			application, err := app.Init(cmd.Context(), cfg, log)
			if err != nil {
				_ = log.Sync()
				return fmt.Errorf("app init error: %w", err)
			}
			defer application.Close()

			log.Info("server is starting",
				zap.String("env", cfg.Logger.Env),
				zap.String("slot_backend", cfg.Slot.Backend),
			)
			return application.Run(cmd.Context())
		},
	}
}
