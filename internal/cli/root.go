// Package cli implements the tracker command-line interface.
package cli

import (
	"context"
	"fmt"

	"task-tracker/internal/config"
	"task-tracker/internal/infrastructure/app"
	"task-tracker/internal/logger"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tracker",
		Short: "Track team tasks, progress and deadlines",
		Long: `tracker keeps a small team task list in a durable slot and derives
completion metrics, overdue counts and per-status, per-priority and
per-assignee distributions from it.

The slot backend is chosen with SLOT_BACKEND (file, sqlite or postgres).
Run "tracker serve" to expose the gRPC and HTTP APIs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newAddCmd(),
		newSetCmd(),
		newRmCmd(),
		newLsCmd(),
		newStatsCmd(),
		newExportCmd(),
		newSmokeCmd(),
	)
	return root
}

// Execute runs the root command with ctx, which is cancelled on interrupt by the caller.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// withCore opens the configured slot for a one-shot command and releases it afterwards.
func withCore(cmd *cobra.Command, fn func(ctx context.Context, core *app.Core) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load error: %w", err)
	}
	log, err := logger.InitCLI(cfg.Logger.Env)
	if err != nil {
		return fmt.Errorf("logger init error: %w", err)
	}

	ctx := cmd.Context()
	core, err := app.NewCore(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return err
	}
	defer core.Close()

	return fn(ctx, core)
}
