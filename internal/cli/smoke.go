package cli

import (
	"context"
	"fmt"
	"io"

	"task-tracker/internal/config"
	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/core/ports"
	"task-tracker/internal/core/service"
	"task-tracker/internal/infrastructure/app"
	"task-tracker/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const smokeKeySuffix = "_smoke"

func newSmokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Check that the configured slot backend round-trips tasks",
		Long: `Run a create, update, reload and delete cycle against the configured slot
backend. The check uses its own key (SLOT_KEY + "_smoke") and never touches
the real task list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config load error: %w", err)
			}
			log, err := logger.InitCLI(cfg.Logger.Env)
			if err != nil {
				return fmt.Errorf("logger init error: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			slot, closeSlot, err := app.OpenSlot(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeSlot()

			if err := runSlotSmokeTest(ctx, cmd.OutOrStdout(), log, slot, cfg.Slot.Key+smokeKeySuffix); err != nil {
				log.Error("smoke test: failed", zap.String("backend", cfg.Slot.Backend), zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "smoke test passed (%s)\n", cfg.Slot.Backend)
			return nil
		},
	}
}

func runSlotSmokeTest(ctx context.Context, w io.Writer, log *zap.Logger, slot ports.SlotStore, key string) error {
	open := func() (*service.TaskStore, []entities.Task, error) {
		store, err := service.NewTaskStore(slot, key, log)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Load(ctx), nil
	}

	fmt.Fprintln(w, "smoke test: resetting slot", key)
	store, _, err := open()
	if err != nil {
		return err
	}
	store.Persist(ctx, entities.SeedTasks())

	fmt.Fprintln(w, "smoke test: creating task")
	store, _, err = open()
	if err != nil {
		return err
	}
	task := store.Create(ctx)

	title := "Smoke Test Task"
	assignee := entities.Roster[0]
	progress := 50
	fmt.Fprintln(w, "smoke test: updating task", task.ID)
	if err := store.Update(ctx, task.ID, entities.TaskPatch{Title: &title, Assignee: &assignee, Progress: &progress}); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	fmt.Fprintln(w, "smoke test: reloading")
	store, tasks, err := open()
	if err != nil {
		return err
	}
	if len(tasks) != len(entities.SeedTasks())+1 {
		return fmt.Errorf("reload: expected %d tasks, got %d", len(entities.SeedTasks())+1, len(tasks))
	}
	want := entities.NewTask(task.ID)
	want.Title, want.Assignee, want.Progress = title, assignee, progress
	if tasks[0] != want {
		return fmt.Errorf("reload: task %s did not round-trip: got %+v", task.ID, tasks[0])
	}

	fmt.Fprintln(w, "smoke test: deleting task", task.ID)
	store.Delete(ctx, task.ID)
	_, tasks, err = open()
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID == task.ID {
			return fmt.Errorf("delete: task %s still present after reload", task.ID)
		}
	}
	return nil
}
