package cli

import (
	"context"
	"fmt"
	"strings"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/infrastructure/app"
	"task-tracker/internal/output"

	"github.com/spf13/cobra"
)

type taskFlags struct {
	title    string
	priority string
	status   string
	assignee string
	due      string
	progress int
}

func (f *taskFlags) bind(cmd *cobra.Command, withTitle bool) {
	if withTitle {
		cmd.Flags().StringVarP(&f.title, "title", "t", "", "task title")
	}
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "High, Medium or Low (or Alta, Media, Baja)")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "Pending, InProgress or Completed (or Pendiente, En curso, Completada)")
	cmd.Flags().StringVarP(&f.assignee, "assignee", "a", "", "roster member: "+strings.Join(entities.Roster, ", "))
	cmd.Flags().StringVarP(&f.due, "due", "d", "", "due date YYYY-MM-DD, empty to clear")
	cmd.Flags().IntVar(&f.progress, "progress", 0, "progress 0-100")
}

// patch builds a patch from the flags that were set on the command line.
func (f *taskFlags) patch(cmd *cobra.Command) (entities.TaskPatch, error) {
	var patch entities.TaskPatch
	changed := cmd.Flags().Changed

	if changed("title") {
		patch.Title = &f.title
	}
	if changed("priority") {
		p, err := entities.ParsePriority(f.priority)
		if err != nil {
			return entities.TaskPatch{}, fmt.Errorf("%w: %q", err, f.priority)
		}
		patch.Priority = &p
	}
	if changed("status") {
		s, err := entities.ParseStatus(f.status)
		if err != nil {
			return entities.TaskPatch{}, fmt.Errorf("%w: %q", err, f.status)
		}
		patch.Status = &s
	}
	if changed("assignee") {
		patch.Assignee = &f.assignee
	}
	if changed("due") {
		patch.DueDate = &f.due
	}
	if changed("progress") {
		patch.Progress = &f.progress
	}
	return patch, nil
}

func newAddCmd() *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task, optionally filling its fields",
		Example: `  tracker add "Revisar facturas" --priority Alta --assignee Luis --due 2025-12-01
  tracker add`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := flags.patch(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				title := strings.Join(args, " ")
				patch.Title = &title
			}
			// validate before creating so a bad flag leaves no blank task behind
			if _, err := patch.Apply(entities.NewTask("")); err != nil {
				return err
			}

			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				task, err := core.Tracker.CreateTask(ctx)
				if err != nil {
					return err
				}
				if err := core.Tracker.UpdateTask(ctx, task.ID, patch); err != nil {
					return err
				}
				return printTask(cmd, core, task.ID)
			})
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func newSetCmd() *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Update fields of an existing task",
		Example: `  tracker set t1 --status Completada --progress 100
  tracker set t3 --due ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := flags.patch(cmd)
			if err != nil {
				return err
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				if err := core.Tracker.UpdateTask(ctx, args[0], patch); err != nil {
					return err
				}
				return printTask(cmd, core, args[0])
			})
		},
	}
	flags.bind(cmd, true)
	return cmd
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				return core.Tracker.DeleteTask(ctx, args[0])
			})
		},
	}
}

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [query]",
		Short: "List tasks, optionally filtered by title or assignee",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				output.FormatTasks(cmd.OutOrStdout(), core.Tracker.ListTasks(ctx, strings.Join(args, " ")))
				return nil
			})
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [query]",
		Short: "Show completion, overdue and distribution metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				output.FormatDashboard(cmd.OutOrStdout(), core.Tracker.Dashboard(ctx, strings.Join(args, " ")))
				return nil
			})
		},
	}
}

func printTask(cmd *cobra.Command, core *app.Core, id string) error {
	for _, task := range core.Store.Tasks() {
		if task.ID == id {
			output.FormatTask(cmd.OutOrStdout(), task)
			return nil
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "no task %q\n", id)
	return nil
}
