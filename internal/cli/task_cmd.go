package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwliu/focusboard/internal/cli/formatter"
	"github.com/mwliu/focusboard/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskStartCmd(app),
		newTaskDoneCmd(app),
		newTaskTodoCmd(app),
		newTaskPromoteCmd(app),
		newTaskDiaryCmd(app),
		newTaskRemoveCmd(app),
		newTaskRestoreCmd(app),
		newTaskEditCmd(app),
		newTaskCountCmd(app),
		newTaskTransferCmd(app),
	)

	return cmd
}

// simpleTaskCmd builds a one-argument task mutation command. The mutation
// reports whether it changed anything; stale IDs print a notice instead of
// failing.
func simpleTaskCmd(app *App, use, short, doneMsg string, fn func(ctx context.Context, key domain.BoardKey, id string) (bool, error)) *cobra.Command {
	var boardFlag string
	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, err := resolveBoard(boardFlag)
			if err != nil {
				return err
			}
			id, err := resolveTaskID(ctx, app, key, args[0])
			if err != nil {
				return err
			}
			applied, err := fn(ctx, key, id)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Printf("No task %s on the %s board; nothing to do\n", args[0], key)
				return nil
			}
			fmt.Printf(doneMsg+"\n", id[:8])
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		boardFlag   string
		doing, done bool
	)
	cmd := &cobra.Command{
		Use:   "add CONTENT...",
		Short: "Create a new task (classified automatically)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, err := resolveBoard(boardFlag)
			if err != nil {
				return err
			}
			content := strings.TrimSpace(strings.Join(args, " "))
			if content == "" {
				return fmt.Errorf("task content is empty")
			}

			target := domain.ListTodo
			if doing && done {
				return fmt.Errorf("--doing and --done are mutually exclusive")
			}
			if doing {
				target = domain.ListDoing
			}
			if done {
				target = domain.ListDone
			}

			task, err := app.Boards.Create(ctx, key, content, target)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s %s to %s\n", task.ID[:8], formatter.CategoryPill(task.Category), formatter.ListTitle(target))
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	cmd.Flags().BoolVar(&doing, "doing", false, "Create directly into doing and start the timer")
	cmd.Flags().BoolVar(&done, "done", false, "Create as an already-completed entry")
	return cmd
}

func newTaskStartCmd(app *App) *cobra.Command {
	return simpleTaskCmd(app, "start", "Move a task to doing and start its timer",
		"Started %s (timer running)", app.startWork)
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return simpleTaskCmd(app, "done", "Complete a task",
		"Completed %s", app.complete)
}

func newTaskTodoCmd(app *App) *cobra.Command {
	return simpleTaskCmd(app, "todo", "Send a task back to the todo backlog",
		"Reopened %s", app.reopen)
}

func newTaskPromoteCmd(app *App) *cobra.Command {
	return simpleTaskCmd(app, "promote", "Promote a task to the long-term list",
		"Promoted %s", app.promote)
}

func newTaskDiaryCmd(app *App) *cobra.Command {
	return simpleTaskCmd(app, "diary", "Fold a completed task into a diary entry",
		"Folded %s into the diary", app.diary)
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return simpleTaskCmd(app, "rm", "Soft-delete a task (restorable)",
		"Deleted %s", app.remove)
}

func newTaskRestoreCmd(app *App) *cobra.Command {
	return simpleTaskCmd(app, "restore", "Restore a deleted task to todo",
		"Restored %s", app.restore)
}

func newTaskCountCmd(app *App) *cobra.Command {
	return simpleTaskCmd(app, "count", "Increment a task's repeat counter",
		"Counted one more run of %s", app.incrementCount)
}

func newTaskTransferCmd(app *App) *cobra.Command {
	return simpleTaskCmd(app, "transfer", "Move a task to the other board",
		"Transferred %s to the other board", app.transfer)
}

func newTaskEditCmd(app *App) *cobra.Command {
	var boardFlag string
	cmd := &cobra.Command{
		Use:   "edit ID CONTENT...",
		Short: "Replace a task's text (category and timing untouched)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, err := resolveBoard(boardFlag)
			if err != nil {
				return err
			}
			id, err := resolveTaskID(ctx, app, key, args[0])
			if err != nil {
				return err
			}
			content := strings.TrimSpace(strings.Join(args[1:], " "))
			if content == "" {
				return fmt.Errorf("task content is empty")
			}
			applied, err := app.Boards.EditContent(ctx, key, id, content)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Printf("No task %s on the %s board; nothing to do\n", args[0], key)
				return nil
			}
			fmt.Printf("Edited %s\n", id[:8])
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	return cmd
}

// Bound methods with the signature simpleTaskCmd expects.

func (a *App) startWork(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return a.Boards.StartWork(ctx, key, id)
}

func (a *App) complete(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return a.Boards.Complete(ctx, key, id)
}

func (a *App) reopen(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return a.Boards.Reopen(ctx, key, id)
}

func (a *App) promote(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return a.Boards.Promote(ctx, key, id)
}

func (a *App) diary(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return a.Boards.Diary(ctx, key, id)
}

func (a *App) remove(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return a.Boards.Delete(ctx, key, id)
}

func (a *App) restore(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return a.Boards.Restore(ctx, key, id)
}

func (a *App) incrementCount(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return a.Boards.IncrementCount(ctx, key, id)
}

func (a *App) transfer(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return a.Boards.Transfer(ctx, key, id)
}
