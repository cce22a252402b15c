package cli

import (
	"context"
	"fmt"

	"github.com/mwliu/focusboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the single active timer",
	}
	cmd.AddCommand(
		newTimerToggleCmd(app),
		newTimerStatusCmd(app),
	)
	return cmd
}

func newTimerToggleCmd(app *App) *cobra.Command {
	var boardFlag string
	cmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Start or pause a task's timer",
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
			recording, applied, err := app.Boards.ToggleTimer(ctx, key, id)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Printf("No task %s on the %s board; nothing to do\n", args[0], key)
				return nil
			}
			if recording {
				fmt.Printf("Recording %s\n", id[:8])
			} else {
				fmt.Printf("Paused %s\n", id[:8])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	return cmd
}

func newTimerStatusCmd(app *App) *cobra.Command {
	var boardFlag string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active timer, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, err := resolveBoard(boardFlag)
			if err != nil {
				return err
			}
			active, err := app.Boards.ActiveTimerID(ctx, key)
			if err != nil {
				return err
			}
			if active == "" {
				fmt.Println("No active timer")
				return nil
			}
			state, err := app.Boards.Board(ctx, key)
			if err != nil {
				return err
			}
			task, _, ok := state.Find(active)
			if !ok {
				fmt.Println("No active timer")
				return nil
			}
			fmt.Printf("%s %s %s\n",
				formatter.StyleRed.Render("⏺"),
				formatter.FirstLine(task.Content),
				formatter.StyleYellow.Render(formatter.FormatSeconds(task.DurationSec)))
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	return cmd
}
