package cli

import (
	"context"
	"fmt"

	"github.com/mwliu/focusboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Manage the board's summary snapshot",
	}
	cmd.AddCommand(
		newSummarySetCmd(app),
		newSummaryShowCmd(app),
	)
	return cmd
}

func newSummarySetCmd(app *App) *cobra.Command {
	var boardFlag, user, ai string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the summary snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, err := resolveBoard(boardFlag)
			if err != nil {
				return err
			}
			if err := app.Boards.SetSummary(ctx, key, user, ai); err != nil {
				return err
			}
			fmt.Printf("Saved summary for the %s board\n", key)
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	cmd.Flags().StringVar(&user, "user", "", "Your own summary text")
	cmd.Flags().StringVar(&ai, "note", "", "Generated narrative text (stored opaquely)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newSummaryShowCmd(app *App) *cobra.Command {
	var boardFlag string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the summary snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, err := resolveBoard(boardFlag)
			if err != nil {
				return err
			}
			state, err := app.Boards.Board(ctx, key)
			if err != nil {
				return err
			}
			if state.Summary == nil {
				fmt.Println("No summary saved")
				return nil
			}
			fmt.Printf("%s %s\n\n%s\n", formatter.Header("Summary"),
				formatter.Dim(formatter.HumanTimestamp(state.Summary.Timestamp)),
				state.Summary.UserSummary)
			if state.Summary.AISummary != "" {
				fmt.Printf("\n%s\n%s\n", formatter.Header("Note"), state.Summary.AISummary)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	return cmd
}
