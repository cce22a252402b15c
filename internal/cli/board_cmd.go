package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/mwliu/focusboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Inspect and manage a board",
	}
	cmd.AddCommand(
		newBoardShowCmd(app),
		newBoardClearCmd(app),
		newBoardViewCmd(app),
	)
	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	var boardFlag string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board's five lists",
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
			fmt.Print(formatter.RenderBoard(key, state))
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	return cmd
}

func newBoardClearCmd(app *App) *cobra.Command {
	var (
		boardFlag string
		yes       bool
	)
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty all five lists (the summary snapshot survives)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, err := resolveBoard(boardFlag)
			if err != nil {
				return err
			}

			if !yes {
				confirmed := false
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewConfirm().
							Title(fmt.Sprintf("Clear every task on the %s board?", key)).
							Description("Tasks are removed for good, not soft-deleted.").
							Value(&confirmed),
					),
				)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := app.Boards.ClearAll(ctx, key); err != nil {
				return err
			}
			fmt.Printf("Cleared the %s board\n", key)
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newBoardViewCmd(app *App) *cobra.Command {
	var boardFlag string
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the live board view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveBoard(boardFlag)
			if err != nil {
				return err
			}
			return runBoardView(app, key)
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "execution", "Board (execution|planning)")
	return cmd
}
