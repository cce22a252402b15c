package cli

import (
	"fmt"

	"github.com/mwliu/focusboard/internal/domain"
	"github.com/mwliu/focusboard/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Boards service.BoardService

	// IsInteractive reports whether stdin is a terminal; gates the TUI
	// entrypoint.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "focusboard" command and registers all
// subcommands against the provided App. Running with no arguments in an
// interactive terminal opens the live board view.
func NewRootCmd(app *App) *cobra.Command {
	var boardFlag string

	root := &cobra.Command{
		Use:   "focusboard",
		Short: "Personal productivity board with a single active timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				key, err := resolveBoard(boardFlag)
				if err != nil {
					return err
				}
				return runBoardView(app, key)
			}
			return cmd.Help()
		},
	}
	root.Flags().StringVar(&boardFlag, "board", "execution", "Board to open (execution|planning)")

	root.AddCommand(
		newTaskCmd(app),
		newTimerCmd(app),
		newBoardCmd(app),
		newSummaryCmd(app),
	)

	return root
}

// resolveBoard maps the --board flag value to a board key.
func resolveBoard(flag string) (domain.BoardKey, error) {
	key := domain.BoardKey(flag)
	if !domain.ValidBoardKeys[key] {
		return "", fmt.Errorf("unknown board %q (want execution or planning)", flag)
	}
	return key, nil
}
