package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwliu/focusboard/internal/cli/formatter"
	"github.com/mwliu/focusboard/internal/domain"
)

// boardRow is a flattened row of the board: a list header or one task.
type boardRow struct {
	isHeader bool
	list     domain.ListID
	task     domain.Task
}

// accrualTickMsg drives the per-second accrual while a timer is active.
type accrualTickMsg struct{}

// boardView is the live bubbletea view over one board. All mutations run
// synchronously inside Update: the board model is single-threaded and
// event-driven, so no two handlers ever overlap.
type boardView struct {
	app    *App
	key    domain.BoardKey
	rows   []boardRow
	cursor int
	width  int
	height int
	status string
	err    error

	// ticking is true while an accrual tick is scheduled. The tick is armed
	// exactly while some task is recording and disarmed the instant none is.
	ticking bool
}

func newBoardView(app *App, key domain.BoardKey) *boardView {
	return &boardView{app: app, key: key}
}

// runBoardView opens the live board view and blocks until the user quits.
func runBoardView(app *App, key domain.BoardKey) error {
	v := newBoardView(app, key)
	v.reload()
	if v.err != nil {
		return v.err
	}
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}

func (v *boardView) shortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "timer")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "todo")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "promote")),
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "diary")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "count")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move board")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "other board")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// reload rebuilds the flattened rows from the board's current state.
func (v *boardView) reload() {
	state, err := v.app.Boards.Board(context.Background(), v.key)
	if err != nil {
		v.err = err
		return
	}
	var rows []boardRow
	for _, lid := range domain.Lists {
		rows = append(rows, boardRow{isHeader: true, list: lid})
		for _, t := range state.List(lid) {
			rows = append(rows, boardRow{list: lid, task: t})
		}
	}
	v.rows = rows
	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// armTick schedules the next accrual tick if a timer is active and none is
// pending.
func (v *boardView) armTick() tea.Cmd {
	active, err := v.app.Boards.ActiveTimerID(context.Background(), v.key)
	if err != nil || active == "" || v.ticking {
		return nil
	}
	v.ticking = true
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return accrualTickMsg{}
	})
}

func (v *boardView) Init() tea.Cmd {
	return v.armTick()
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case accrualTickMsg:
		v.ticking = false
		if err := v.app.Boards.Tick(context.Background(), v.key); err != nil {
			v.err = err
			return v, nil
		}
		v.reload()
		return v, v.armTick()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return v, tea.Quit

	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}

	case "tab":
		v.key = v.key.Other()
		v.cursor = 0
		v.reload()
		return v, v.armTick()

	case "r":
		v.reload()
		return v, v.armTick()

	case " ", "space":
		if t, ok := v.cursorTask(); ok {
			recording, _, err := v.app.Boards.ToggleTimer(context.Background(), v.key, t.ID)
			v.afterMutation(err)
			if recording {
				v.status = "recording " + formatter.FirstLine(t.Content)
			}
			return v, v.armTick()
		}

	case "s":
		return v.mutate(func(ctx context.Context, id string) (bool, error) {
			return v.app.Boards.StartWork(ctx, v.key, id)
		})
	case "d":
		return v.mutate(func(ctx context.Context, id string) (bool, error) {
			return v.app.Boards.Complete(ctx, v.key, id)
		})
	case "t":
		return v.mutate(func(ctx context.Context, id string) (bool, error) {
			return v.app.Boards.Reopen(ctx, v.key, id)
		})
	case "p":
		return v.mutate(func(ctx context.Context, id string) (bool, error) {
			return v.app.Boards.Promote(ctx, v.key, id)
		})
	case "i":
		return v.mutate(func(ctx context.Context, id string) (bool, error) {
			return v.app.Boards.Diary(ctx, v.key, id)
		})
	case "x":
		return v.mutate(func(ctx context.Context, id string) (bool, error) {
			return v.app.Boards.Delete(ctx, v.key, id)
		})
	case "u":
		return v.mutate(func(ctx context.Context, id string) (bool, error) {
			return v.app.Boards.Restore(ctx, v.key, id)
		})
	case "c":
		return v.mutate(func(ctx context.Context, id string) (bool, error) {
			return v.app.Boards.IncrementCount(ctx, v.key, id)
		})
	case "m":
		return v.mutate(func(ctx context.Context, id string) (bool, error) {
			return v.app.Boards.Transfer(ctx, v.key, id)
		})
	}
	return v, nil
}

// mutate runs one task mutation against the task under the cursor.
func (v *boardView) mutate(fn func(ctx context.Context, id string) (bool, error)) (tea.Model, tea.Cmd) {
	t, ok := v.cursorTask()
	if !ok {
		return v, nil
	}
	_, err := fn(context.Background(), t.ID)
	v.afterMutation(err)
	return v, v.armTick()
}

func (v *boardView) afterMutation(err error) {
	if err != nil {
		v.err = err
		return
	}
	v.reload()
}

func (v *boardView) cursorTask() (domain.Task, bool) {
	if v.cursor >= len(v.rows) {
		return domain.Task{}, false
	}
	row := v.rows[v.cursor]
	if row.isHeader {
		return domain.Task{}, false
	}
	return row.task, true
}

func (v *boardView) View() string {
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(formatter.Bold("focusboard"))
	b.WriteString("  ")
	b.WriteString(formatter.Dim(string(v.key)))
	b.WriteString("\n\n")

	for i, row := range v.rows {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		if row.isHeader {
			count := 0
			for _, r := range v.rows {
				if !r.isHeader && r.list == row.list {
					count++
				}
			}
			b.WriteString(fmt.Sprintf("%s%s\n", cursor,
				formatter.StyleHeader.Render(fmt.Sprintf("%s (%d)", formatter.ListTitle(row.list), count))))
			continue
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", cursor, formatter.TaskLine(row.task)))
	}

	if v.status != "" {
		b.WriteString("\n  ")
		b.WriteString(formatter.StyleYellow.Render(v.status))
	}

	var help []string
	for _, binding := range v.shortHelp() {
		help = append(help, binding.Help().Key+" "+binding.Help().Desc)
	}
	b.WriteString("\n  ")
	b.WriteString(formatter.Dim(strings.Join(help, " · ")))
	b.WriteString("\n")
	return b.String()
}
