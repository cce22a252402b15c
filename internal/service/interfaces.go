package service

import (
	"context"

	"github.com/mwliu/focusboard/internal/domain"
)

// BoardService is the use-case surface over the two boards. Mutations report
// whether they changed anything: operations on an ID absent from the
// expected list are silent no-ops (false, nil), never errors.
type BoardService interface {
	// Board returns the named board's state for reading.
	Board(ctx context.Context, key domain.BoardKey) (*domain.BoardState, error)

	// Create classifies content and appends a new task to todo, doing or
	// done. Creating into doing starts the timer.
	Create(ctx context.Context, key domain.BoardKey, content string, target domain.ListID) (domain.Task, error)

	StartWork(ctx context.Context, key domain.BoardKey, id string) (bool, error)
	Complete(ctx context.Context, key domain.BoardKey, id string) (bool, error)
	Reopen(ctx context.Context, key domain.BoardKey, id string) (bool, error)
	Promote(ctx context.Context, key domain.BoardKey, id string) (bool, error)
	Diary(ctx context.Context, key domain.BoardKey, id string) (bool, error)
	Delete(ctx context.Context, key domain.BoardKey, id string) (bool, error)
	Restore(ctx context.Context, key domain.BoardKey, id string) (bool, error)
	EditContent(ctx context.Context, key domain.BoardKey, id, content string) (bool, error)
	IncrementCount(ctx context.Context, key domain.BoardKey, id string) (bool, error)

	// ToggleTimer flips the task's recording state; recording reports the
	// state afterwards.
	ToggleTimer(ctx context.Context, key domain.BoardKey, id string) (recording bool, applied bool, err error)
	// Tick performs one periodic accrual step for the board's active timer.
	Tick(ctx context.Context, key domain.BoardKey) error
	// ActiveTimerID returns the recording task's ID, or "".
	ActiveTimerID(ctx context.Context, key domain.BoardKey) (string, error)

	// ClearAll empties the board's five lists; the summary snapshot and the
	// other board are untouched. Confirmation happens upstream.
	ClearAll(ctx context.Context, key domain.BoardKey) error
	// SetSummary replaces the opaque summary snapshot.
	SetSummary(ctx context.Context, key domain.BoardKey, userSummary, aiSummary string) error

	// Transfer moves a task to the other board, preserving its list, in a
	// single transaction over both board slots.
	Transfer(ctx context.Context, from domain.BoardKey, id string) (bool, error)
}
