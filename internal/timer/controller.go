// Package timer owns the single-active-timer rule: at most one task on a
// board accrues duration at any instant.
package timer

import (
	"time"

	"github.com/mwliu/focusboard/internal/domain"
)

// Controller tracks which task is currently being timed on one board and
// performs accrual. The active ID is derived from the board on Attach and
// kept consistent by routing every recording-flag change through the
// controller; it never drifts from the list contents.
type Controller struct {
	board  *domain.BoardState
	active string
}

// NewController creates a controller bound to the given board. The active
// timer is recovered by scanning for a recording task; a freshly reconciled
// board has none.
func NewController(board *domain.BoardState) *Controller {
	c := &Controller{}
	c.Attach(board)
	return c
}

// Attach rebinds the controller to a board and re-derives the active timer.
func (c *Controller) Attach(board *domain.BoardState) {
	c.board = board
	c.active = board.ActiveTimerID()
}

// ActiveID returns the ID of the task currently accruing time, or "".
func (c *Controller) ActiveID() string {
	return c.active
}

// Start makes taskID the active timer at now. Any other recording task is
// accrued and stopped first. Starting also re-opens the task (clears done
// state, sets the start time if unset). Unknown IDs are a no-op.
func (c *Controller) Start(taskID string, now time.Time) {
	if c.active != "" && c.active != taskID {
		c.board.Update(c.active, func(t *domain.Task) { t.StopRecording(now) })
		c.active = ""
	}
	if c.board.Update(taskID, func(t *domain.Task) { t.StartRecording(now) }) {
		c.active = taskID
	}
}

// Stop accrues the open interval of taskID and clears its recording state.
// No-op if the task is not recording or unknown.
func (c *Controller) Stop(taskID string, now time.Time) {
	c.board.Update(taskID, func(t *domain.Task) { t.StopRecording(now) })
	if c.active == taskID {
		c.active = ""
	}
}

// Strip drops taskID's recording flags without accruing the open interval.
// Used when a transition discards the open interval by contract.
func (c *Controller) Strip(taskID string) {
	c.board.Update(taskID, func(t *domain.Task) { t.StripRecording() })
	if c.active == taskID {
		c.active = ""
	}
}

// StopActive stops whichever task is recording, if any.
func (c *Controller) StopActive(now time.Time) {
	if c.active != "" {
		c.Stop(c.active, now)
	}
}

// Toggle stops taskID if it is recording, otherwise starts it (which
// implicitly stops any other active timer). Returns true if the task is
// recording afterwards.
func (c *Controller) Toggle(taskID string, now time.Time) bool {
	if c.active == taskID {
		c.Stop(taskID, now)
		return false
	}
	c.Start(taskID, now)
	return c.active == taskID
}

// Tick advances the active timer's accrual checkpoint to now, adding the
// whole seconds elapsed since the previous checkpoint. The periodic caller
// only schedules ticks while a timer is active; a tick with no active timer
// is a no-op.
func (c *Controller) Tick(now time.Time) {
	if c.active == "" {
		return
	}
	c.board.Update(c.active, func(t *domain.Task) { t.Accrue(now) })
}
