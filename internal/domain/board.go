package domain

import "time"

// BoardKey identifies one of the two independent boards. Each board has its
// own persisted slot and fully independent state.
type BoardKey string

const (
	BoardExecution BoardKey = "execution"
	BoardPlanning  BoardKey = "planning"
)

// ValidBoardKeys is the canonical set of accepted board keys.
var ValidBoardKeys = map[BoardKey]bool{
	BoardExecution: true, BoardPlanning: true,
}

// Other returns the opposite board, the destination of a cross-board
// transfer.
func (k BoardKey) Other() BoardKey {
	if k == BoardExecution {
		return BoardPlanning
	}
	return BoardExecution
}

// ListID names one of the five task sequences of a board. All list access
// goes through List/SetList dispatch on these identifiers; there is no
// field-name introspection anywhere.
type ListID string

const (
	ListLongTerm ListID = "longTerm"
	ListDoing    ListID = "doing"
	ListTodo     ListID = "todo"
	ListDone     ListID = "done"
	ListDeleted  ListID = "deleted"
)

// Lists enumerates the five sequences in their canonical order.
var Lists = []ListID{ListLongTerm, ListDoing, ListTodo, ListDone, ListDeleted}

// ValidLists is the canonical set of accepted list identifiers.
var ValidLists = map[ListID]bool{
	ListLongTerm: true, ListDoing: true, ListTodo: true,
	ListDone: true, ListDeleted: true,
}

// Summary is the opaque snapshot stored alongside the lists. The core never
// interprets it; clear-all preserves it.
type Summary struct {
	UserSummary string
	AISummary   string
	Timestamp   time.Time
}

// BoardState is the aggregate root: five ordered task sequences plus the
// optional summary snapshot.
type BoardState struct {
	LongTerm []Task
	Doing    []Task
	Todo     []Task
	Done     []Task
	Deleted  []Task
	Summary  *Summary
}

// NewBoardState returns an empty board.
func NewBoardState() *BoardState {
	return &BoardState{}
}

// List returns the sequence named by id. Unknown identifiers return nil.
func (b *BoardState) List(id ListID) []Task {
	switch id {
	case ListLongTerm:
		return b.LongTerm
	case ListDoing:
		return b.Doing
	case ListTodo:
		return b.Todo
	case ListDone:
		return b.Done
	case ListDeleted:
		return b.Deleted
	}
	return nil
}

// SetList replaces the sequence named by id. Unknown identifiers are
// ignored.
func (b *BoardState) SetList(id ListID, tasks []Task) {
	switch id {
	case ListLongTerm:
		b.LongTerm = tasks
	case ListDoing:
		b.Doing = tasks
	case ListTodo:
		b.Todo = tasks
	case ListDone:
		b.Done = tasks
	case ListDeleted:
		b.Deleted = tasks
	}
}

// Find locates a task by ID across all five sequences. The returned task is
// a copy; ok is false if the ID is not on the board.
func (b *BoardState) Find(id string) (task Task, list ListID, ok bool) {
	for _, lid := range Lists {
		for _, t := range b.List(lid) {
			if t.ID == id {
				return t, lid, true
			}
		}
	}
	return Task{}, "", false
}

// IndexIn returns the position of the task with the given ID in the named
// sequence, or -1 if absent.
func (b *BoardState) IndexIn(list ListID, id string) int {
	for i, t := range b.List(list) {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Update applies fn to the task with the given ID wherever it lives,
// replacing the element in a fresh copy of its sequence so tasks referenced
// from older snapshots are never mutated. Reports whether the ID was found.
func (b *BoardState) Update(id string, fn func(*Task)) bool {
	for _, lid := range Lists {
		tasks := b.List(lid)
		for i := range tasks {
			if tasks[i].ID == id {
				next := make([]Task, len(tasks))
				copy(next, tasks)
				fn(&next[i])
				b.SetList(lid, next)
				return true
			}
		}
	}
	return false
}

// ActiveTimerID scans for the task with isRecording set. At most one such
// task exists in any reachable state; empty means no active timer.
func (b *BoardState) ActiveTimerID() string {
	for _, lid := range Lists {
		for _, t := range b.List(lid) {
			if t.IsRecording {
				return t.ID
			}
		}
	}
	return ""
}

// TaskCount is the total number of tasks across all five sequences.
func (b *BoardState) TaskCount() int {
	n := 0
	for _, lid := range Lists {
		n += len(b.List(lid))
	}
	return n
}

// Clear empties all five sequences, preserving only the summary snapshot.
func (b *BoardState) Clear() {
	for _, lid := range Lists {
		b.SetList(lid, nil)
	}
}

// Reconcile applies load reconciliation to every task on the board. After
// it returns, no task on the board is recording.
func (b *BoardState) Reconcile(loadedAt time.Time) {
	for _, lid := range Lists {
		tasks := b.List(lid)
		for i := range tasks {
			tasks[i].Reconcile(loadedAt)
		}
	}
}
