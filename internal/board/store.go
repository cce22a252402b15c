// Package board implements the task store: the only mutator of a board's
// state. Every lifecycle transition is one move of a task between the five
// sequences, and the membership and uniqueness invariants hold under every
// operation.
package board

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwliu/focusboard/internal/classify"
	"github.com/mwliu/focusboard/internal/domain"
	"github.com/mwliu/focusboard/internal/timer"
)

// Store mutates one board's state. Mutations targeting an ID absent from the
// expected source list are silent no-ops (the caller may hold a stale
// reference); the boolean results report whether anything changed.
type Store struct {
	state *domain.BoardState
	timer *timer.Controller
}

// NewStore wraps an already-reconciled board state.
func NewStore(state *domain.BoardState) *Store {
	return &Store{state: state, timer: timer.NewController(state)}
}

// State exposes the board for reading. Callers must not mutate it.
func (s *Store) State() *domain.BoardState {
	return s.state
}

// Timer exposes the board's timer controller.
func (s *Store) Timer() *timer.Controller {
	return s.timer
}

// move removes the task with the given ID from the source sequence, applies
// transform to a copy, and appends the result to the destination sequence.
// Both sequences are replaced wholesale; nothing is mutated in place.
// Reports false (no-op) if the ID is not in the source sequence.
func (s *Store) move(id string, from, to domain.ListID, transform func(*domain.Task)) bool {
	idx := s.state.IndexIn(from, id)
	if idx < 0 {
		return false
	}

	src := s.state.List(from)
	task := src[idx]

	removed := make([]domain.Task, 0, len(src)-1)
	removed = append(removed, src[:idx]...)
	removed = append(removed, src[idx+1:]...)

	if transform != nil {
		transform(&task)
	}

	if from == to {
		s.state.SetList(to, append(removed, task))
		return true
	}

	dst := s.state.List(to)
	next := make([]domain.Task, 0, len(dst)+1)
	next = append(next, dst...)
	next = append(next, task)

	s.state.SetList(from, removed)
	s.state.SetList(to, next)
	return true
}

// Create classifies content, builds a new task, and appends it to the target
// list. A task created directly into doing starts its timer immediately;
// one created into done is already complete. Only todo, doing and done are
// valid targets.
func (s *Store) Create(content string, target domain.ListID, now time.Time) (domain.Task, error) {
	switch target {
	case domain.ListTodo, domain.ListDoing, domain.ListDone:
	default:
		return domain.Task{}, fmt.Errorf("creating task: invalid target list %q", target)
	}

	task := domain.Task{
		ID:       uuid.New().String(),
		Content:  content,
		Category: classify.Category(content),
	}
	switch target {
	case domain.ListDoing:
		start := now
		task.StartTime = &start
	case domain.ListDone:
		end := now
		task.EndTime = &end
		task.IsDone = true
	}

	dst := s.state.List(target)
	next := make([]domain.Task, 0, len(dst)+1)
	next = append(next, dst...)
	next = append(next, task)
	s.state.SetList(target, next)

	if target == domain.ListDoing {
		s.timer.Start(task.ID, now)
	}

	created, _, _ := s.state.Find(task.ID)
	return created, nil
}

// StartWork moves a task into doing and starts its timer, stopping any other
// active timer first. Starting re-opens a completed task.
func (s *Store) StartWork(id string, now time.Time) bool {
	_, from, ok := s.state.Find(id)
	if !ok || from == domain.ListDeleted {
		return false
	}
	s.timer.Start(id, now)
	if from != domain.ListDoing {
		s.move(id, from, domain.ListDoing, nil)
	}
	return true
}

// Complete moves a task into done, stopping its timer first if it is the
// one recording.
func (s *Store) Complete(id string, now time.Time) bool {
	_, from, ok := s.state.Find(id)
	if !ok {
		return false
	}
	s.timer.Stop(id, now)
	return s.move(id, from, domain.ListDone, func(t *domain.Task) { t.Complete(now) })
}

// Reopen moves a task back to the todo backlog, clearing its completion and
// timing marks. The timer is stopped (with accrual) if it was recording.
func (s *Store) Reopen(id string, now time.Time) bool {
	_, from, ok := s.state.Find(id)
	if !ok {
		return false
	}
	s.timer.Stop(id, now)
	return s.move(id, from, domain.ListTodo, func(t *domain.Task) { t.Reopen() })
}

// Promote moves a task from doing, todo or done into longTerm. Timer state
// survives only when the source is doing; from anywhere else the recording
// flags are stripped without accrual.
func (s *Store) Promote(id string) bool {
	_, from, ok := s.state.Find(id)
	if !ok {
		return false
	}
	switch from {
	case domain.ListDoing, domain.ListTodo, domain.ListDone:
	default:
		return false
	}
	if from != domain.ListDoing {
		s.timer.Strip(id)
	}
	return s.move(id, from, domain.ListLongTerm, nil)
}

// Diary rewrites a completed task as a diary entry: the content gains a
// timestamp prefix line and the category is forced to Life. The task stays
// in done (moved to the end, as a re-created entry).
func (s *Store) Diary(id string, now time.Time) bool {
	return s.move(id, domain.ListDone, domain.ListDone, func(t *domain.Task) { t.FoldIntoDiary(now) })
}

// SoftDelete folds a task into the deleted sequence with all fields
// preserved. The timer is stopped first if the task was recording.
func (s *Store) SoftDelete(id string, now time.Time) bool {
	_, from, ok := s.state.Find(id)
	if !ok || from == domain.ListDeleted {
		return false
	}
	s.timer.Stop(id, now)
	return s.move(id, from, domain.ListDeleted, nil)
}

// Restore moves a soft-deleted task back to todo, fields untouched.
func (s *Store) Restore(id string) bool {
	return s.move(id, domain.ListDeleted, domain.ListTodo, nil)
}

// EditContent replaces a task's text in place. List membership, category
// and timing fields are untouched.
func (s *Store) EditContent(id, content string) bool {
	return s.state.Update(id, func(t *domain.Task) { t.Content = content })
}

// IncrementCount bumps a task's manual repeat counter.
func (s *Store) IncrementCount(id string) bool {
	return s.state.Update(id, func(t *domain.Task) { t.IncrementExecution() })
}

// ToggleTimer stops the task's timer if it is recording, otherwise starts
// it. Returns (recording-after, found).
func (s *Store) ToggleTimer(id string, now time.Time) (bool, bool) {
	if _, _, ok := s.state.Find(id); !ok {
		return false, false
	}
	return s.timer.Toggle(id, now), true
}

// Tick performs one periodic accrual step for the active timer.
func (s *Store) Tick(now time.Time) {
	s.timer.Tick(now)
}

// ClearAll empties all five sequences. The summary snapshot survives.
func (s *Store) ClearAll() {
	s.state.Clear()
	s.timer.Attach(s.state)
}

// SetSummary replaces the opaque summary snapshot.
func (s *Store) SetSummary(sum domain.Summary) {
	s.state.Summary = &sum
}

// Take removes a task from the board and returns it together with the list
// it lived in. Used by the cross-board transfer; the timer is stopped (with
// accrual) first so the task leaves the board inert.
func (s *Store) Take(id string, now time.Time) (domain.Task, domain.ListID, bool) {
	task, from, ok := s.state.Find(id)
	if !ok {
		return domain.Task{}, "", false
	}
	if task.IsRecording {
		s.timer.Stop(id, now)
		task, _, _ = s.state.Find(id)
	}
	src := s.state.List(from)
	idx := s.state.IndexIn(from, id)
	removed := make([]domain.Task, 0, len(src)-1)
	removed = append(removed, src[:idx]...)
	removed = append(removed, src[idx+1:]...)
	s.state.SetList(from, removed)
	return task, from, true
}

// Put appends a task to the named list, the receiving half of a transfer.
func (s *Store) Put(task domain.Task, list domain.ListID) bool {
	if !domain.ValidLists[list] {
		return false
	}
	dst := s.state.List(list)
	next := make([]domain.Task, 0, len(dst)+1)
	next = append(next, dst...)
	next = append(next, task)
	s.state.SetList(list, next)
	return true
}
