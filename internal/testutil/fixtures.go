package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mwliu/focusboard/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithCategory(c domain.Category) TaskOption {
	return func(t *domain.Task) {
		t.Category = c
	}
}

func WithDuration(seconds int64) TaskOption {
	return func(t *domain.Task) {
		t.DurationSec = seconds
	}
}

func WithStartTime(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartTime = &at
	}
}

func WithDone(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.IsDone = true
		t.EndTime = &at
	}
}

func WithRecording(checkpoint time.Time) TaskOption {
	return func(t *domain.Task) {
		t.IsRecording = true
		t.LastRecord = &checkpoint
	}
}

func WithExecutionCount(n int) TaskOption {
	return func(t *domain.Task) {
		t.ExecutionCount = n
	}
}

// NewTestTask builds a Life-category task with the given content.
func NewTestTask(content string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:       uuid.New().String(),
		Content:  content,
		Category: domain.CategoryLife,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestBoard builds a board with the given todo tasks.
func NewTestBoard(todo ...domain.Task) *domain.BoardState {
	b := domain.NewBoardState()
	b.Todo = todo
	return b
}
