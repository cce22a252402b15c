package domain

import "time"

// Task is the unit entity tracked on a board. Tasks are held by value; every
// store operation works on a copy and writes back a fresh slice, so a task in
// an old snapshot is never mutated in place.
type Task struct {
	ID             string
	Content        string
	Category       Category
	IsDone         bool
	StartTime      *time.Time
	EndTime        *time.Time
	DurationSec    int64
	ExecutionCount int
	IsRecording    bool
	LastRecord     *time.Time
}

// elapsedWholeSeconds floors the interval between checkpoint and now to whole
// seconds. Sub-second remainders are dropped, not carried forward; that
// truncation is part of the accrual contract. A negative interval (clock
// moved backwards) counts as zero so DurationSec stays monotone.
func elapsedWholeSeconds(checkpoint, now time.Time) int64 {
	d := now.Sub(checkpoint)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// Accrue adds the whole seconds elapsed since the last checkpoint to
// DurationSec and advances the checkpoint to now. No-op unless recording.
func (t *Task) Accrue(now time.Time) {
	if !t.IsRecording || t.LastRecord == nil {
		return
	}
	t.DurationSec += elapsedWholeSeconds(*t.LastRecord, now)
	checkpoint := now
	t.LastRecord = &checkpoint
}

// StartRecording marks the task as the active timer. Starting also re-opens
// a completed task: the done flag and end time are cleared, and the start
// time is set if it was never set.
func (t *Task) StartRecording(now time.Time) {
	if t.StartTime == nil {
		start := now
		t.StartTime = &start
	}
	t.EndTime = nil
	t.IsDone = false
	t.IsRecording = true
	checkpoint := now
	t.LastRecord = &checkpoint
}

// StopRecording accrues the open interval and clears the recording state.
// No-op if the task is not recording.
func (t *Task) StopRecording(now time.Time) {
	if !t.IsRecording {
		return
	}
	t.Accrue(now)
	t.IsRecording = false
	t.LastRecord = nil
}

// Complete marks the task done at now. The caller is responsible for
// stopping the timer first.
func (t *Task) Complete(now time.Time) {
	end := now
	t.EndTime = &end
	t.IsDone = true
}

// Reopen clears completion and timing marks so the task reads as fresh
// backlog. Accumulated duration is kept.
func (t *Task) Reopen() {
	t.StartTime = nil
	t.EndTime = nil
	t.IsDone = false
}

// StripRecording drops the recording flags without accruing. Used when a
// task is promoted out of a context where its open interval is discarded.
func (t *Task) StripRecording() {
	t.IsRecording = false
	t.LastRecord = nil
}

// FoldIntoDiary rewrites the task as a diary entry: the content is prefixed
// with an RFC3339 timestamp line and the category is forced to Life.
func (t *Task) FoldIntoDiary(now time.Time) {
	t.Content = now.UTC().Format(time.RFC3339) + "\n" + t.Content + "\n"
	t.Category = CategoryLife
}

// IncrementExecution bumps the manual repeat counter. Unrelated to timing.
func (t *Task) IncrementExecution() {
	t.ExecutionCount++
}

// Reconcile performs the one-time load reconciliation: accrue the open
// interval up to the load timestamp, then force the recording state off so a
// timer never silently resumes across a restart.
func (t *Task) Reconcile(loadedAt time.Time) {
	if !t.IsRecording {
		return
	}
	if t.LastRecord != nil {
		t.DurationSec += elapsedWholeSeconds(*t.LastRecord, loadedAt)
	}
	t.IsRecording = false
	t.LastRecord = nil
}
