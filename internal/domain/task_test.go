package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func recordingTask(checkpoint time.Time) Task {
	return Task{
		ID:          "t1",
		Content:     "write report",
		Category:    CategoryLife,
		IsRecording: true,
		LastRecord:  &checkpoint,
	}
}

func TestAccrue_WholeSeconds(t *testing.T) {
	task := recordingTask(testNow)
	task.Accrue(testNow.Add(3 * time.Second))
	assert.Equal(t, int64(3), task.DurationSec)
	assert.Equal(t, testNow.Add(3*time.Second), *task.LastRecord)
}

func TestAccrue_SubSecondRemainderDropped(t *testing.T) {
	task := recordingTask(testNow)
	task.Accrue(testNow.Add(3500 * time.Millisecond))
	assert.Equal(t, int64(3), task.DurationSec)

	// The checkpoint advanced past the remainder, so the dropped 500ms never
	// comes back on the next step.
	task.Accrue(testNow.Add(4 * time.Second))
	assert.Equal(t, int64(3), task.DurationSec)
}

func TestAccrue_ClockMovedBackwards(t *testing.T) {
	task := recordingTask(testNow)
	task.DurationSec = 10
	task.Accrue(testNow.Add(-time.Minute))
	assert.Equal(t, int64(10), task.DurationSec, "duration must stay monotone")
}

func TestAccrue_NotRecording(t *testing.T) {
	task := Task{ID: "t1", DurationSec: 5}
	task.Accrue(testNow)
	assert.Equal(t, int64(5), task.DurationSec)
	assert.Nil(t, task.LastRecord)
}

func TestStartRecording_SetsStartOnce(t *testing.T) {
	task := Task{ID: "t1"}
	task.StartRecording(testNow)
	require.NotNil(t, task.StartTime)
	assert.Equal(t, testNow, *task.StartTime)
	assert.True(t, task.IsRecording)
	require.NotNil(t, task.LastRecord)
	assert.Equal(t, testNow, *task.LastRecord)

	later := testNow.Add(time.Hour)
	task.StopRecording(later)
	task.StartRecording(later)
	assert.Equal(t, testNow, *task.StartTime, "start time is set once, not on restart")
	assert.Equal(t, later, *task.LastRecord)
}

func TestStartRecording_ReopensCompleted(t *testing.T) {
	end := testNow
	task := Task{ID: "t1", IsDone: true, EndTime: &end}
	task.StartRecording(testNow.Add(time.Minute))
	assert.False(t, task.IsDone)
	assert.Nil(t, task.EndTime)
	assert.True(t, task.IsRecording)
}

func TestStopRecording_AccruesAndClears(t *testing.T) {
	task := recordingTask(testNow)
	task.StopRecording(testNow.Add(7 * time.Second))
	assert.Equal(t, int64(7), task.DurationSec)
	assert.False(t, task.IsRecording)
	assert.Nil(t, task.LastRecord)
}

func TestStopRecording_NotRecording(t *testing.T) {
	task := Task{ID: "t1", DurationSec: 4}
	task.StopRecording(testNow)
	assert.Equal(t, int64(4), task.DurationSec)
}

func TestReopen_KeepsDuration(t *testing.T) {
	start := testNow.Add(-time.Hour)
	end := testNow
	task := Task{ID: "t1", IsDone: true, StartTime: &start, EndTime: &end, DurationSec: 120}
	task.Reopen()
	assert.False(t, task.IsDone)
	assert.Nil(t, task.StartTime)
	assert.Nil(t, task.EndTime)
	assert.Equal(t, int64(120), task.DurationSec)
}

func TestStripRecording_NoAccrual(t *testing.T) {
	task := recordingTask(testNow)
	task.DurationSec = 9
	task.StripRecording()
	assert.Equal(t, int64(9), task.DurationSec, "open interval is discarded, not accrued")
	assert.False(t, task.IsRecording)
	assert.Nil(t, task.LastRecord)
}

func TestFoldIntoDiary(t *testing.T) {
	task := Task{ID: "t1", Content: "shipped the release", Category: CategoryWork}
	task.FoldIntoDiary(testNow)
	assert.Equal(t, "2025-06-15T10:00:00Z\nshipped the release\n", task.Content)
	assert.Equal(t, CategoryLife, task.Category)
}

func TestReconcile_AccruesThenStops(t *testing.T) {
	task := recordingTask(testNow)
	task.DurationSec = 5
	task.Reconcile(testNow.Add(3500 * time.Millisecond))
	assert.Equal(t, int64(8), task.DurationSec)
	assert.False(t, task.IsRecording)
	assert.Nil(t, task.LastRecord)
}

func TestReconcile_RecordingWithoutCheckpoint(t *testing.T) {
	task := Task{ID: "t1", IsRecording: true, DurationSec: 5}
	task.Reconcile(testNow)
	assert.Equal(t, int64(5), task.DurationSec)
	assert.False(t, task.IsRecording)
}

func TestReconcile_NotRecording(t *testing.T) {
	checkpoint := testNow
	task := Task{ID: "t1", DurationSec: 5, LastRecord: &checkpoint}
	task.Reconcile(testNow.Add(time.Hour))
	assert.Equal(t, int64(5), task.DurationSec)
}
