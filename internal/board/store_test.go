package board

import (
	"strings"
	"testing"
	"time"

	"github.com/mwliu/focusboard/internal/domain"
	"github.com/mwliu/focusboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// assertMembership checks the structural invariants: every ID appears on
// exactly one list, and at most one task records.
func assertMembership(t *testing.T, state *domain.BoardState) {
	t.Helper()
	seen := map[string]domain.ListID{}
	recording := 0
	for _, lid := range domain.Lists {
		for _, task := range state.List(lid) {
			prev, dup := seen[task.ID]
			require.False(t, dup, "task %s on both %s and %s", task.ID, prev, lid)
			seen[task.ID] = lid
			if task.IsRecording {
				recording++
				require.NotNil(t, task.LastRecord, "recording task must carry a checkpoint")
			} else {
				require.Nil(t, task.LastRecord, "idle task must not carry a checkpoint")
			}
		}
	}
	require.LessOrEqual(t, recording, 1)
}

func TestCreate_Todo(t *testing.T) {
	s := NewStore(domain.NewBoardState())
	task, err := s.Create("学会了React", domain.ListTodo, t0)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.CategoryGrowth, task.Category)
	assert.False(t, task.IsDone)
	assert.Nil(t, task.StartTime)
	assert.False(t, task.IsRecording)
	assert.Equal(t, 1, len(s.State().Todo))
	assertMembership(t, s.State())
}

func TestCreate_DoingStartsTimer(t *testing.T) {
	s := NewStore(domain.NewBoardState())
	task, err := s.Create("项目排期", domain.ListDoing, t0)
	require.NoError(t, err)

	assert.True(t, task.IsRecording)
	require.NotNil(t, task.StartTime)
	assert.Equal(t, t0, *task.StartTime)
	assert.Equal(t, task.ID, s.Timer().ActiveID())
	assertMembership(t, s.State())
}

func TestCreate_DoingStopsPreviousTimer(t *testing.T) {
	s := NewStore(domain.NewBoardState())
	first, err := s.Create("first", domain.ListDoing, t0)
	require.NoError(t, err)

	second, err := s.Create("second", domain.ListDoing, t0.Add(3*time.Second))
	require.NoError(t, err)

	prev, _, _ := s.State().Find(first.ID)
	assert.False(t, prev.IsRecording)
	assert.Equal(t, int64(3), prev.DurationSec)
	assert.Equal(t, second.ID, s.Timer().ActiveID())
	assertMembership(t, s.State())
}

func TestCreate_Done(t *testing.T) {
	s := NewStore(domain.NewBoardState())
	task, err := s.Create("already finished", domain.ListDone, t0)
	require.NoError(t, err)

	assert.True(t, task.IsDone)
	require.NotNil(t, task.EndTime)
	assert.Equal(t, t0, *task.EndTime)
	assert.Nil(t, task.StartTime)
}

func TestCreate_InvalidTarget(t *testing.T) {
	s := NewStore(domain.NewBoardState())
	_, err := s.Create("x", domain.ListDeleted, t0)
	require.Error(t, err)
	_, err = s.Create("x", domain.ListLongTerm, t0)
	require.Error(t, err)
}

func TestStartWork_FromTodo(t *testing.T) {
	task := testutil.NewTestTask("backlog item")
	s := NewStore(testutil.NewTestBoard(task))

	require.True(t, s.StartWork(task.ID, t0))

	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListDoing, list)
	assert.True(t, got.IsRecording)
	require.NotNil(t, got.StartTime)
	assert.Equal(t, task.ID, s.Timer().ActiveID())
	assertMembership(t, s.State())
}

func TestStartWork_FromDoneReopens(t *testing.T) {
	task := testutil.NewTestTask("done item", testutil.WithDone(t0))
	state := domain.NewBoardState()
	state.Done = []domain.Task{task}
	s := NewStore(state)

	require.True(t, s.StartWork(task.ID, t0.Add(time.Minute)))

	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListDoing, list)
	assert.False(t, got.IsDone)
	assert.Nil(t, got.EndTime)
	assert.True(t, got.IsRecording)
}

func TestStartWork_DeletedRefused(t *testing.T) {
	task := testutil.NewTestTask("gone")
	state := domain.NewBoardState()
	state.Deleted = []domain.Task{task}
	s := NewStore(state)

	assert.False(t, s.StartWork(task.ID, t0))
	_, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListDeleted, list)
}

func TestStartWork_UnknownID(t *testing.T) {
	s := NewStore(testutil.NewTestBoard(testutil.NewTestTask("x")))
	assert.False(t, s.StartWork("nope", t0))
}

func TestComplete_StopsTimerAndAccrues(t *testing.T) {
	task := testutil.NewTestTask("active work")
	s := NewStore(testutil.NewTestBoard(task))
	require.True(t, s.StartWork(task.ID, t0))

	require.True(t, s.Complete(task.ID, t0.Add(5*time.Second)))

	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListDone, list)
	assert.True(t, got.IsDone)
	require.NotNil(t, got.EndTime)
	assert.Equal(t, int64(5), got.DurationSec)
	assert.False(t, got.IsRecording)
	assert.Equal(t, "", s.Timer().ActiveID())
	assertMembership(t, s.State())
}

func TestComplete_FromTodo(t *testing.T) {
	task := testutil.NewTestTask("quick win")
	s := NewStore(testutil.NewTestBoard(task))

	require.True(t, s.Complete(task.ID, t0))
	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListDone, list)
	assert.True(t, got.IsDone)
	assert.Equal(t, int64(0), got.DurationSec)
}

func TestReopen_StopsTimerWithAccrual(t *testing.T) {
	task := testutil.NewTestTask("in flight")
	s := NewStore(testutil.NewTestBoard(task))
	require.True(t, s.StartWork(task.ID, t0))

	require.True(t, s.Reopen(task.ID, t0.Add(4*time.Second)))

	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListTodo, list)
	assert.Equal(t, int64(4), got.DurationSec, "open interval accrues before the move")
	assert.Nil(t, got.StartTime)
	assert.Nil(t, got.EndTime)
	assert.False(t, got.IsDone)
	assert.Equal(t, "", s.Timer().ActiveID())
	assertMembership(t, s.State())
}

func TestPromote_FromDoingKeepsTimer(t *testing.T) {
	task := testutil.NewTestTask("big theme")
	s := NewStore(testutil.NewTestBoard(task))
	require.True(t, s.StartWork(task.ID, t0))

	require.True(t, s.Promote(task.ID))

	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListLongTerm, list)
	assert.True(t, got.IsRecording, "timer survives promotion out of doing")
	assert.Equal(t, task.ID, s.Timer().ActiveID())
	assertMembership(t, s.State())
}

func TestPromote_FromTodoStripsWithoutAccrual(t *testing.T) {
	checkpoint := t0
	task := testutil.NewTestTask("stale", testutil.WithRecording(checkpoint))
	s := NewStore(testutil.NewTestBoard(task))

	require.True(t, s.Promote(task.ID))

	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListLongTerm, list)
	assert.False(t, got.IsRecording)
	assert.Nil(t, got.LastRecord)
	assert.Equal(t, int64(0), got.DurationSec, "open interval discarded, not accrued")
	assertMembership(t, s.State())
}

func TestPromote_InvalidSources(t *testing.T) {
	longTerm := testutil.NewTestTask("already there")
	deleted := testutil.NewTestTask("gone")
	state := domain.NewBoardState()
	state.LongTerm = []domain.Task{longTerm}
	state.Deleted = []domain.Task{deleted}
	s := NewStore(state)

	assert.False(t, s.Promote(longTerm.ID))
	assert.False(t, s.Promote(deleted.ID))
	assert.False(t, s.Promote("nope"))
}

func TestDiary_RewritesDoneEntry(t *testing.T) {
	task := testutil.NewTestTask("shipped it", testutil.WithCategory(domain.CategoryWork), testutil.WithDone(t0))
	other := testutil.NewTestTask("other", testutil.WithDone(t0))
	state := domain.NewBoardState()
	state.Done = []domain.Task{task, other}
	s := NewStore(state)

	require.True(t, s.Diary(task.ID, t0))

	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListDone, list)
	assert.True(t, strings.HasPrefix(got.Content, "2025-06-15T10:00:00Z\n"))
	assert.True(t, strings.HasSuffix(got.Content, "shipped it\n"))
	assert.Equal(t, domain.CategoryLife, got.Category)
	// Re-created at the end of the list.
	assert.Equal(t, task.ID, s.State().Done[1].ID)
	assertMembership(t, s.State())
}

func TestDiary_OnlyFromDone(t *testing.T) {
	task := testutil.NewTestTask("not done yet")
	s := NewStore(testutil.NewTestBoard(task))
	assert.False(t, s.Diary(task.ID, t0))
}

func TestSoftDelete_PreservesFieldsAndStopsTimer(t *testing.T) {
	task := testutil.NewTestTask("doomed", testutil.WithDuration(10), testutil.WithExecutionCount(2))
	s := NewStore(testutil.NewTestBoard(task))
	require.True(t, s.StartWork(task.ID, t0))

	require.True(t, s.SoftDelete(task.ID, t0.Add(3*time.Second)))

	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListDeleted, list)
	assert.Equal(t, int64(13), got.DurationSec)
	assert.Equal(t, 2, got.ExecutionCount)
	assert.False(t, got.IsRecording)
	assert.Equal(t, "", s.Timer().ActiveID())
	assertMembership(t, s.State())
}

func TestSoftDelete_AlreadyDeleted(t *testing.T) {
	task := testutil.NewTestTask("gone")
	state := domain.NewBoardState()
	state.Deleted = []domain.Task{task}
	s := NewStore(state)
	assert.False(t, s.SoftDelete(task.ID, t0))
}

func TestRestore_RoundTrip(t *testing.T) {
	task := testutil.NewTestTask("phoenix", testutil.WithDuration(42), testutil.WithDone(t0))
	state := domain.NewBoardState()
	state.Done = []domain.Task{task}
	s := NewStore(state)

	require.True(t, s.SoftDelete(task.ID, t0))
	require.True(t, s.Restore(task.ID))

	got, list, _ := s.State().Find(task.ID)
	assert.Equal(t, domain.ListTodo, list, "restore always lands in todo")
	assert.Equal(t, int64(42), got.DurationSec)
	assert.True(t, got.IsDone, "fields ride along untouched")
	assertMembership(t, s.State())
}

func TestRestore_NotDeleted(t *testing.T) {
	task := testutil.NewTestTask("alive")
	s := NewStore(testutil.NewTestBoard(task))
	assert.False(t, s.Restore(task.ID))
}

func TestEditContent(t *testing.T) {
	task := testutil.NewTestTask("typo", testutil.WithCategory(domain.CategoryWork))
	s := NewStore(testutil.NewTestBoard(task))

	require.True(t, s.EditContent(task.ID, "学会了React"))
	got, _, _ := s.State().Find(task.ID)
	assert.Equal(t, "学会了React", got.Content)
	assert.Equal(t, domain.CategoryWork, got.Category, "category is not re-derived on edit")

	assert.False(t, s.EditContent("nope", "x"))
}

func TestIncrementCount(t *testing.T) {
	task := testutil.NewTestTask("daily run")
	s := NewStore(testutil.NewTestBoard(task))

	require.True(t, s.IncrementCount(task.ID))
	require.True(t, s.IncrementCount(task.ID))
	got, _, _ := s.State().Find(task.ID)
	assert.Equal(t, 2, got.ExecutionCount)
}

func TestToggleTimer(t *testing.T) {
	task := testutil.NewTestTask("on off")
	s := NewStore(testutil.NewTestBoard(task))

	recording, found := s.ToggleTimer(task.ID, t0)
	assert.True(t, found)
	assert.True(t, recording)

	recording, found = s.ToggleTimer(task.ID, t0.Add(2*time.Second))
	assert.True(t, found)
	assert.False(t, recording)

	got, _, _ := s.State().Find(task.ID)
	assert.Equal(t, int64(2), got.DurationSec)

	_, found = s.ToggleTimer("nope", t0)
	assert.False(t, found)
}

func TestClearAll_PreservesSummaryAndResetsTimer(t *testing.T) {
	task := testutil.NewTestTask("x")
	s := NewStore(testutil.NewTestBoard(task))
	s.SetSummary(domain.Summary{UserSummary: "keep me", Timestamp: t0})
	require.True(t, s.StartWork(task.ID, t0))

	s.ClearAll()

	assert.Equal(t, 0, s.State().TaskCount())
	assert.Equal(t, "", s.Timer().ActiveID())
	require.NotNil(t, s.State().Summary)
	assert.Equal(t, "keep me", s.State().Summary.UserSummary)
}

func TestTakePut_TransferHalves(t *testing.T) {
	task := testutil.NewTestTask("traveler")
	src := NewStore(testutil.NewTestBoard(task))
	require.True(t, src.StartWork(task.ID, t0))

	moved, list, ok := src.Take(task.ID, t0.Add(3*time.Second))
	require.True(t, ok)
	assert.Equal(t, domain.ListDoing, list)
	assert.False(t, moved.IsRecording, "task leaves the board inert")
	assert.Equal(t, int64(3), moved.DurationSec)
	assert.Equal(t, 0, src.State().TaskCount())
	assert.Equal(t, "", src.Timer().ActiveID())

	dst := NewStore(domain.NewBoardState())
	require.True(t, dst.Put(moved, list))
	got, gotList, _ := dst.State().Find(task.ID)
	assert.Equal(t, domain.ListDoing, gotList)
	assert.Equal(t, int64(3), got.DurationSec)
	assertMembership(t, dst.State())
}

func TestTake_UnknownID(t *testing.T) {
	s := NewStore(domain.NewBoardState())
	_, _, ok := s.Take("nope", t0)
	assert.False(t, ok)
}

func TestPut_InvalidList(t *testing.T) {
	s := NewStore(domain.NewBoardState())
	assert.False(t, s.Put(testutil.NewTestTask("x"), "nonsense"))
}

func TestTransitions_PreserveTaskCount(t *testing.T) {
	a := testutil.NewTestTask("a")
	b := testutil.NewTestTask("b")
	c := testutil.NewTestTask("c")
	s := NewStore(testutil.NewTestBoard(a, b, c))

	s.StartWork(a.ID, t0)
	s.Complete(a.ID, t0.Add(time.Second))
	s.Diary(a.ID, t0.Add(2*time.Second))
	s.StartWork(b.ID, t0.Add(3*time.Second))
	s.Promote(b.ID)
	s.SoftDelete(c.ID, t0.Add(4*time.Second))
	s.Restore(c.ID)
	s.Reopen(a.ID, t0.Add(5*time.Second))

	assert.Equal(t, 3, s.State().TaskCount())
	assertMembership(t, s.State())
}
