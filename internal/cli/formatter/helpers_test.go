package formatter

import (
	"testing"

	"github.com/mwliu/focusboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		sec  int64
		want string
	}{
		{0, "0s"},
		{-5, "0s"},
		{42, "42s"},
		{185, "3m05s"},
		{3600, "1h00m00s"},
		{7385, "2h03m05s"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatSeconds(tc.sec), "sec=%d", tc.sec)
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", FirstLine("one"))
	assert.Equal(t, "2025-06-15T10:00:00Z", FirstLine("2025-06-15T10:00:00Z\nbody\n"))
	assert.Equal(t, "", FirstLine(""))
}

func TestListTitle(t *testing.T) {
	assert.Equal(t, "Long-term", ListTitle(domain.ListLongTerm))
	assert.Equal(t, "Doing", ListTitle(domain.ListDoing))
	assert.Equal(t, "mystery", ListTitle(domain.ListID("mystery")))
}

func TestTaskLine_ShowsDurationAndCount(t *testing.T) {
	task := domain.Task{
		ID:             "0123456789abcdef",
		Content:        "write report\nwith details",
		Category:       domain.CategoryWork,
		DurationSec:    185,
		ExecutionCount: 2,
	}
	line := TaskLine(task)
	assert.Contains(t, line, "01234567")
	assert.NotContains(t, line, "89abcdef")
	assert.Contains(t, line, "write report")
	assert.NotContains(t, line, "with details")
	assert.Contains(t, line, "3m05s")
	assert.Contains(t, line, "×2")
}

func TestRenderBoard_AllListsPresent(t *testing.T) {
	state := domain.NewBoardState()
	state.Todo = []domain.Task{{ID: "a", Content: "hello", Category: domain.CategoryLife}}
	out := RenderBoard(domain.BoardExecution, state)
	for _, lid := range domain.Lists {
		assert.Contains(t, out, ListTitle(lid))
	}
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "(empty)")
}
