package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/mwliu/focusboard/internal/domain"
)

// ListTitle is the display heading for a task sequence.
func ListTitle(id domain.ListID) string {
	switch id {
	case domain.ListLongTerm:
		return "Long-term"
	case domain.ListDoing:
		return "Doing"
	case domain.ListTodo:
		return "Todo"
	case domain.ListDone:
		return "Done"
	case domain.ListDeleted:
		return "Deleted"
	default:
		return string(id)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatSeconds renders accumulated seconds as 2h03m05s / 3m05s / 42s.
func FormatSeconds(sec int64) string {
	if sec <= 0 {
		return "0s"
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FirstLine returns the first line of possibly multi-line task content.
func FirstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[:i]
	}
	return content
}

// TaskLine renders one task as a single display row.
func TaskLine(t domain.Task) string {
	var b strings.Builder

	switch {
	case t.IsRecording:
		b.WriteString(StyleRed.Render("⏺"))
	case t.IsDone:
		b.WriteString(StyleGreen.Render("✓"))
	default:
		b.WriteString(StyleDim.Render("·"))
	}
	b.WriteString(" ")
	b.WriteString(TruncID(t.ID))
	b.WriteString(" ")
	b.WriteString(CategoryPill(t.Category))
	b.WriteString(" ")
	b.WriteString(FirstLine(t.Content))

	if t.DurationSec > 0 || t.IsRecording {
		b.WriteString(" ")
		b.WriteString(StyleYellow.Render(FormatSeconds(t.DurationSec)))
	}
	if t.ExecutionCount > 0 {
		b.WriteString(" ")
		b.WriteString(Dim(fmt.Sprintf("×%d", t.ExecutionCount)))
	}
	return b.String()
}

// RenderList renders a heading plus the tasks of one sequence.
func RenderList(id domain.ListID, tasks []domain.Task) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s (%d)", ListTitle(id), len(tasks))))
	b.WriteString("\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("  (empty)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, t := range tasks {
		b.WriteString("  ")
		b.WriteString(TaskLine(t))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBoard renders all five sequences of a board.
func RenderBoard(key domain.BoardKey, state *domain.BoardState) string {
	var b strings.Builder
	b.WriteString(Bold(fmt.Sprintf("Board: %s", key)))
	b.WriteString("\n\n")
	for _, lid := range domain.Lists {
		b.WriteString(RenderList(lid, state.List(lid)))
		b.WriteString("\n")
	}
	if state.Summary != nil {
		b.WriteString(Header("Summary"))
		b.WriteString("\n  ")
		b.WriteString(FirstLine(state.Summary.UserSummary))
		b.WriteString(" ")
		b.WriteString(Dim(HumanTimestamp(state.Summary.Timestamp)))
		b.WriteString("\n")
	}
	return b.String()
}
