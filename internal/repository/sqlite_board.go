package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mwliu/focusboard/internal/db"
	"github.com/mwliu/focusboard/internal/domain"
)

// SQLiteBoardRepo implements BoardRepo on a SQLite key-value slot: one row
// per board, the state column holding the full JSON document.
type SQLiteBoardRepo struct {
	db db.DBTX
}

// NewSQLiteBoardRepo creates a repo over a *sql.DB or a transaction.
func NewSQLiteBoardRepo(dbtx db.DBTX) *SQLiteBoardRepo {
	return &SQLiteBoardRepo{db: dbtx}
}

func (r *SQLiteBoardRepo) Load(ctx context.Context, key domain.BoardKey, loadedAt time.Time) (*domain.BoardState, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT state FROM boards WHERE key = ?`, string(key)).Scan(&raw)
	if err == sql.ErrNoRows {
		return domain.NewBoardState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading board %s: %w", key, err)
	}

	var doc boardDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// Malformed slot: start fresh rather than refuse to start.
		return domain.NewBoardState(), nil
	}

	state := doc.toDomain()
	state.Reconcile(loadedAt)
	return state, nil
}

func (r *SQLiteBoardRepo) Save(ctx context.Context, key domain.BoardKey, state *domain.BoardState, now time.Time) error {
	raw, err := json.Marshal(docFromDomain(state))
	if err != nil {
		return fmt.Errorf("encoding board %s: %w", key, err)
	}
	query := `INSERT INTO boards (key, state, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, string(key), string(raw), now.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing board %s: %w", key, err)
	}
	return nil
}

// ── document mapping ────────────────────────────────────────────────────────

// taskDoc is the wire form of a task. Optional timestamps are RFC3339
// strings except lastRecordTime, which is epoch milliseconds.
type taskDoc struct {
	ID             string          `json:"id"`
	Content        string          `json:"content"`
	Category       domain.Category `json:"category"`
	IsDone         bool            `json:"isDone"`
	StartTime      string          `json:"startTime,omitempty"`
	EndTime        string          `json:"endTime,omitempty"`
	Duration       int64           `json:"duration,omitempty"`
	ExecutionCount int             `json:"executionCount,omitempty"`
	IsRecording    bool            `json:"isRecording,omitempty"`
	LastRecordTime int64           `json:"lastRecordTime,omitempty"`
}

type summaryDoc struct {
	UserSummary string `json:"userSummary"`
	AISummary   string `json:"aiSummary"`
	Timestamp   string `json:"timestamp"`
}

type boardDoc struct {
	LongTerm []taskDoc   `json:"longTerm"`
	Doing    []taskDoc   `json:"doing"`
	Todo     []taskDoc   `json:"todo"`
	Done     []taskDoc   `json:"done"`
	Deleted  []taskDoc   `json:"deleted"`
	Summary  *summaryDoc `json:"summary,omitempty"`
}

func taskFromDomain(t domain.Task) taskDoc {
	d := taskDoc{
		ID:             t.ID,
		Content:        t.Content,
		Category:       t.Category,
		IsDone:         t.IsDone,
		Duration:       t.DurationSec,
		ExecutionCount: t.ExecutionCount,
		IsRecording:    t.IsRecording,
	}
	if t.StartTime != nil {
		d.StartTime = t.StartTime.UTC().Format(time.RFC3339)
	}
	if t.EndTime != nil {
		d.EndTime = t.EndTime.UTC().Format(time.RFC3339)
	}
	if t.LastRecord != nil {
		d.LastRecordTime = t.LastRecord.UnixMilli()
	}
	return d
}

func (d taskDoc) toDomain() domain.Task {
	t := domain.Task{
		ID:             d.ID,
		Content:        d.Content,
		Category:       d.Category,
		IsDone:         d.IsDone,
		DurationSec:    d.Duration,
		ExecutionCount: d.ExecutionCount,
		IsRecording:    d.IsRecording,
	}
	if d.Category == "" || !domain.ValidCategories[d.Category] {
		t.Category = domain.CategoryLife
	}
	t.StartTime = parseDocTime(d.StartTime)
	t.EndTime = parseDocTime(d.EndTime)
	if d.LastRecordTime != 0 {
		last := time.UnixMilli(d.LastRecordTime).UTC()
		t.LastRecord = &last
	}
	return t
}

func docFromDomain(state *domain.BoardState) boardDoc {
	doc := boardDoc{
		LongTerm: tasksFromDomain(state.LongTerm),
		Doing:    tasksFromDomain(state.Doing),
		Todo:     tasksFromDomain(state.Todo),
		Done:     tasksFromDomain(state.Done),
		Deleted:  tasksFromDomain(state.Deleted),
	}
	if state.Summary != nil {
		doc.Summary = &summaryDoc{
			UserSummary: state.Summary.UserSummary,
			AISummary:   state.Summary.AISummary,
			Timestamp:   state.Summary.Timestamp.UTC().Format(time.RFC3339),
		}
	}
	return doc
}

func (d boardDoc) toDomain() *domain.BoardState {
	state := &domain.BoardState{
		LongTerm: tasksToDomain(d.LongTerm),
		Doing:    tasksToDomain(d.Doing),
		Todo:     tasksToDomain(d.Todo),
		Done:     tasksToDomain(d.Done),
		Deleted:  tasksToDomain(d.Deleted),
	}
	if d.Summary != nil {
		state.Summary = &domain.Summary{
			UserSummary: d.Summary.UserSummary,
			AISummary:   d.Summary.AISummary,
		}
		if ts := parseDocTime(d.Summary.Timestamp); ts != nil {
			state.Summary.Timestamp = *ts
		}
	}
	return state
}

func tasksFromDomain(tasks []domain.Task) []taskDoc {
	docs := make([]taskDoc, 0, len(tasks))
	for _, t := range tasks {
		docs = append(docs, taskFromDomain(t))
	}
	return docs
}

func tasksToDomain(docs []taskDoc) []domain.Task {
	if len(docs) == 0 {
		return nil
	}
	tasks := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toDomain())
	}
	return tasks
}

// parseDocTime parses an RFC3339 string; empty or unparseable values map to
// nil rather than failing the whole load.
func parseDocTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
