package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mwliu/focusboard/internal/board"
	"github.com/mwliu/focusboard/internal/db"
	"github.com/mwliu/focusboard/internal/domain"
	"github.com/mwliu/focusboard/internal/repository"
)

type boardService struct {
	repo     repository.BoardRepo
	uow      db.UnitOfWork
	observer UseCaseObserver

	// One in-memory store per board, loaded (and reconciled) on first use.
	// In-memory state is authoritative for the session; saves that fail are
	// logged and absorbed.
	stores map[domain.BoardKey]*board.Store
}

// NewBoardService creates the use-case layer over the persisted boards.
func NewBoardService(repo repository.BoardRepo, uow db.UnitOfWork, observers ...UseCaseObserver) BoardService {
	return &boardService{
		repo:     repo,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		stores:   make(map[domain.BoardKey]*board.Store),
	}
}

func (s *boardService) store(ctx context.Context, key domain.BoardKey) (*board.Store, error) {
	if !domain.ValidBoardKeys[key] {
		return nil, fmt.Errorf("unknown board %q", key)
	}
	if st, ok := s.stores[key]; ok {
		return st, nil
	}
	state, err := s.repo.Load(ctx, key, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("loading board %s: %w", key, err)
	}
	st := board.NewStore(state)
	s.stores[key] = st
	return st, nil
}

// persist writes a board slot after a committed change. A write failure is a
// diagnostic, not an error: the session keeps running on in-memory state.
func (s *boardService) persist(ctx context.Context, key domain.BoardKey) {
	st, ok := s.stores[key]
	if !ok {
		return
	}
	if err := s.repo.Save(ctx, key, st.State(), time.Now().UTC()); err != nil {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "persist-board",
			StartedAt: time.Now().UTC(),
			Success:   false,
			Err:       err,
			Fields:    map[string]any{"board": string(key)},
		})
	}
}

// apply runs one mutation against a board, persists on change, and emits a
// use-case event.
func (s *boardService) apply(ctx context.Context, key domain.BoardKey, name, taskID string, fn func(st *board.Store, now time.Time) bool) (applied bool, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"board": string(key), "task": taskID, "applied": applied},
		})
	}()

	st, err := s.store(ctx, key)
	if err != nil {
		return false, err
	}
	applied = fn(st, startedAt)
	if applied {
		s.persist(ctx, key)
	}
	return applied, nil
}

func (s *boardService) Board(ctx context.Context, key domain.BoardKey) (*domain.BoardState, error) {
	st, err := s.store(ctx, key)
	if err != nil {
		return nil, err
	}
	return st.State(), nil
}

func (s *boardService) Create(ctx context.Context, key domain.BoardKey, content string, target domain.ListID) (task domain.Task, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-task",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"board": string(key), "list": string(target)},
		})
	}()

	st, err := s.store(ctx, key)
	if err != nil {
		return domain.Task{}, err
	}
	task, err = st.Create(content, target, startedAt)
	if err != nil {
		return domain.Task{}, err
	}
	s.persist(ctx, key)
	return task, nil
}

func (s *boardService) StartWork(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return s.apply(ctx, key, "start-work", id, func(st *board.Store, now time.Time) bool {
		return st.StartWork(id, now)
	})
}

func (s *boardService) Complete(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return s.apply(ctx, key, "complete-task", id, func(st *board.Store, now time.Time) bool {
		return st.Complete(id, now)
	})
}

func (s *boardService) Reopen(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return s.apply(ctx, key, "reopen-task", id, func(st *board.Store, now time.Time) bool {
		return st.Reopen(id, now)
	})
}

func (s *boardService) Promote(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return s.apply(ctx, key, "promote-task", id, func(st *board.Store, _ time.Time) bool {
		return st.Promote(id)
	})
}

func (s *boardService) Diary(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return s.apply(ctx, key, "diary-fold", id, func(st *board.Store, now time.Time) bool {
		return st.Diary(id, now)
	})
}

func (s *boardService) Delete(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return s.apply(ctx, key, "delete-task", id, func(st *board.Store, now time.Time) bool {
		return st.SoftDelete(id, now)
	})
}

func (s *boardService) Restore(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return s.apply(ctx, key, "restore-task", id, func(st *board.Store, _ time.Time) bool {
		return st.Restore(id)
	})
}

func (s *boardService) EditContent(ctx context.Context, key domain.BoardKey, id, content string) (bool, error) {
	return s.apply(ctx, key, "edit-content", id, func(st *board.Store, _ time.Time) bool {
		return st.EditContent(id, content)
	})
}

func (s *boardService) IncrementCount(ctx context.Context, key domain.BoardKey, id string) (bool, error) {
	return s.apply(ctx, key, "increment-count", id, func(st *board.Store, _ time.Time) bool {
		return st.IncrementCount(id)
	})
}

func (s *boardService) ToggleTimer(ctx context.Context, key domain.BoardKey, id string) (recording bool, applied bool, err error) {
	applied, err = s.apply(ctx, key, "toggle-timer", id, func(st *board.Store, now time.Time) bool {
		var found bool
		recording, found = st.ToggleTimer(id, now)
		return found
	})
	return recording, applied, err
}

func (s *boardService) Tick(ctx context.Context, key domain.BoardKey) error {
	st, err := s.store(ctx, key)
	if err != nil {
		return err
	}
	if st.Timer().ActiveID() == "" {
		return nil
	}
	st.Tick(time.Now().UTC())
	s.persist(ctx, key)
	return nil
}

func (s *boardService) ActiveTimerID(ctx context.Context, key domain.BoardKey) (string, error) {
	st, err := s.store(ctx, key)
	if err != nil {
		return "", err
	}
	return st.Timer().ActiveID(), nil
}

func (s *boardService) ClearAll(ctx context.Context, key domain.BoardKey) error {
	_, err := s.apply(ctx, key, "clear-board", "", func(st *board.Store, _ time.Time) bool {
		st.ClearAll()
		return true
	})
	return err
}

func (s *boardService) SetSummary(ctx context.Context, key domain.BoardKey, userSummary, aiSummary string) error {
	_, err := s.apply(ctx, key, "set-summary", "", func(st *board.Store, now time.Time) bool {
		st.SetSummary(domain.Summary{
			UserSummary: userSummary,
			AISummary:   aiSummary,
			Timestamp:   now,
		})
		return true
	})
	return err
}

func (s *boardService) Transfer(ctx context.Context, from domain.BoardKey, id string) (applied bool, err error) {
	startedAt := time.Now().UTC()
	dest := from.Other()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "transfer-task",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"from": string(from), "to": string(dest), "task": id, "applied": applied},
		})
	}()

	srcStore, err := s.store(ctx, from)
	if err != nil {
		return false, err
	}
	dstStore, err := s.store(ctx, dest)
	if err != nil {
		return false, err
	}

	task, list, ok := srcStore.Take(id, startedAt)
	if !ok {
		return false, nil
	}
	dstStore.Put(task, list)
	applied = true

	// Both slots commit in one transaction so an interruption can neither
	// lose the task nor duplicate it across boards.
	saveErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteBoardRepo(tx)
		if err := txRepo.Save(ctx, from, srcStore.State(), startedAt); err != nil {
			return err
		}
		return txRepo.Save(ctx, dest, dstStore.State(), startedAt)
	})
	if saveErr != nil {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "persist-board",
			StartedAt: startedAt,
			Success:   false,
			Err:       saveErr,
			Fields:    map[string]any{"board": string(from) + "+" + string(dest)},
		})
	}
	return true, nil
}
