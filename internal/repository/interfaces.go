package repository

import (
	"context"
	"time"

	"github.com/mwliu/focusboard/internal/domain"
)

// BoardRepo persists one BoardState per board key.
type BoardRepo interface {
	// Load reads and reconciles a board. A missing or malformed slot yields
	// an empty board, never an error; only storage failures are returned.
	Load(ctx context.Context, key domain.BoardKey, loadedAt time.Time) (*domain.BoardState, error)
	// Save writes the full board document. Serialization is total for valid
	// board states.
	Save(ctx context.Context, key domain.BoardKey, state *domain.BoardState, now time.Time) error
}
