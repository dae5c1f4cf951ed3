package runs

//go:generate mockgen -destination=mock/mock_repository.go -package=mockruns -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/nightfall/internal/domain/game"
)

// Repository archives assignment runs so documents can be re-rendered later
type Repository interface {
	// Create stores a new run; the ID must be unused
	Create(ctx context.Context, run *game.Run) error

	// Get retrieves a run by ID
	Get(ctx context.Context, id string) (*game.Run, error)

	// List returns up to limit runs, newest first; limit <= 0 means all
	List(ctx context.Context, limit int) ([]*game.Run, error)
}
