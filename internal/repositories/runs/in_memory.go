package runs

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu   sync.RWMutex
	runs map[string]*game.Run
}

// NewInMemoryRepository creates a new in-memory run repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		runs: make(map[string]*game.Run),
	}
}

// Create stores a copy of the run
func (r *inMemoryRepository) Create(ctx context.Context, run *game.Run) error {
	if err := validate(run); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[run.ID]; exists {
		return errors.AlreadyExistsf("run with ID %s already exists", run.ID)
	}

	r.runs[run.ID] = run.Clone()
	return nil
}

// Get retrieves a run by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*game.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, exists := r.runs[id]
	if !exists {
		return nil, errors.NotFoundf("run not found: %s", id)
	}

	return run.Clone(), nil
}

// List returns runs newest first
func (r *inMemoryRepository) List(ctx context.Context, limit int) ([]*game.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*game.Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, run.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func validate(run *game.Run) error {
	if run == nil {
		return errors.InvalidArgument("run cannot be nil")
	}
	if run.ID == "" {
		return errors.InvalidArgument("run ID cannot be empty")
	}
	return nil
}
