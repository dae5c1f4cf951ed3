package runs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/errors"
)

const (
	// Key patterns
	runKeyPrefix = "run:"
	runIndexKey  = "runs"

	// TTL for archived runs (30 days)
	defaultRunTTL = 30 * 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	RunTTL time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client redis.UniversalClient
	runTTL time.Duration
}

// NewRedisRepository creates a new Redis-backed run repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.RunTTL
	if ttl == 0 {
		ttl = defaultRunTTL
	}

	return &redisRepository{
		client: cfg.Client,
		runTTL: ttl,
	}
}

// Create stores the run as JSON and indexes it by creation time
func (r *redisRepository) Create(ctx context.Context, run *game.Run) error {
	if err := validate(run); err != nil {
		return err
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to serialize run: %w", err)
	}

	created, err := r.client.SetNX(ctx, runKeyPrefix+run.ID, string(data), r.runTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	if !created {
		return errors.AlreadyExistsf("run with ID %s already exists", run.ID)
	}

	// a stored run must always be indexed; undo the write otherwise
	score := float64(run.CreatedAt.UnixMilli())
	if err := r.client.ZAdd(ctx, runIndexKey, redis.Z{Score: score, Member: run.ID}).Err(); err != nil {
		if delErr := r.client.Del(ctx, runKeyPrefix+run.ID).Err(); delErr != nil {
			return fmt.Errorf("failed to index run: %w (cleanup failed: %v)", err, delErr)
		}
		return fmt.Errorf("failed to index run: %w", err)
	}

	return nil
}

// Get retrieves a run by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*game.Run, error) {
	data, err := r.client.Get(ctx, runKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("run not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var run game.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to deserialize run: %w", err)
	}

	return &run, nil
}

// List returns up to limit runs newest first, or every run when limit is not
// positive. Index entries whose run has expired are pruned and the scan
// continues past them.
func (r *redisRepository) List(ctx context.Context, limit int) ([]*game.Run, error) {
	out := make([]*game.Run, 0)
	start := int64(0)

	for {
		stop := int64(-1)
		want := 0
		if limit > 0 {
			want = limit - len(out)
			stop = start + int64(want) - 1
		}

		ids, err := r.client.ZRevRange(ctx, runIndexKey, start, stop).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}

		pruned := 0
		for _, id := range ids {
			run, err := r.Get(ctx, id)
			if errors.IsNotFound(err) {
				if remErr := r.client.ZRem(ctx, runIndexKey, id).Err(); remErr != nil {
					return nil, fmt.Errorf("failed to prune expired run %s: %w", id, remErr)
				}
				pruned++
				continue
			}
			if err != nil {
				return nil, err
			}
			out = append(out, run)
		}

		// pruned members no longer hold a rank, so the next page starts earlier
		if limit <= 0 || pruned == 0 || len(ids) < want {
			return out, nil
		}
		start += int64(len(ids) - pruned)
	}
}
