package assignment

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/nightfall/internal/clock"
	"github.com/KirkDiggler/nightfall/internal/constraints"
	"github.com/KirkDiggler/nightfall/internal/dice"
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/domain/roster"
	"github.com/KirkDiggler/nightfall/internal/errors"
	"github.com/KirkDiggler/nightfall/internal/repositories/runs"
	"github.com/KirkDiggler/nightfall/internal/uuid"
)

// Repository is an alias for the run archive interface
type Repository = runs.Repository

// Service defines the assignment service interface
type Service interface {
	// Assign generates, stamps and archives a run for the given players
	Assign(ctx context.Context, input *AssignInput) (*game.Run, error)

	// GetRun retrieves an archived run by ID
	GetRun(ctx context.Context, runID string) (*game.Run, error)

	// ListRuns lists archived runs newest first; limit <= 0 means all
	ListRuns(ctx context.Context, limit int) ([]*game.Run, error)
}

// AssignInput contains data for generating a run
type AssignInput struct {
	Players []roster.Player
	// Seed replays a previous run; nil draws a fresh seed
	Seed *int64
}

// service implements the Service interface
type service struct {
	generator     *Generator
	repository    Repository
	uuidGenerator uuid.Generator
	clock         clock.Clock
	logger        *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Catalog       *catalog.Catalog   // Required
	Repository    Repository         // Required
	Policy        constraints.Policy // Optional, defaults to constraints.DefaultPolicy
	UUIDGenerator uuid.Generator     // Optional, will use default if nil
	Clock         clock.Clock        // Optional, defaults to the system clock
	Logger        *zap.Logger        // Optional, defaults to a no-op logger
}

// NewService creates a new assignment service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Catalog == nil {
		panic("catalog is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	policy := cfg.Policy
	if policy == nil {
		policy = constraints.DefaultPolicy()
	}

	svc := &service{
		generator:     NewGenerator(cfg.Catalog, policy),
		repository:    cfg.Repository,
		uuidGenerator: cfg.UUIDGenerator,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.clock == nil {
		svc.clock = clock.System()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	return svc
}

// Assign generates, stamps and archives a run for the given players
func (s *service) Assign(ctx context.Context, input *AssignInput) (*game.Run, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	var (
		roller dice.Roller
		seed   int64
	)
	if input.Seed != nil {
		seed = *input.Seed
		roller = dice.NewSeededRoller(seed)
	} else {
		var err error
		roller, seed, err = dice.NewRandomRoller()
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to seed roller")
		}
	}

	run, err := s.generator.Generate(input.Players, roller)
	if err != nil {
		s.logger.Warn("assignment failed",
			zap.Int("players", len(input.Players)),
			zap.Int64("seed", seed),
			zap.String("code", string(errors.GetCode(err))),
			zap.Error(err),
		)
		return nil, err
	}

	run.ID = s.uuidGenerator.New()
	run.Seed = seed
	run.CreatedAt = s.clock.Now()

	if err := s.repository.Create(ctx, run); err != nil {
		return nil, errors.Wrapf(err, "failed to archive run %s", run.ID)
	}

	s.logger.Info("assigned characters",
		zap.String("run_id", run.ID),
		zap.Int("players", run.PlayerCount),
		zap.Int64("seed", run.Seed),
		zap.Stringer("distribution", run.Realized),
	)

	return run, nil
}

// GetRun retrieves an archived run by ID
func (s *service) GetRun(ctx context.Context, runID string) (*game.Run, error) {
	if runID == "" {
		return nil, errors.InvalidArgument("run ID is required")
	}

	run, err := s.repository.Get(ctx, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get run %s", runID)
	}
	return run, nil
}

// ListRuns lists archived runs newest first
func (s *service) ListRuns(ctx context.Context, limit int) ([]*game.Run, error) {
	list, err := s.repository.List(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}
	return list, nil
}
