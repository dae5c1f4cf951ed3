package services

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/nightfall/internal/clock"
	"github.com/KirkDiggler/nightfall/internal/constraints"
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/render"
	"github.com/KirkDiggler/nightfall/internal/repositories/runs"
	"github.com/KirkDiggler/nightfall/internal/services/assignment"
	"github.com/KirkDiggler/nightfall/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	AssignmentService assignment.Service
	Renderer          *render.Renderer
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Catalog       *catalog.Catalog   // Required
	Policy        constraints.Policy // Optional
	RunRepository runs.Repository    // Optional, falls back to in-memory
	TemplateDir   string             // Optional, overrides the embedded templates
	UUIDGenerator uuid.Generator     // Optional
	Clock         clock.Clock        // Optional
	Logger        *zap.Logger        // Optional
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	// Use in-memory repository if none provided
	runRepo := cfg.RunRepository
	if runRepo == nil {
		runRepo = runs.NewInMemoryRepository()
	}

	renderer, err := render.NewRenderer(&render.RendererConfig{
		TemplateDir: cfg.TemplateDir,
	})
	if err != nil {
		return nil, err
	}

	assignmentService := assignment.NewService(&assignment.ServiceConfig{
		Catalog:       cfg.Catalog,
		Repository:    runRepo,
		Policy:        cfg.Policy,
		UUIDGenerator: cfg.UUIDGenerator,
		Clock:         cfg.Clock,
		Logger:        cfg.Logger,
	})

	return &Provider{
		AssignmentService: assignmentService,
		Renderer:          renderer,
	}, nil
}
