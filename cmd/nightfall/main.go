package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/nightfall/internal/config"
	"github.com/KirkDiggler/nightfall/internal/constraints"
	"github.com/KirkDiggler/nightfall/internal/data"
	"github.com/KirkDiggler/nightfall/internal/delivery"
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/domain/roster"
	"github.com/KirkDiggler/nightfall/internal/errors"
	"github.com/KirkDiggler/nightfall/internal/logging"
	"github.com/KirkDiggler/nightfall/internal/repositories/runs"
	"github.com/KirkDiggler/nightfall/internal/services"
	"github.com/KirkDiggler/nightfall/internal/services/assignment"
)

type options struct {
	players     string
	rosterPath  string
	catalogPath string
	policyPath  string
	seed        string
	outputDir   string
	templateDir string
	rerender    string
	discord     bool
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := options{}
	flag.StringVar(&opts.players, "players", "", "comma separated player names in seat order")
	flag.StringVar(&opts.rosterPath, "roster", "", "YAML roster file (players with optional discord_user_id)")
	flag.StringVar(&opts.catalogPath, "catalog", cfg.Game.CatalogPath, "role and profession catalog (.yaml, .yml or .json); empty uses the built-in catalog")
	flag.StringVar(&opts.policyPath, "policy", cfg.Game.PolicyPath, "TOML alignment policy; empty uses the default policy")
	flag.StringVar(&opts.seed, "seed", "", "replay a run from its seed")
	flag.StringVar(&opts.outputDir, "out", cfg.Game.OutputDir, "output directory for the LaTeX documents")
	flag.StringVar(&opts.templateDir, "templates", cfg.Game.TemplateDir, "directory with player_sheet.tex and narrator_script.tex overrides")
	flag.StringVar(&opts.rerender, "rerender", "", "re-render an archived run by ID instead of generating a new one")
	flag.BoolVar(&opts.discord, "discord", false, "also DM each player their sheet and post the narrator script")
	flag.Parse()

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error("nightfall failed",
			zap.String("code", string(errors.GetCode(err))),
			zap.Any("meta", errors.GetMeta(err)),
			zap.Error(err),
		)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *zap.Logger) error {
	if err := validateOptions(cfg, opts); err != nil {
		return err
	}

	cat, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}

	policy, err := loadPolicy(opts.policyPath)
	if err != nil {
		return err
	}

	providerConfig := &services.ProviderConfig{
		Catalog:     cat,
		Policy:      policy,
		TemplateDir: opts.templateDir,
		Logger:      logger,
	}

	// Try to connect to Redis if URL is provided
	if cfg.Redis.URL != "" {
		client, err := connectRedis(ctx, cfg.Redis.URL)
		switch {
		case err != nil && opts.rerender != "":
			return errors.WrapWithCode(err, errors.CodeConfig, "-rerender needs the Redis run archive")
		case err != nil:
			logger.Warn("Falling back to in-memory run archive", zap.Error(err))
		default:
			defer client.Close()
			providerConfig.RunRepository = runs.NewRedisRepository(&runs.RedisRepoConfig{
				Client: client,
				RunTTL: cfg.Redis.RunTTL,
			})
			logger.Info("Using Redis for the run archive")
		}
	}

	provider, err := services.NewProvider(providerConfig)
	if err != nil {
		return err
	}

	var result *game.Run
	if opts.rerender != "" {
		result, err = provider.AssignmentService.GetRun(ctx, opts.rerender)
	} else {
		result, err = assign(ctx, provider.AssignmentService, opts)
	}
	if err != nil {
		return err
	}

	docs, err := provider.Renderer.RenderRun(ctx, result)
	if err != nil {
		return err
	}

	sinks := []delivery.Sink{delivery.NewFileSink(opts.outputDir, logger)}
	if opts.discord {
		if !cfg.Discord.Enabled() {
			return errors.Configf("-discord needs DISCORD_TOKEN")
		}
		session, err := discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			return fmt.Errorf("failed to create Discord session: %w", err)
		}
		sinks = append(sinks, delivery.NewDiscordSink(&delivery.DiscordSinkConfig{
			Session:           session,
			NarratorChannelID: cfg.Discord.NarratorChannelID,
			Logger:            logger,
		}))
	}

	if err := delivery.Multi(sinks...).Deliver(ctx, result, docs); err != nil {
		return err
	}

	fmt.Printf("Run %s (seed %d): %d players, %s\n", result.ID, result.Seed, result.PlayerCount, result.Realized)
	fmt.Printf("Documents written to %s\n", opts.outputDir)
	return nil
}

// validateOptions rejects flag combinations that cannot succeed before any
// catalog or network work happens
func validateOptions(cfg *config.Config, opts options) error {
	if opts.rerender == "" {
		return nil
	}
	// the in-memory archive starts empty on every invocation
	if cfg.Redis.URL == "" {
		return errors.Configf("-rerender needs REDIS_URL for the run archive")
	}
	if opts.players != "" || opts.rosterPath != "" || opts.seed != "" {
		return errors.Configf("-rerender cannot be combined with -players, -roster or -seed")
	}
	return nil
}

func assign(ctx context.Context, svc assignment.Service, opts options) (*game.Run, error) {
	players, err := loadPlayers(opts)
	if err != nil {
		return nil, err
	}

	input := &assignment.AssignInput{Players: players}
	if opts.seed != "" {
		seed, err := strconv.ParseInt(opts.seed, 10, 64)
		if err != nil {
			return nil, errors.Configf("invalid -seed %q: %v", opts.seed, err)
		}
		input.Seed = &seed
	}

	return svc.Assign(ctx, input)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return data.DefaultCatalog()
	}
	return data.LoadCatalog(path)
}

func loadPolicy(path string) (constraints.Policy, error) {
	if path == "" {
		return constraints.DefaultPolicy(), nil
	}
	return constraints.LoadPolicyFile(path)
}

func loadPlayers(opts options) ([]roster.Player, error) {
	switch {
	case opts.rosterPath != "" && opts.players != "":
		return nil, errors.Configf("use either -players or -roster, not both")
	case opts.rosterPath != "":
		return roster.LoadFile(opts.rosterPath)
	case opts.players != "":
		return roster.ParseList(opts.players)
	}
	return nil, errors.Configf("no players given: use -players or -roster")
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
