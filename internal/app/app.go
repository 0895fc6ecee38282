package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	raffleapi "raffle-api"
	httpserver "raffle-api/internal/app/http-server"
	"raffle-api/internal/config"
	"raffle-api/internal/domain/dto"
	"raffle-api/internal/domain/models"
	"raffle-api/internal/handlers"
	"raffle-api/internal/lib/jwt"
	"raffle-api/internal/lib/raffle"
	"raffle-api/internal/middlewares"
	"raffle-api/internal/repository/memory"
	"raffle-api/internal/repository/postgres"
	"raffle-api/internal/repository/redis"
	"raffle-api/internal/routes"
	"raffle-api/internal/services"
)

const serviceName = "raffle-api"

type store interface {
	services.UserRepository
	services.PurchaseRepository
	services.AuthRepository
	Close() error
}

type tokenStore interface {
	services.TokenStore
	Close() error
}

type App struct {
	log        *slog.Logger
	HTTPServer *httpserver.Server
	Router     http.Handler
	storage    store
	tokens     tokenStore
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	policy, err := raffle.ParsePolicy(cfg.Raffle.Threshold, cfg.Raffle.Instruments)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storage, err := newStore(ctx, log, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tokens, err := newTokenStore(ctx, cfg.Redis, storage)
	if err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtGen := jwt.NewGenerator(
		cfg.JWT.Secret,
		time.Minute*time.Duration(cfg.JWT.AccessExpirationMinutes),
		24*time.Hour*time.Duration(cfg.JWT.RefreshExpirationDays),
	)

	loc := cfg.Raffle.Location()
	terms := models.AcceptedTerms{CampaignID: cfg.Raffle.CampaignID, CampaignName: cfg.Raffle.CampaignName}
	campaign := models.Campaign{ID: cfg.Raffle.CampaignID, Name: cfg.Raffle.CampaignName}

	authService := services.NewAuthService(log, storage, tokens, jwtGen)
	userService := services.NewUserService(log, storage, terms, loc)
	purchaseService := services.NewPurchaseService(log, storage, policy, campaign, loc)

	authMiddleware := middlewares.NewAuthMiddleware(jwtGen, authService)

	info := dto.ServiceInfo{Name: serviceName, Version: cfg.Server.Version, Stage: cfg.Stage}
	r := routes.InitRoutes(info, cfg.Server.CORSOrigins, routes.Handlers{
		Auth:     handlers.NewAuthHandler(log, authService),
		User:     handlers.NewUserHandler(log, userService),
		Purchase: handlers.NewPurchaseHandler(log, purchaseService),
	}, authMiddleware)

	server := httpserver.NewServer(log, cfg.Server.Address, r, cfg.Server.Timeout, cfg.Server.IdleTimeout)

	log.Info("application assembled",
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("redis", cfg.Redis.Addr != ""),
		slog.String("threshold", policy.Threshold().String()),
	)

	return &App{
		log:        log,
		HTTPServer: server,
		Router:     r,
		storage:    storage,
		tokens:     tokens,
	}, nil
}

// Stop drains the HTTP server and then releases the stores.
func (a *App) Stop(ctx context.Context) error {
	const op = "app.Stop"

	err := a.HTTPServer.Stop(ctx)
	if any(a.tokens) != any(a.storage) {
		err = errors.Join(err, a.tokens.Close())
	}
	err = errors.Join(err, a.storage.Close())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func newStore(ctx context.Context, log *slog.Logger, cfg config.StorageConfig) (store, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "postgres":
		if cfg.Migrate {
			migrations, err := fs.Sub(raffleapi.MigrationsFS, "migrations")
			if err != nil {
				return nil, err
			}
			version, err := postgres.RunMigrations(cfg.PostgresConn, migrations)
			if err != nil {
				return nil, err
			}
			log.Info("migrations applied", slog.Uint64("version", uint64(version)))
		}
		storage, err := postgres.NewPostgres(ctx, cfg.PostgresConn)
		if err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// newTokenStore uses Redis when an address is configured. Otherwise refresh
// tokens live in the memory store, or in a fresh one next to Postgres.
func newTokenStore(ctx context.Context, cfg config.RedisConfig, storage store) (tokenStore, error) {
	if cfg.Addr != "" {
		tokens, err := redis.InitRedis(ctx, cfg.Addr, cfg.Password, cfg.DB)
		if err != nil {
			return nil, err
		}
		return tokens, nil
	}

	if mem, ok := storage.(*memory.Storage); ok {
		return mem, nil
	}

	return memory.New(), nil
}
