// @title                       Property Request API
// @version                     1.0
// @description                 Accounts, session tokens and property requests.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/allnik/property-service/docs"
	"github.com/allnik/property-service/internal/api"
	"github.com/allnik/property-service/internal/api/handler"
	"github.com/allnik/property-service/internal/api/metrics"
	"github.com/allnik/property-service/internal/core/ports"
	"github.com/allnik/property-service/internal/core/service"
	"github.com/allnik/property-service/internal/infrastructure/config"
	mongostore "github.com/allnik/property-service/internal/infrastructure/db/mongo"
	pgstore "github.com/allnik/property-service/internal/infrastructure/db/postgres"
	redisstore "github.com/allnik/property-service/internal/infrastructure/db/redis"
	"github.com/allnik/property-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// stores is the backend selected by STORE_DRIVER.
type stores struct {
	users    ports.UserRepository
	requests ports.RequestRepository
	health   map[string]handler.PingFunc
	close    func(context.Context)
}

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "property-service",
	})

	backend, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer backend.close(context.Background())

	// Redis is optional; without it Idempotency-Key headers are ignored.
	var idempotency service.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = rdb.Close() }()

		idempotency = redisstore.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		backend.health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	recorder := metrics.Recorder{}
	authService := service.NewAuthService(backend.users, tokens, cfg.Auth.BcryptCost, recorder, log)
	requestService := service.NewRequestService(backend.requests, backend.users, idempotency, recorder, log)

	e := api.NewRouter(api.Dependencies{
		Logger:         log,
		AuthService:    authService,
		RequestService: requestService,
		Tokens:         tokens,
		Health:         backend.health,
		AllowedOrigins: cfg.CORSOrigins,
		Production:     cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited properly")
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if err := pgstore.Migrate(cfg.Postgres.DSN, log); err != nil {
			return nil, err
		}
		pool, err := pgstore.NewPool(ctx, pgstore.PoolConfig{
			DSN:             cfg.Postgres.DSN,
			MaxConns:        cfg.Postgres.MaxConns,
			MinConns:        cfg.Postgres.MinConns,
			MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("postgres connected")
		return &stores{
			users:    pgstore.NewUserRepository(pool),
			requests: pgstore.NewRequestRepository(pool),
			health:   map[string]handler.PingFunc{"postgres": pool.Ping},
			close:    func(context.Context) { pool.Close() },
		}, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		s, err := mongostore.NewStores(ctx, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
		return &stores{
			users:    s.Users,
			requests: s.Requests,
			health: map[string]handler.PingFunc{
				"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			},
			close: func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil
	}
}
