package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edulane/trailguard/internal/application/access"
	"github.com/edulane/trailguard/internal/application/credential"
	"github.com/edulane/trailguard/internal/application/ports"
	"github.com/edulane/trailguard/internal/config"
	httprouter "github.com/edulane/trailguard/internal/infrastructure/http"
	"github.com/edulane/trailguard/internal/infrastructure/http/handlers"
	"github.com/edulane/trailguard/internal/infrastructure/http/middleware"
	"github.com/edulane/trailguard/internal/infrastructure/persistence/postgres"
	"github.com/edulane/trailguard/internal/infrastructure/ratelimit"
	"github.com/edulane/trailguard/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing with in-memory rate limiting")
			redisClient = nil
		}
	}

	trailRepo := postgres.NewTrailRepository(pool)
	grantRepo := postgres.NewGrantRepository(pool)
	unlockRepo := postgres.NewUnlockRepository(pool)
	attemptRepo := postgres.NewAttemptRepository(pool)

	hasher := security.NewArgon2Hasher(security.Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	var counterStore ports.CounterStore
	if redisClient != nil {
		counterStore = ratelimit.NewRedisStore(redisClient)
	} else {
		memStore := ratelimit.NewMemoryStore(cfg.RateLimit.SweepInterval)
		defer memStore.Stop()
		counterStore = memStore
	}
	limiter := ratelimit.NewLimiter(counterStore)

	engine := access.NewEngine(grantRepo, unlockRepo, attemptRepo, hasher, limiter, access.Options{
		PasswordIsAdditionalLayer: cfg.Policy.PasswordIsAdditionalLayer,
		AttemptLimit:              cfg.RateLimit.AttemptLimit,
		AttemptWindow:             cfg.RateLimit.AttemptWindow,
	})
	setPasswordUC := credential.NewSetPassword(trailRepo, unlockRepo, hasher)
	clearPasswordUC := credential.NewClearPassword(trailRepo, unlockRepo)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.Server.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(cfg.Server.Development)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AccessHandler:     handlers.NewAccessHandler(engine, trailRepo, log),
		CredentialHandler: handlers.NewCredentialHandler(setPasswordUC, clearPasswordUC, attemptRepo, log),
		HealthHandler:     handlers.NewHealthHandler(pool, redisClient),
		Actor:             middleware.NewActorResolver([]byte(cfg.Auth.TokenSecret)),
		Log:               log,
		Secure:            secureMiddleware,
		IPRateLimit:       ipLimit,
		Metrics:           true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
