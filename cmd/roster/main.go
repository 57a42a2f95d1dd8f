package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rosterhq/roster/internal/application/account"
	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/config"
	infraauth "github.com/rosterhq/roster/internal/infrastructure/auth"
	httprouter "github.com/rosterhq/roster/internal/infrastructure/http"
	"github.com/rosterhq/roster/internal/infrastructure/http/handlers"
	"github.com/rosterhq/roster/internal/infrastructure/http/middleware"
	"github.com/rosterhq/roster/internal/infrastructure/identity"
	"github.com/rosterhq/roster/internal/infrastructure/persistence/db"
	"github.com/rosterhq/roster/internal/infrastructure/persistence/postgres"
	"github.com/rosterhq/roster/internal/infrastructure/queue"
	"github.com/rosterhq/roster/internal/infrastructure/security"
	"github.com/rosterhq/roster/internal/infrastructure/webhook"
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

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	queries := db.New(pool)
	ownerRepo := postgres.NewOwnerRepository(queries)
	userRepo := postgres.NewUserRepository(queries)

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	var idp ports.IdentityProvider
	switch cfg.Identity.Mode {
	case "http":
		idp = identity.NewHTTPProvider(cfg.Identity.BaseURL, cfg.Identity.APIKey)
	case "memory":
		log.Warn().Msg("using in-memory identity provider; identities are lost on restart")
		idp = identity.NewMemoryProvider(hasher)
	default:
		log.Fatal().Str("mode", cfg.Identity.Mode).Msg("unknown IDENTITY_MODE")
	}

	pemBytes, err := cfg.LoadJWTPublicKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT public key")
	}
	publicKey, err := infraauth.LoadRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT public key")
	}
	verifier := infraauth.NewTokenVerifier(publicKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	var emitter ports.WebhookEmitter
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	ownerService := account.NewOwnerService(ownerRepo)
	userService := account.NewUserService(userRepo)
	orch := account.NewOrchestrator(ownerService, userService, idp, taskEnqueuer, log)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.IP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	subjectLimit, err := middleware.NewSubjectRateLimiter(cfg.RateLimit.Subject)
	if err != nil {
		log.Fatal().Err(err).Msg("create subject rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)

	ownersHandler := handlers.NewOwnersHandler(orch, ownerService, emitter, log)
	usersHandler := handlers.NewUsersHandler(orch, userService, emitter, log)
	requireJWT := middleware.NewAuthValidator(verifier).Handler
	router := httprouter.NewRouter(httprouter.RouterConfig{
		OwnersHandler:    ownersHandler,
		UsersHandler:     usersHandler,
		HealthHandler:    healthHandler,
		RequireJWT:       requireJWT,
		Log:              log,
		Secure:           secureMiddleware,
		CORS:             corsMiddleware,
		IPRateLimit:      ipLimit,
		SubjectRateLimit: subjectLimit,
		APIVersion:       "v1",
		Metrics:          true,
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
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
