package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"secret-santa-backend/internal/common/cache"
	"secret-santa-backend/internal/common/config"
	"secret-santa-backend/internal/common/logger"
	assignmenthttp "secret-santa-backend/internal/features/assignment/delivery/http"
	assignmentrepo "secret-santa-backend/internal/features/assignment/repository"
	assignmentpg "secret-santa-backend/internal/features/assignment/repository/postgres"
	assignmentredis "secret-santa-backend/internal/features/assignment/repository/redis"
	assignmentsvc "secret-santa-backend/internal/features/assignment/service"
	codeshttp "secret-santa-backend/internal/features/codes/delivery/http"
	codespg "secret-santa-backend/internal/features/codes/repository/postgres"
	codessvc "secret-santa-backend/internal/features/codes/service"
	participanthttp "secret-santa-backend/internal/features/participant/delivery/http"
	participantpg "secret-santa-backend/internal/features/participant/repository/postgres"
	participantsvc "secret-santa-backend/internal/features/participant/service"
	teamhttp "secret-santa-backend/internal/features/team/delivery/http"
	teampg "secret-santa-backend/internal/features/team/repository/postgres"
	teamsvc "secret-santa-backend/internal/features/team/service"
	apphttp "secret-santa-backend/internal/http"
	"secret-santa-backend/internal/platform/postgres"
	"secret-santa-backend/internal/platform/redis"
	"secret-santa-backend/internal/utils/random"
	"secret-santa-backend/internal/workers"
)

// @title           Secret Santa API
// @version         1.0
// @description     Team registration by invite code and gift assignment for the Secret Santa chat bot and admin panel.

// @host      localhost:8080
// @BasePath  /api/v1

// @tag.name teams
// @tag.description Team creation and listing

// @tag.name participants
// @tag.description Registered participants

// @tag.name bot
// @tag.description Endpoints called by the chat bot

// @tag.name assignment
// @tag.description Gift assignment and lookup

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("secret-santa-backend", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("Starting Secret Santa backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgresClient, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer postgresClient.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgresClient.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to apply database schema")
		}
	}

	checks := []apphttp.ReadinessCheck{{Name: "postgres", Check: postgresClient.HealthCheck}}

	var (
		lookupCache assignmentrepo.LookupCache
		publisher   *redis.StreamPublisher
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.Open(ctx, redis.Options(cfg))
		if err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.RedisAddr()).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		lookupCache = assignmentredis.NewLookupCache(cache.NewCacheService(redisClient), cfg.Santa.LookupCacheTTL)
		publisher = redis.NewStreamPublisher(redisClient, cfg.Santa.EventsStream)
		checks = append(checks, apphttp.ReadinessCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
		logger.Info().Str("addr", cfg.RedisAddr()).Str("stream", cfg.Santa.EventsStream).Msg("Redis connected")
	} else {
		logger.Warn().Msg("Redis disabled, assignment lookups are uncached and bot events are not published")
	}

	db := postgresClient.GetDB()
	src := random.NewCryptoSource()

	var codePublisher codessvc.EventPublisher
	var assignmentPublisher assignmentsvc.EventPublisher
	if publisher != nil {
		codePublisher = publisher
		assignmentPublisher = publisher
	}

	issuer := codessvc.NewCodeIssuer(codespg.NewPostgresRepository(db), codessvc.NewGenerator(cfg.Santa.CodePrefix, src), codePublisher)
	teamService := teamsvc.NewTeamService(teampg.NewPostgresRepository(db), issuer, teamsvc.Defaults{
		Rules:            cfg.Santa.DefaultRules,
		ParticipantCount: cfg.Santa.DefaultParticipantCount,
	})
	participantService := participantsvc.NewParticipantService(participantpg.NewPostgresRepository(db))
	engine := assignmentsvc.NewAssignmentEngine(assignmentpg.NewPostgresRepository(db), lookupCache, assignmentPublisher, src)

	workerDone := make(chan struct{})
	if publisher != nil && cfg.Santa.BotStreamWorker {
		worker := workers.NewRegistrationWorker(publisher.Client(), cfg.Santa.BotStream, cfg.Santa.BotStreamConsumer, issuer, publisher)
		go func() {
			defer close(workerDone)
			worker.Start(ctx)
		}()
	} else {
		close(workerDone)
	}

	router := apphttp.NewRouter(cfg, apphttp.Handlers{
		Team:        teamhttp.NewTeamHandler(teamService),
		Codes:       codeshttp.NewCodeHandler(issuer),
		Participant: participanthttp.NewParticipantHandler(participantService),
		Assignment:  assignmenthttp.NewAssignmentHandler(engine),
	}, checks...)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		logger.Warn().Msg("Registration stream worker did not stop in time")
	}

	logger.Info().Msg("Server exited")
}
