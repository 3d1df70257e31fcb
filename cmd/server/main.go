package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"babystory-server/internal/ai"
	"babystory-server/internal/config"
	"babystory-server/internal/handler"
	"babystory-server/internal/messaging"
	"babystory-server/internal/moderation"
	"babystory-server/internal/narration"
	"babystory-server/internal/policy"
	"babystory-server/internal/repository"
	"babystory-server/internal/service"
	"babystory-server/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database ---
	dbPool, err := repository.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()
	if err := repository.EnsureSchema(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}
	storyRepo := repository.NewPgStoryRepository(dbPool)
	policyRepo := repository.NewPgPolicyRepository(dbPool)

	// --- Redis policy cache (optional) ---
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, policy caching disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	policyResolver := policy.NewResolver(policyRepo, redisClient, cfg.Redis.PolicyTTL, log.Logger)

	// --- AI engines ---
	openaiClient := ai.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.BaseURL)
	var engine ai.TextGenerator
	switch strings.ToLower(cfg.AI.Provider) {
	case "ollama":
		engine, err = ai.NewOllamaEngine(cfg.AI.BaseURL, cfg.AI.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Ollama engine")
		}
	default:
		engine = ai.NewOpenAIEngine(openaiClient, cfg.AI.Model, cfg.AI.MaxTokens)
	}
	aiClient := ai.NewClient(engine, cfg.AI.Timeout, cfg.AI.SummaryTimeout, log.Logger)

	// --- Moderation ---
	var classifier moderation.Classifier
	if cfg.Moderation.RemoteEnabled {
		classifier = moderation.NewOpenAIClassifier(openaiClient, cfg.Moderation.Timeout)
	}
	filter := moderation.NewFilter(cfg.Moderation.DenylistWords(), classifier, log.Logger)

	// --- Narration (optional) ---
	var narrator service.Narrator
	if cfg.Storage.Enabled() {
		uploader, err := storage.NewGCSUploader(ctx, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL, cfg.Storage.UploadTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create storage uploader")
		}
		defer uploader.Close()

		synth := narration.NewOpenAISynthesizer(openaiClient, cfg.TTS.Model, cfg.TTS.Voice, cfg.TTS.Timeout)
		narrator = narration.NewBuilder(synth, uploader, cfg.TTS.TempDir, log.Logger)
	} else {
		log.Info().Msg("Audio bucket not configured, narration disabled")
	}

	// --- Story events (optional) ---
	var publisher service.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		rabbitConn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		defer rabbitConn.Close()

		rabbitPublisher, err := messaging.NewRabbitEventPublisher(rabbitConn, cfg.RabbitMQ.EventQueue, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create story event publisher")
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	} else {
		log.Info().Msg("RabbitMQ not configured, story events disabled")
	}

	// --- Service and HTTP ---
	storyService := service.NewStoryService(filter, policyResolver, aiClient, narrator, storyRepo, publisher, log.Logger)
	storyHandler := handler.NewStoryHandler(storyService)

	router := handler.NewRouter(storyHandler, handler.RouterOptions{
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		AllowedOrigins: cfg.Server.AllowedOrigins(),
		Production:     cfg.Env == "production",
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
