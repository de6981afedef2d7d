package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"prism/internal/auth"
	"prism/internal/config"
	"prism/internal/federation"
	"prism/internal/handler"
	"prism/internal/middleware"
	"prism/internal/render"
	"prism/internal/repository/postgres"
	"prism/internal/seed"
	"prism/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier against the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	photoRepo := postgres.NewPhotoRepository(repoConfig)
	aspectRepo := postgres.NewAspectRepository(repoConfig)
	profileRepo := postgres.NewProfileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	if cfg.SeedDevData && cfg.Environment != "prod" {
		seeder := seed.NewDevSeeder(pool, repoConfig.Tables, logger)
		if err := seeder.Seed(ctx); err != nil {
			log.Fatalf("Failed to seed dev data: %v", err)
		}
	}

	// Retraction publisher: Redis pub/sub when configured, log-only
	// otherwise (single-pod deployments need no federation transport)
	var publisher federation.RetractionPublisher
	if cfg.RedisURL != "" {
		peers, err := federation.NewPeerRegistry()
		if err != nil {
			log.Fatalf("Failed to load federation peers: %v", err)
		}
		redisPublisher, err := federation.NewRedisPublisher(ctx, cfg.RedisURL, cfg.RetractionTopic, peers, logger)
		if err != nil {
			log.Fatalf("Failed to create retraction publisher: %v", err)
		}
		defer redisPublisher.Close()
		publisher = redisPublisher
	} else {
		logger.Warn("REDIS_URL not set, retractions are logged only")
		publisher = federation.NewLogPublisher(logger)
	}

	// Services
	photoService := service.NewPhotoService(photoRepo, aspectRepo, profileRepo, txManager, publisher, logger)

	// HTML renderer for the negotiated rendered-view representation
	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	photoHandler := handler.NewPhotoHandler(photoService, renderer, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", photoHandler.HealthCheck)

	// Photo routes
	mux.HandleFunc("POST /api/photos", photoHandler.CreatePhoto)
	mux.HandleFunc("GET /api/people/{personID}/photos", photoHandler.ListPhotos)
	mux.HandleFunc("GET /api/people/{personID}/photos/{id}", photoHandler.ShowPhoto)
	mux.HandleFunc("GET /api/photos/{id}/edit", photoHandler.EditPhoto)
	mux.HandleFunc("PATCH /api/photos/{id}", photoHandler.UpdatePhoto)
	mux.HandleFunc("DELETE /api/photos/{id}", photoHandler.DestroyPhoto)
	mux.HandleFunc("POST /api/photos/{id}/profile", photoHandler.SetProfilePhoto)

	// Middleware chain, applied in reverse order
	// CORS → Recovery → Auth → Routes
	var httpHandler http.Handler = mux
	httpHandler = middleware.Auth(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
