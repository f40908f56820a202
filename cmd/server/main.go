package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/acadsharsh/mockera12/internal/config"
	"github.com/acadsharsh/mockera12/internal/handler"
	"github.com/acadsharsh/mockera12/internal/repository"
	"github.com/acadsharsh/mockera12/internal/service"
	"github.com/acadsharsh/mockera12/pkg/auth"
	"github.com/acadsharsh/mockera12/pkg/db"
	"github.com/acadsharsh/mockera12/pkg/logger"
	"github.com/acadsharsh/mockera12/pkg/metrics"
)

func main() {
	// Load environment variables from config.env, falling back to .env
	if err := godotenv.Load("config.env"); err != nil {
		_ = godotenv.Load()
	}

	cfg := config.Load()
	log := logger.NewLogger("api")

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	conn, err := db.NewConnection(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()
	log.Info("Successfully connected to database")

	// The server never creates tables; it only refuses to start against a
	// database that does not match migrations/schema.sql.
	guard := db.NewSchemaGuard(conn.DB)
	if err := guard.ValidateTables(db.ExpectedTables()); err != nil {
		log.Fatalf("Database schema validation failed: %v", err)
	}

	// Redis is optional: without it the service runs uncached.
	var cacheRepo repository.CacheRepository
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(redisOpts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		cancel()
		log.Info("Successfully connected to Redis")

		cacheRepo = repository.NewCacheRepository(redisClient)
	} else {
		log.Warn("REDIS_URL not set, running without cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(conn.DB)
	testRepo := repository.NewTestRepository(conn.DB)
	submissionRepo := repository.NewSubmissionRepository(conn.DB)
	statsRepo := repository.NewStatsRepository(conn.DB)

	// Initialize services
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, jwtManager)
	testService := service.NewTestService(testRepo, cacheRepo, cfg.CacheTTL)
	submissionService := service.NewSubmissionService(testRepo, submissionRepo)
	statsService := service.NewStatsService(statsRepo, cacheRepo, cfg.CacheTTL)

	m := metrics.NewMetrics("api")
	go reportDBPoolStats(conn, m)

	router := handler.NewRouter(handler.RouterConfig{
		AuthService:       authService,
		TestService:       testService,
		SubmissionService: submissionService,
		StatsService:      statsService,
		TokenValidator:    jwtManager,
		Logger:            log,
		Metrics:           m,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Infof("API server listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}
	log.Info("Server stopped")
}

func reportDBPoolStats(conn *db.Connection, m *metrics.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		stats := conn.DB.Stats()
		m.RecordDBPoolStats(stats.OpenConnections, stats.InUse, stats.Idle,
			stats.WaitCount, stats.WaitDuration)
	}
}
