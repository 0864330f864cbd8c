package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srkarthi1982/guess-the-emoji/internal/api"
	"github.com/srkarthi1982/guess-the-emoji/internal/auth"
	"github.com/srkarthi1982/guess-the-emoji/internal/cache"
	"github.com/srkarthi1982/guess-the-emoji/internal/config"
	"github.com/srkarthi1982/guess-the-emoji/internal/db"
	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository/sqlite"
	"github.com/srkarthi1982/guess-the-emoji/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("guess-the-emoji server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("redis_addr=%s", cfg.RedisAddr)
	log.Debug("cache_ttl=%s", cfg.CacheTTL)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	readiness := []api.ReadinessCheck{{Name: "database", Check: database.PingContext}}

	puzzleRepo := sqlite.NewPuzzleRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	attemptRepo := sqlite.NewAttemptRepository(database.DB)

	var puzzleCache cache.PuzzleCache = cache.NopPuzzleCache{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable at %s, puzzle cache will fall back to the database: %v", cfg.RedisAddr, err)
		}
		cancel()

		puzzleCache = cache.NewRedisPuzzleCache(client, cfg.CacheTTL)
		readiness = append(readiness, api.ReadinessCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
		log.Info("puzzle cache enabled: redis=%s, ttl=%s", cfg.RedisAddr, cfg.CacheTTL)
	}
	cachedPuzzles := cache.NewCachedPuzzleRepository(puzzleRepo, puzzleCache)

	srv := &api.Server{
		PuzzleService:   services.NewPuzzleService(cachedPuzzles),
		SessionService:  services.NewSessionService(sessionRepo, attemptRepo),
		AttemptService:  services.NewAttemptService(cachedPuzzles, sessionRepo, attemptRepo),
		Auth:            auth.NewVerifier(cfg.AuthSecret, cfg.AuthIssuer, nil),
		ReadinessChecks: readiness,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("guess-the-emoji server stopped")
}
