package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ecotrack/backend/internal/auth"
	"github.com/ecotrack/backend/internal/cache"
	"github.com/ecotrack/backend/internal/comments"
	"github.com/ecotrack/backend/internal/database"
	"github.com/ecotrack/backend/internal/feed"
	"github.com/ecotrack/backend/internal/handlers"
	"github.com/ecotrack/backend/internal/logger"
	"github.com/ecotrack/backend/internal/metrics"
	"github.com/ecotrack/backend/internal/prune"
	"github.com/ecotrack/backend/internal/reports"
	"github.com/ecotrack/backend/internal/store"
)

func main() {
	// .env is optional; production configures through real env vars
	_ = godotenv.Load()

	if err := logger.Initialize(getEnv("LOG_LEVEL", "info"), getEnv("LOG_FILE", "server.log")); err != nil {
		os.Exit(1)
	}
	defer logger.Log.Sync() //nolint:errcheck

	logger.Log.Info("ecotrack backend starting")

	st, cleanup := selectStore()
	defer cleanup()

	var redisClient *cache.RedisClient
	if host := os.Getenv("REDIS_HOST"); host != "" {
		rc, err := cache.NewRedisClient(host, getEnv("REDIS_PORT", "6379"), os.Getenv("REDIS_PASSWORD"))
		if err != nil {
			logger.WarnWithFields("redis unavailable, stats caching disabled", err)
		} else {
			redisClient = rc
			defer redisClient.Close()
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "ecotrack-dev-secret"
		logger.Log.Warn("JWT_SECRET not set, using development default")
	}

	feedService := feed.NewService(st)
	feedService.SetCache(redisClient)
	commentsService := comments.NewService(st)
	reportsService := reports.NewService(st)
	authService := auth.NewService(st, jwtSecret)

	// Feed retention only applies to real persistence; the demo store
	// serves static fixtures
	if st.Available() {
		pruneInterval := prune.DefaultInterval
		if v := os.Getenv("PRUNE_INTERVAL_MINUTES"); v != "" {
			if minutes, err := time.ParseDuration(v + "m"); err == nil {
				pruneInterval = minutes
			}
		}
		pruneService := prune.NewService(st, pruneInterval)
		pruneService.Start()
		defer pruneService.Stop()
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{getEnv("CORS_ORIGIN", "*")}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	h := handlers.NewHandlers(feedService, commentsService, reportsService, authService)
	handlers.RegisterRoutes(r, h, auth.Middleware(authService))
	r.GET("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              ":" + getEnv("PORT", "3001"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorWithFields("server failed", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithFields("forced shutdown", err)
	}
}

// selectStore picks real persistence when a database is configured and
// the canned demo store otherwise. The returned cleanup closes the
// database connection.
func selectStore() (store.Store, func()) {
	if !database.Configured() {
		logger.Log.Warn("no database configured, running in demo mode")
		return store.NewDemo(), func() {}
	}

	if err := database.Initialize(); err != nil {
		logger.ErrorWithFields("database initialization failed", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		logger.ErrorWithFields("database migration failed", err)
		os.Exit(1)
	}
	return store.NewGorm(database.DB), func() {
		if err := database.Close(); err != nil {
			logger.WarnWithFields("database close failed", err)
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
