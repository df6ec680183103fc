package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/iamasit07/hotseat-connect4/internal/config"
	"github.com/iamasit07/hotseat-connect4/internal/logger"
	"github.com/iamasit07/hotseat-connect4/internal/monitor"
	"github.com/iamasit07/hotseat-connect4/internal/repository/memory"
	"github.com/iamasit07/hotseat-connect4/internal/repository/postgres"
	"github.com/iamasit07/hotseat-connect4/internal/repository/redis"
	"github.com/iamasit07/hotseat-connect4/internal/service/cleanup"
	"github.com/iamasit07/hotseat-connect4/internal/service/game"
	transportHttp "github.com/iamasit07/hotseat-connect4/internal/transport/http"
	"github.com/iamasit07/hotseat-connect4/internal/transport/websocket"
	"github.com/iamasit07/hotseat-connect4/pkg/auth"
)

// archive is what both history backends provide.
type archive interface {
	game.GameRepository
	transportHttp.HistoryReader
	cleanup.HistoryPruner
}

func main() {
	envErr := godotenv.Load()
	if envErr != nil {
		envErr = godotenv.Load("../.env")
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.LogLevel, cfg.IsProduction())
	defer logger.Sync()
	if envErr != nil {
		logger.Log.Info("No .env file found")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. History archive: postgres when configured, memory otherwise
	var games archive
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			logger.Log.Fatalf("Database unreachable: %v", err)
		}
		defer db.Close()

		logger.Log.Info("Running database migrations...")
		if err := postgres.RunMigrations(ctx, db); err != nil {
			logger.Log.Fatalf("Migration failed: %v", err)
		}
		logger.Log.Info("Database migration completed successfully")
		games = postgres.NewGameRepo(db)
	} else {
		logger.Log.Warn("DATABASE_URL not set, keeping game history in memory")
		games = memory.NewGameRepo()
	}

	// 2. Redis snapshot cache (optional)
	metrics := monitor.NewMetrics(cfg.MetricsNamespace)
	options := []game.Option{game.WithRepository(games), game.WithRecorder(metrics)}
	if cfg.RedisURL != "" {
		if client := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword); client != nil {
			defer client.Close()
			options = append(options, game.WithSnapshots(redis.NewSnapshotCache[game.TableView](client, cfg.SnapshotTTL)))
		}
	}

	// 3. Services
	tables := game.NewTableManager(game.Options{
		Width:        cfg.BoardWidth,
		Height:       cfg.BoardHeight,
		MaxDimension: cfg.MaxBoardDimension,
		FinishedTTL:  cfg.FinishedTableTTL,
		IdleTTL:      cfg.IdleTableTTL,
	}, options...)

	tokens := auth.NewTableTokens(cfg.JWTSecret, cfg.TableTokenTTL)
	connManager := websocket.NewConnectionManager()
	tables.SetNotifier(connManager)

	// 4. Background workers
	cleanupWorker := cleanup.NewWorker(tables, games, cfg.CleanupInterval, cfg.HistoryRetentionDays)
	go cleanupWorker.Start(ctx)

	// 5. Handlers and router
	wsHandler := websocket.NewHandler(connManager, tables, tokens, metrics, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(transportHttp.Routes{
		Tables:         transportHttp.NewTableHandler(tables, tokens, cfg.TableTokenTTL, cfg.IsProduction()),
		Watch:          transportHttp.NewWatchHandler(tables),
		History:        transportHttp.NewHistoryHandler(games),
		WebSocket:      wsHandler.HandleWebSocket,
		Metrics:        metrics.Handler(),
		AllowedOrigins: cfg.AllowedOrigins,
	})
	serveFrontend(router, "./static")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Infof("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// let finished games reach the archive before the db closes
	tables.Wait()
	logger.Log.Info("Server exited gracefully")
}

// serveFrontend mounts a built SPA from dir when it exists.
func serveFrontend(router *gin.Engine, dir string) {
	if _, err := os.Stat(dir); err != nil {
		return
	}

	router.Static("/assets", dir+"/assets")
	router.GET("/", func(c *gin.Context) {
		c.File(dir + "/index.html")
	})

	// SPA fallback: serve index.html for all unmatched routes
	router.NoRoute(func(c *gin.Context) {
		path := dir + c.Request.URL.Path

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/assets/") || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Status(http.StatusNotFound)
			return
		}

		c.File(dir + "/index.html")
	})
}
