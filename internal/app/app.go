package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/krishimitra/leafscan/internal/advisory"
	"github.com/krishimitra/leafscan/internal/config"
	"github.com/krishimitra/leafscan/internal/httpserver"
	"github.com/krishimitra/leafscan/internal/httpserver/deps"
	"github.com/krishimitra/leafscan/internal/inference"
	"github.com/krishimitra/leafscan/internal/logger"
	"github.com/krishimitra/leafscan/internal/redis"
	"github.com/krishimitra/leafscan/internal/scheduler"
	"github.com/krishimitra/leafscan/internal/state"
	redisstore "github.com/krishimitra/leafscan/internal/store/redis"
	"github.com/krishimitra/leafscan/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	watcher     *scheduler.HealthWatcher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Diagnosis stats are optional: no Redis address, no store.
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		store = redisstore.NewStore(client)
		loggerClient.Info("diagnosis stats store initialized")
	} else {
		loggerClient.Info("no redis address configured, diagnosis stats disabled")
	}

	catalog, err := advisory.New(cfg.CatalogFile)
	if err != nil {
		loggerClient.Errorf("Failed to build advisory catalog: %v", err)
		os.Exit(1)
	}
	if cfg.CatalogFile != "" {
		loggerClient.Info("advisory catalog overrides loaded",
			logger.String("file", cfg.CatalogFile))
	}

	client := inference.NewClient(inference.ClientOptions{
		BaseURL:        cfg.BackendURL,
		ProbeTimeout:   cfg.ProbeTimeout,
		AnalyzeTimeout: cfg.AnalyzeTimeout,
	})
	orchestrator := inference.NewOrchestrator(client, catalog, loggerClient, cfg.RetryCount)

	connectivity := state.NewConnectivity()
	probeTrigger := make(chan struct{}, 1)
	watcher := scheduler.NewHealthWatcher(client, connectivity, loggerClient, cfg.WatchInterval, probeTrigger)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Orchestrator:   orchestrator,
		Catalog:        catalog,
		Connectivity:   connectivity,
		Store:          store,
		MaxUploadBytes: cfg.MaxUploadBytes,
		ProbeTrigger:   probeTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		watcher:     watcher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🌱 Starting Leafscan v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Leafscan %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.watcher.Start(ctx)
	a.logger.Info("backend health watcher started",
		logger.Duration("interval", a.cfg.WatchInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.watcher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Leafscan stopped cleanly")
	return nil
}
