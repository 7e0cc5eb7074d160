package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booker-api/core/cache"
	"booker-api/core/config"
	"booker-api/core/constants"
	"booker-api/core/database"
	"booker-api/core/logger"
	"booker-api/core/queue"
	"booker-api/modules/auth"
	"booker-api/modules/availability"
	"booker-api/modules/eventtype"
	"booker-api/modules/overlay"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

// Run loads the configuration, connects storage and serves the API until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Init(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	db, err := database.InitDB(initCtx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(initCtx); err != nil {
		return err
	}

	redisCache, err := cache.NewRedisCache(initCtx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisCache.Close()

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()
	worker := queue.NewWorker(cfg.Redis, cfg.Queue.Concurrency)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	sessionSvc, mw := auth.Init(e, redisCache)
	eventtype.Init(e, db, mw)

	ttl := cfg.Overlay.CacheTTL
	if ttl <= 0 {
		ttl = constants.OverlayCacheTTL
	}
	querier := availability.Init(e, db, redisCache, ttl, worker, mw)
	overlay.Init(e, redisCache, querier, queueClient, sessionSvc, localLocation(cfg.Overlay.LocalTimezone), mw)

	if err := worker.Start(); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	defer worker.Shutdown()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Server:Run:ShuttingDown")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return e.Shutdown(shutdownCtx)
}

func localLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("Server:LocalLocation:Unknown", "timezone", name, "error", err)
		return time.Local
	}
	return loc
}
