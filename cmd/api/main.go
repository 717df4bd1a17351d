package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaekwang-park/todo-backend/internal/config"
	todohttp "github.com/jaekwang-park/todo-backend/internal/http"
	"github.com/jaekwang-park/todo-backend/internal/http/handler"
	"github.com/jaekwang-park/todo-backend/internal/repository"
	"github.com/jaekwang-park/todo-backend/internal/service"
)

// storage bundles the selected backend with its health probe and cleanup.
type storage struct {
	repo  repository.TodoRepository
	ping  handler.StoragePinger
	close func() error
}

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"public_url", cfg.PublicURL,
		"storage", cfg.Storage.Driver,
		"log_level", cfg.LogLevel,
	)

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()
	logger.Info("storage connected", "driver", cfg.Storage.Driver)

	todoSvc := service.NewTodoService(store.repo, cfg.ResourceRoot(handler.TodosPath))

	srv := todohttp.NewServer(cfg.ServerPort, logger, todoSvc, store.ping)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := repository.NewDB("postgres", cfg.DB.DSN())
		if err != nil {
			return storage{}, err
		}
		repo := repository.NewPostgresTodo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return storage{}, err
		}
		return storage{repo: repo, ping: db.PingContext, close: db.Close}, nil

	case config.DriverSQLite:
		db, err := repository.NewDB("sqlite3", cfg.SQLite.DSN())
		if err != nil {
			return storage{}, err
		}
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
		repo := repository.NewSQLiteTodo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return storage{}, err
		}
		return storage{repo: repo, ping: db.PingContext, close: db.Close}, nil

	case config.DriverRedis:
		client, err := repository.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return storage{}, err
		}
		ping := func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		return storage{repo: repository.NewRedisTodo(client), ping: ping, close: client.Close}, nil
	}
	return storage{}, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
