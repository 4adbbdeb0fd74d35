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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oziev02/threadtree/internal/config"
	httphandler "github.com/oziev02/threadtree/internal/delivery/http"
	"github.com/oziev02/threadtree/internal/domain"
	"github.com/oziev02/threadtree/internal/infrastructure/badgerstore"
	"github.com/oziev02/threadtree/internal/infrastructure/database"
	"github.com/oziev02/threadtree/internal/infrastructure/memory"
	"github.com/oziev02/threadtree/internal/infrastructure/redisstore"
	"github.com/oziev02/threadtree/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))

	repo, closeRepo, err := openRepository(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	logger.Info("storage opened", "backend", cfg.Storage.Backend, "key", cfg.Storage.Key)

	var opts []usecase.Option
	if !cfg.Storage.SeedDemo {
		opts = append(opts, usecase.WithoutSeed())
	}
	commentUseCase := usecase.NewCommentUseCase(repo, logger, opts...)
	if err := commentUseCase.Load(context.Background()); err != nil {
		logger.Error("failed to load comments", "error", err)
		os.Exit(1)
	}

	mux := httphandler.NewRouter(commentUseCase)

	var handler http.Handler = mux
	handler = httphandler.CORSMiddleware(handler)
	handler = httphandler.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return
	}

	logger.Info("server stopped", "save_failures", commentUseCase.SaveFailures())
}

// openRepository открывает хранилище снимка согласно конфигурации
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.ForestRepository, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory storage, comments are lost on restart")
		return memory.NewRepository(cfg.Storage.Key), func() {}, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		repo := database.NewPostgresRepository(pool, cfg.Storage.Key)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil

	case config.BackendBadger:
		if err := os.MkdirAll(cfg.Badger.Path, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create badger dir: %w", err)
		}
		repo, err := badgerstore.Open(badgerstore.Config{
			Path:       cfg.Badger.Path,
			Key:        cfg.Storage.Key,
			SyncWrites: true,
			Logger:     badgerLogger(cfg.Log.Level),
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				logger.Error("failed to close badger", "error", err)
			}
		}, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return redisstore.NewRepository(client, cfg.Storage.Key), func() { _ = client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// badgerLogger сводит уровень slog к уровню logrus для журналов badger
func badgerLogger(level slog.Level) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stdout)

	switch {
	case level <= slog.LevelDebug:
		l.SetLevel(logrus.DebugLevel)
	case level <= slog.LevelInfo:
		l.SetLevel(logrus.InfoLevel)
	case level <= slog.LevelWarn:
		l.SetLevel(logrus.WarnLevel)
	default:
		l.SetLevel(logrus.ErrorLevel)
	}
	return l
}
