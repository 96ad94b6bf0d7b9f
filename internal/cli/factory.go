package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/webterm/internal/config"
	"github.com/aretw0/webterm/internal/metrics"
	"github.com/aretw0/webterm/pkg/adapters/file"
	"github.com/aretw0/webterm/pkg/adapters/memory"
	"github.com/aretw0/webterm/pkg/adapters/redis"
	"github.com/aretw0/webterm/pkg/adapters/sqlite"
	"github.com/aretw0/webterm/pkg/adapters/weather"
	"github.com/aretw0/webterm/pkg/executor"
	"github.com/aretw0/webterm/pkg/persistence/middleware"
	"github.com/aretw0/webterm/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// closeFunc releases whatever a factory opened.
type closeFunc func() error

func noopClose() error { return nil }

// openHistoryLog selects the server history backend named by cfg.Store.
func openHistoryLog(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.HistoryLog, closeFunc, error) {
	switch cfg.Store {
	case config.StoreRedis:
		log := redis.New(cfg.RedisAddr, "", 0, redis.WithPrefix(cfg.RedisPrefix))
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := log.Ping(pingCtx); err != nil {
			_ = log.Close()
			return nil, nil, fmt.Errorf("redis history store at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("History store ready", "store", cfg.Store, "address", cfg.RedisAddr)
		return log, log.Close, nil
	case config.StoreSQLite:
		log, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite history store at %s: %w", cfg.SQLitePath, err)
		}
		logger.Info("History store ready", "store", cfg.Store, "path", cfg.SQLitePath)
		return log, log.Close, nil
	case config.StoreMemory, "":
		logger.Info("History store ready", "store", config.StoreMemory)
		return memory.NewHistoryLog(), noopClose, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// newService builds the execution service and its backing stores.
func newService(ctx context.Context, cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*executor.Service, closeFunc, error) {
	log, closeLog, err := openHistoryLog(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	provider := weather.New(cfg.WeatherURL, weather.WithLogger(logger))
	svc := executor.New(executor.Config{
		DefaultLocation:     cfg.DefaultLocation,
		SanitizeErrors:      cfg.SanitizeErrors,
		GenericErrorMessage: cfg.GenericErrorMessage,
		ProviderTimeout:     cfg.ProviderTimeout,
		CacheTTL:            cfg.CacheTTL,
	}, provider,
		executor.WithLogger(logger),
		executor.WithHistoryLog(log),
		executor.WithMetrics(metrics.New(reg)),
	)

	return svc, func() error {
		svc.Close()
		return closeLog()
	}, nil
}

// openClientStore returns the client state store, encrypted when cfg.StateKey is set.
func openClientStore(cfg config.Config) (ports.ClientStore, error) {
	var store ports.ClientStore = file.New(cfg.StateDir)
	if cfg.StateKey == "" {
		return store, nil
	}
	key, err := middleware.ParseKey(cfg.StateKey)
	if err != nil {
		return nil, err
	}
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	if err != nil {
		return nil, err
	}
	return middleware.Chain(store, mw), nil
}
