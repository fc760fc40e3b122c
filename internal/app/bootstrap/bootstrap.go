// Package bootstrap открывает хранилище и кеш по конфигу. Используется
// HTTP-сервисом и планировщиком.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/savings-accounts/internal/cache"
	"github.com/magabrotheeeer/savings-accounts/internal/config"
	"github.com/magabrotheeeer/savings-accounts/internal/http/handlers/health"
	"github.com/magabrotheeeer/savings-accounts/internal/migrations"
	"github.com/magabrotheeeer/savings-accounts/internal/services/savings"
	"github.com/magabrotheeeer/savings-accounts/internal/storage/memory"
	"github.com/magabrotheeeer/savings-accounts/internal/storage/repository"
)

// Cache кеш выборок и счетов.
type Cache interface {
	savings.Cache
	Close() error
}

// Marker отметки планировщика об отправленных поздравлениях.
type Marker interface {
	SetNX(key string, expiration time.Duration) (bool, error)
	Invalidate(keys ...string) error
}

// Deps открытые зависимости и их проверки для /health.
type Deps struct {
	Repo   savings.Repository
	Cache  Cache
	Marker Marker
	Checks map[string]health.Check

	closers []func() error
}

const (
	dbReadyAttempts = 10
	dbReadyDelay    = 3 * time.Second
)

func waitForDB(ctx context.Context, db *repository.Storage) error {
	var err error
	for range dbReadyAttempts {
		if err = repository.CheckDatabaseReady(ctx, db); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dbReadyDelay):
		}
	}
	return fmt.Errorf("database not ready after retries: %w", err)
}

// Open открывает хранилище выбранного драйвера и Redis, если задан его адрес.
// Без Redis кеш отключён, а отметки планировщика хранятся в памяти процесса.
// migrate применяет миграции; остальные сервисы только ждут готовности схемы.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger, migrate bool) (*Deps, error) {
	const op = "bootstrap.Open"
	d := &Deps{Checks: map[string]health.Check{}}

	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data will be lost on restart")
		d.Repo = memory.New()
	default:
		db, err := repository.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		d.closers = append(d.closers, db.Close)
		if migrate {
			err = migrations.Run(db.DB, cfg.MigrationsPath)
		} else {
			err = waitForDB(ctx, db)
		}
		if err != nil {
			d.Close(log)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		d.Repo = db
		d.Checks["storage"] = db.Ping
	}

	if cfg.AddressRedis == "" {
		log.Warn("redis address is empty, cache disabled, notification marks kept in memory")
		d.Cache = cache.Nop{}
		d.Marker = cache.NewMarks()
		return d, nil
	}
	redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		d.Close(log)
		return nil, fmt.Errorf("%s: cache not initialized: %w", op, err)
	}
	d.closers = append(d.closers, redisCache.Close)
	d.Cache = redisCache
	d.Marker = redisCache
	d.Checks["cache"] = redisCache.Ping
	return d, nil
}

// Close закрывает открытые соединения в обратном порядке.
func (d *Deps) Close(log *slog.Logger) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.Error("failed to close dependency", slog.Any("err", err))
		}
	}
	d.closers = nil
}
