package storage

import (
	"context"
	"errors"
	"fmt"

	"bounty/internal/app"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrRead          = errors.New("storage read failed")
	ErrWrite         = errors.New("storage write failed")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Storage - локальное хранилище устройства: ключ -> байты
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open выбирает драйвер по конфигу
func Open(ctx context.Context, c app.ConfigStorage, l *zap.SugaredLogger) (Storage, error) {
	switch c.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		return NewFile(c.Dir, l)
	case DriverSQLite, DriverPostgres:
		return OpenSQL(ctx, c.Driver, c.DSN, l)
	case DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPass,
			DB:       c.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedis(rdb, c.Prefix, l), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}
