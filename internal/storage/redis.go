package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Команды redis, которые нужны хранилищу. *redis.Client им удовлетворяет.
type RedisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// Redis хранит значения под prefix+key, без срока жизни
type Redis struct {
	rdb    RedisCmdable
	prefix string
	Logger *zap.SugaredLogger
}

func NewRedis(rdb RedisCmdable, prefix string, l *zap.SugaredLogger) *Redis {
	return &Redis{
		rdb:    rdb,
		prefix: prefix,
		Logger: l,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.Logger.Errorf("%v. More details: %v", ErrRead, err)
		return nil, ErrRead
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		r.Logger.Errorf("%v. More details: %v", ErrWrite, err)
		return ErrWrite
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		r.Logger.Errorf("%v. More details: %v", ErrWrite, err)
		return ErrWrite
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
