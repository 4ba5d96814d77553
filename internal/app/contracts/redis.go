package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	// SetIfNotExists backs the submit in-flight guard: it returns true only
	// when this call created the key.
	SetIfNotExists(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
}
