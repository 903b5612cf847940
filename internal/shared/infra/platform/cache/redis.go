package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	sharedUtils "github.com/davicafu/hexagreet/internal/shared/infra/utils"
)

// RedisCache implementa Cache sobre go-redis. Todas las claves llevan el prefijo
// namespace para poder compartir la instancia con otros servicios.
type RedisCache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// Verificación estática
var _ Cache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, namespace string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, namespace: namespace, ttl: ttl}
}

func (c *RedisCache) key(k string) string {
	if c.namespace == "" {
		return k
	}
	return c.namespace + ":" + k
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := sharedUtils.JSON.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set sobrescribe la clave. ttlSecs <= 0 usa el TTL por defecto.
func (c *RedisCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	raw, err := sharedUtils.JSON.Marshal(val)
	if err != nil {
		return err
	}
	ttl := c.ttl
	if ttlSecs > 0 {
		ttl = time.Duration(ttlSecs) * time.Second
	}
	return c.client.Set(ctx, c.key(key), raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Ping lo usa el readiness check.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
