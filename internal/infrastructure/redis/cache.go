package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/suminventa/kardex-api/internal/application/stock"
)

var _ stock.Cache = (*Cache)(nil)

// Cache adaptador Redis para el caché de consultas de stock. Los errores de
// Redis nunca tumban una consulta: un Get fallido cuenta como miss y un Set
// fallido solo se loguea.
type Cache struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewCache conecta a Redis y devuelve el adaptador. Si el ping falla devuelve
// error: el caller decide si seguir sin caché (es opcional).
func NewCache(addr, password string, db int, log zerolog.Logger) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{rdb: rdb, log: log}, nil
}

// Get devuelve el valor y true si la clave existe.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("redis get")
		}
		return "", false
	}
	return val, true
}

// Set guarda el valor con TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set")
	}
}

// Close cierra la conexión.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
