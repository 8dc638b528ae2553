package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/travelbook/flightbooking/config"
	"github.com/travelbook/flightbooking/internal/domain"
)

type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

// GetFlightSearch returns the cached provider response, or nil on a miss.
func (c *RedisCache) GetFlightSearch(ctx context.Context, q domain.FlightQuery) ([]byte, error) {
	data, err := c.client.Get(ctx, flightSearchKey(q)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (c *RedisCache) SetFlightSearch(ctx context.Context, q domain.FlightQuery, payload []byte) error {
	return c.client.Set(ctx, flightSearchKey(q), payload, c.searchTTL).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func flightSearchKey(q domain.FlightQuery) string {
	return fmt.Sprintf("cache:flights:%s:%s:%s", q.DepartureIATA, q.ArrivalIATA, q.FlightDate)
}
