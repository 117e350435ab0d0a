package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/Coworkly-BookingService/internal/domain"
)

// ErrCacheMiss возвращается, когда значения в кеше нет
var ErrCacheMiss = errors.New("cache: miss")

// FreeSpacesCache кеш результатов поиска свободных пространств.
// Результаты живут недолго (TTL), попадание избавляет от запроса к оракулу
// доступности. Кеш best-effort: при недоступности redis сервис работает
// напрямую с БД.
type FreeSpacesCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFreeSpacesCache создает кеш поверх redis клиента.
// Если client == nil, кеш работает в режиме no-op (всегда промах).
func NewFreeSpacesCache(client *redis.Client, ttl time.Duration) *FreeSpacesCache {
	return &FreeSpacesCache{client: client, ttl: ttl}
}

// Get возвращает закешированный результат поиска или ErrCacheMiss
func (c *FreeSpacesCache) Get(ctx context.Context, locationID int64, from, to time.Time, minCapacity int) ([]*domain.FreeSpace, error) {
	if c.client == nil {
		return nil, ErrCacheMiss
	}

	data, err := c.client.Get(ctx, c.key(locationID, from, to, minCapacity)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get free spaces: %w", err)
	}

	var spaces []*domain.FreeSpace
	if err := json.Unmarshal(data, &spaces); err != nil {
		return nil, fmt.Errorf("cache: decode free spaces: %w", err)
	}

	return spaces, nil
}

// Set сохраняет результат поиска с коротким TTL
func (c *FreeSpacesCache) Set(ctx context.Context, locationID int64, from, to time.Time, minCapacity int, spaces []*domain.FreeSpace) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(spaces)
	if err != nil {
		return fmt.Errorf("cache: encode free spaces: %w", err)
	}

	if err := c.client.Set(ctx, c.key(locationID, from, to, minCapacity), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set free spaces: %w", err)
	}

	return nil
}

func (c *FreeSpacesCache) key(locationID int64, from, to time.Time, minCapacity int) string {
	return fmt.Sprintf("freespaces:%d:%d:%d:%d", locationID, from.Unix(), to.Unix(), minCapacity)
}
