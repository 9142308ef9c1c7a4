package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const availabilityCachePrefix = "availability:"

// RedisAvailabilityCache keeps availability calendars in the generic Redis cache.
type RedisAvailabilityCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisAvailabilityCache(client *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client, logger: utils.GetLogger()}
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, professionalID string) (*models.AvailabilityCalendar, bool) {
	raw, err := c.client.Get(ctx, availabilityCachePrefix+professionalID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Availability cache read failed", zap.String("professionalID", professionalID), zap.Error(err))
		}
		return nil, false
	}
	var cal models.AvailabilityCalendar
	if err := json.Unmarshal(raw, &cal); err != nil {
		c.logger.Warn("Discarding corrupt availability cache entry", zap.String("professionalID", professionalID), zap.Error(err))
		return nil, false
	}
	return &cal, true
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, cal *models.AvailabilityCalendar, ttl time.Duration) {
	raw, err := json.Marshal(cal)
	if err != nil {
		c.logger.Warn("Failed to encode availability calendar", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, availabilityCachePrefix+cal.ProfessionalID, raw, ttl).Err(); err != nil {
		c.logger.Warn("Availability cache write failed", zap.String("professionalID", cal.ProfessionalID), zap.Error(err))
	}
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, professionalID string) {
	if err := c.client.Del(ctx, availabilityCachePrefix+professionalID).Err(); err != nil {
		c.logger.Warn("Availability cache invalidation failed", zap.String("professionalID", professionalID), zap.Error(err))
	}
}
