package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/pkg/logger"
)

// localTTL bounds the in-process layer so policy changes and invalidations
// from other instances converge quickly.
const localTTL = time.Minute

// ScoreCache caches the current risk score per user: an in-process
// go-cache layer in front of Redis. Cache failures degrade to misses; the
// record store stays the source of truth.
type ScoreCache struct {
	client redis.UniversalClient
	local  *gocache.Cache
	ttl    time.Duration
	log    logger.Logger
}

// NewScoreCache creates the two-tier score cache. ttl governs the Redis
// entries and should match the scoring policy's cache window.
func NewScoreCache(conn *RedisConnection, ttl time.Duration, log logger.Logger) *ScoreCache {
	return &ScoreCache{
		client: conn.Client,
		local:  gocache.New(localTTL, 2*localTTL),
		ttl:    ttl,
		log:    log,
	}
}

func scoreKey(userID uuid.UUID) string {
	return fmt.Sprintf("analytics:score:%s", userID)
}

// Get returns the cached record for the user, or (nil, false) on a miss.
func (c *ScoreCache) Get(ctx context.Context, userID uuid.UUID) (*models.RiskScoreRecord, bool) {
	key := scoreKey(userID)

	if cached, found := c.local.Get(key); found {
		if record, ok := cached.(*models.RiskScoreRecord); ok {
			return record, true
		}
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn(ctx, "score cache read failed", logger.Fields{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return nil, false
	}

	var record models.RiskScoreRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		c.log.Warn(ctx, "score cache entry corrupt, dropping", logger.Fields{
			"user_id": userID,
		})
		c.client.Del(ctx, key)
		return nil, false
	}

	c.local.Set(key, &record, localTTL)
	return &record, true
}

// Set stores the record in both tiers.
func (c *ScoreCache) Set(ctx context.Context, record *models.RiskScoreRecord) {
	key := scoreKey(record.UserID)

	raw, err := json.Marshal(record)
	if err != nil {
		c.log.Error(ctx, "failed to encode score for cache", err, logger.Fields{
			"user_id": record.UserID,
		})
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn(ctx, "score cache write failed", logger.Fields{
			"user_id": record.UserID,
			"error":   err.Error(),
		})
	}
	c.local.Set(key, record, localTTL)
}

// Invalidate drops the user's entry from both tiers.
func (c *ScoreCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	key := scoreKey(userID)
	c.local.Delete(key)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn(ctx, "score cache invalidation failed", logger.Fields{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}
