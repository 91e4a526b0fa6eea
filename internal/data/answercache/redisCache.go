package answercache

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/data/redisStore"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

// The answer cache is an exact-question lookup consulted before the query
// pipeline does any embedding work. Only true answers get cached - canned
// and degraded outcomes never do, a cached apology would be awful.

const keyPrefix = "answer:"

type RedisAnswerCache struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisAnswerCache returns nil when redis is offline; the caller falls
// back to the in-memory cache.
func GetRedisAnswerCache(ctx context.Context) *RedisAnswerCache {
	store := redisStore.GetRedisStore(ctx, config.RedisAnswerCacheDB)
	if store == nil {
		return nil
	}
	return &RedisAnswerCache{
		store:  store,
		logger: logger_i.NewLogger("AnswerCache"),
	}
}

// NewTestCache builds a cache over an injected store, for miniredis tests.
func NewTestCache(store *redisStore.Store) *RedisAnswerCache {
	return &RedisAnswerCache{
		store:  store,
		logger: logger_i.NewLogger("AnswerCache test"),
	}
}

func cacheKey(question string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(question))
}

func (c *RedisAnswerCache) Get(ctx context.Context, question string) (docModel.CachedAnswer, bool) {
	var cached docModel.CachedAnswer

	val, err := c.store.Get(ctx, cacheKey(question))
	if c.store.IsNil(err) {
		return cached, false
	}
	if err != nil {
		c.logger.Error("Cache lookup failed", "error", err)
		return cached, false
	}
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		c.logger.Error("Cache entry is corrupt, dropping it", "error", err)
		_ = c.store.Del(ctx, cacheKey(question))
		return cached, false
	}
	return cached, true
}

func (c *RedisAnswerCache) Save(ctx context.Context, question string, answer docModel.CachedAnswer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, cacheKey(question), data, config.AnswerCacheTTL)
}
