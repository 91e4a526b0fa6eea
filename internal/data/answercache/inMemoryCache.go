package answercache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/docModel"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

// InMemoryAnswerCache is the fallback when redis is offline. Entries expire
// lazily on read - no janitor goroutine for a fallback path.
type InMemoryAnswerCache struct {
	mu      sync.RWMutex
	entries map[string]inMemEntry
	logger  *logger_i.Logger
}

type inMemEntry struct {
	answer    docModel.CachedAnswer
	expiresAt time.Time
}

func InitInMemoryAnswerCache() *InMemoryAnswerCache {
	return &InMemoryAnswerCache{
		entries: make(map[string]inMemEntry),
		logger:  logger_i.NewLogger("InMem AnswerCache"),
	}
}

func (c *InMemoryAnswerCache) Get(ctx context.Context, question string) (docModel.CachedAnswer, bool) {
	key := strings.ToLower(strings.TrimSpace(question))

	c.mu.RLock()
	entry, found := c.entries[key]
	c.mu.RUnlock()

	if !found {
		return docModel.CachedAnswer{}, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return docModel.CachedAnswer{}, false
	}
	return entry.answer, true
}

func (c *InMemoryAnswerCache) Save(ctx context.Context, question string, answer docModel.CachedAnswer) error {
	key := strings.ToLower(strings.TrimSpace(question))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemEntry{
		answer:    answer,
		expiresAt: time.Now().Add(config.AnswerCacheTTL),
	}
	return nil
}
