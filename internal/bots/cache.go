// Package bots provides caching for bot analyses.
package bots

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/trackside/internal/models"
)

// CacheKey uniquely identifies one bot's analysis of one race
type CacheKey struct {
	RaceID uuid.UUID
	Bot    BotName
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s", k.RaceID, k.Bot)
}

// AnalysisCache provides in-memory caching for bot results so re-runs
// of a card do not repeat Gemini calls
type AnalysisCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewAnalysisCache creates a new analysis cache
func NewAnalysisCache(ttl time.Duration, maxSize int) *AnalysisCache {
	return &AnalysisCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves cached bot results for a race
func (ac *AnalysisCache) Get(ctx context.Context, key CacheKey) *models.MultiBotResults {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	if result, found := ac.cache.Get(key.String()); found {
		ac.hitCount++
		ac.updateMetrics()
		if analysis, ok := result.(*models.MultiBotResults); ok {
			return analysis
		}
	}

	ac.missCount++
	ac.updateMetrics()
	return nil
}

// Set stores bot results in cache
func (ac *AnalysisCache) Set(ctx context.Context, key CacheKey, results *models.MultiBotResults) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if ac.cache.ItemCount() >= ac.maxSize {
		ac.cache.DeleteExpired()
	}

	ac.cache.Set(key.String(), results, ac.ttl)
}

// Invalidate removes all cached analyses for a race, used when fresh
// card data arrives for a race already analyzed
func (ac *AnalysisCache) Invalidate(ctx context.Context, raceID uuid.UUID) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	prefix := raceID.String() + ":"
	for k := range ac.cache.Items() {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			ac.cache.Delete(k)
		}
	}
}

// Clear removes all cached analyses
func (ac *AnalysisCache) Clear() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.cache.Flush()
}

// Stats returns hit and miss counts
func (ac *AnalysisCache) Stats() (hits, misses uint64) {
	ac.mu.RLock()
	defer ac.mu.RUnlock()
	return ac.hitCount, ac.missCount
}

func (ac *AnalysisCache) updateMetrics() {
	total := ac.hitCount + ac.missCount
	if total > 0 {
		BotCacheHitRatio.Set(float64(ac.hitCount) / float64(total))
	}
}
