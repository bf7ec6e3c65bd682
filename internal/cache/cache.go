// Package cache stores computed prior-season edges keyed by team and season end year.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
)

// DefaultTTL bounds how long a prior stays cached; completed seasons rarely change.
const DefaultTTL = 24 * time.Hour

// PriorCache looks up and stores prior edges.
type PriorCache interface {
	Get(ctx context.Context, team teams.Code, seasonEndYear int) (model.PriorEdge, bool, error)
	Set(ctx context.Context, edge model.PriorEdge) error
}

// Key returns the cache key for a team and season.
func Key(team teams.Code, seasonEndYear int) string {
	return fmt.Sprintf("prior:%s:%d", team, seasonEndYear)
}

type memoryEntry struct {
	edge    model.PriorEdge
	expires time.Time
}

// MemoryCache is an in-process PriorCache with per-entry expiry.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache builds a MemoryCache; non-positive ttl uses DefaultTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached edge when present and unexpired.
func (c *MemoryCache) Get(ctx context.Context, team teams.Code, seasonEndYear int) (model.PriorEdge, bool, error) {
	_ = ctx
	key := Key(team, seasonEndYear)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return model.PriorEdge{}, false, nil
	}
	if !c.now().Before(entry.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return model.PriorEdge{}, false, nil
	}
	return entry.edge, true, nil
}

// Set stores the edge under its team and season.
func (c *MemoryCache) Set(ctx context.Context, edge model.PriorEdge) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[Key(edge.Team, edge.SeasonEndYear)] = memoryEntry{edge: edge, expires: c.now().Add(c.ttl)}
	return nil
}

// Len reports the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
