package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/halicz/shopfloor/internal/label"
	"github.com/halicz/shopfloor/internal/model"
	"github.com/halicz/shopfloor/internal/repository"
)

// ConfigSource is the lookup the cache wraps.  *repository.LabelConfigRepo
// satisfies it.
type ConfigSource interface {
	GetActive(ctx context.Context) (model.LabelConfig, error)
}

// ConfigCache keeps the active label configuration warm for every render
// path.  Two independent triggers refresh it, a fixed poll timer and the
// labelconfig.updated broadcast, and both funnel through one
// singleflight group, so concurrent triggers collapse into a single
// database read.  When no configuration row exists the built-in default
// layout is served instead.
type ConfigCache struct {
	repo ConfigSource
	ttl  time.Duration

	group singleflight.Group

	mu        sync.RWMutex
	cfg       model.LabelConfig
	fetchedAt time.Time
}

// NewConfigCache builds a cache around the repository.  ttl bounds how
// stale a poll-driven consumer can observe the layout; change
// notifications invalidate immediately regardless of ttl.
func NewConfigCache(repo ConfigSource, ttl time.Duration) *ConfigCache {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &ConfigCache{repo: repo, ttl: ttl}
}

// Get returns the active configuration, from cache when fresh.
func (c *ConfigCache) Get(ctx context.Context) (model.LabelConfig, error) {
	c.mu.RLock()
	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		cfg := c.cfg
		c.mu.RUnlock()
		return cfg, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("label-config", func() (interface{}, error) {
		cfg, err := c.repo.GetActive(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrConfigNotFound) {
				cfg = label.DefaultConfig()
			} else {
				return nil, err
			}
		}
		c.mu.Lock()
		c.cfg = cfg
		c.fetchedAt = time.Now()
		c.mu.Unlock()
		return cfg, nil
	})
	if err != nil {
		return model.LabelConfig{}, err
	}
	return v.(model.LabelConfig), nil
}

// Invalidate drops the cached copy.  The next Get hits the database.
func (c *ConfigCache) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

// StartPolling refreshes the cache on a fixed interval until the context
// is cancelled.  Refresh failures are logged and retried on the next tick;
// consumers keep the last good copy in the meantime.
func (c *ConfigCache) StartPolling(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = c.ttl
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Invalidate()
				if _, err := c.Get(ctx); err != nil {
					log.Printf("config-cache: refresh failed: %v", err)
				}
			}
		}
	}()
}
