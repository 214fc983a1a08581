package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halicz/shopfloor/internal/model"
	"github.com/halicz/shopfloor/internal/repository"
)

type fakeSource struct {
	mu    sync.Mutex
	cfg   model.LabelConfig
	err   error
	calls int32
	delay time.Duration
}

func (f *fakeSource) GetActive(ctx context.Context) (model.LabelConfig, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg, f.err
}

func TestConfigCacheServesCachedCopy(t *testing.T) {
	src := &fakeSource{cfg: model.LabelConfig{ID: 7, WidthMM: 100, HeightMM: 60}}
	cache := NewConfigCache(src, time.Minute)

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), first.ID)

	// Within ttl the source must not be consulted again.
	for i := 0; i < 5; i++ {
		_, err := cache.Get(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestConfigCacheInvalidateForcesRefetch(t *testing.T) {
	src := &fakeSource{cfg: model.LabelConfig{ID: 1, WidthMM: 100, HeightMM: 60}}
	cache := NewConfigCache(src, time.Minute)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	src.mu.Lock()
	src.cfg.ID = 2
	src.mu.Unlock()
	cache.Invalidate()

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestConfigCacheFallsBackToDefaultLayout(t *testing.T) {
	src := &fakeSource{err: repository.ErrConfigNotFound}
	cache := NewConfigCache(src, time.Minute)

	cfg, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, cfg.WidthMM, 0.001)
	assert.InDelta(t, 60.0, cfg.HeightMM, 0.001)
	assert.NotEmpty(t, cfg.Fields)
}

func TestConfigCachePropagatesLookupErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	cache := NewConfigCache(src, time.Minute)

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}

func TestConfigCacheCoalescesConcurrentFetches(t *testing.T) {
	src := &fakeSource{
		cfg:   model.LabelConfig{ID: 3, WidthMM: 100, HeightMM: 60},
		delay: 30 * time.Millisecond,
	}
	cache := NewConfigCache(src, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := cache.Get(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, uint64(3), cfg.ID)
		}()
	}
	wg.Wait()
	// All sixteen concurrent callers share one fetch.
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}
