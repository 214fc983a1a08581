package serial

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNextStartsAtOne(t *testing.T) {
	assert.Equal(t, int64(1), Next(0))
	assert.Equal(t, int64(1), Next(-5)) // garbage last values never stall the line
	assert.Equal(t, int64(43), Next(42))
}

func TestMemoryAllocatorMonotonic(t *testing.T) {
	a := NewMemoryAllocator()
	ctx := context.Background()
	for i := int64(1); i <= 100; i++ {
		n, err := a.NextGlobal(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	// Product scopes are independent of the global scope and of each other.
	n, err := a.NextForProduct(ctx, "2770")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = a.NextForProduct(ctx, "2771")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryAllocatorConcurrentNoDuplicates(t *testing.T) {
	const (
		workers = 16
		perWork = 250
	)
	a := NewMemoryAllocator()
	ctx := context.Background()

	var mu sync.Mutex
	seen := make([]int64, 0, workers*perWork)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := make([]int64, 0, perWork)
			for i := 0; i < perWork; i++ {
				n, err := a.NextGlobal(ctx)
				if err != nil {
					return err
				}
				local = append(local, n)
			}
			mu.Lock()
			seen = append(seen, local...)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Exactly 1..N with no gaps or repeats.
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	require.Len(t, seen, workers*perWork)
	for i, n := range seen {
		require.Equal(t, int64(i+1), n)
	}
}
