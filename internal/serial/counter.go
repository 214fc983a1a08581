package serial

import (
	"context"
	"sync"
)

// Next returns the sequence value that follows last.  A zero last means the
// scope has never been used, so the first issued value is 1.  Persisting the
// returned value is the caller's job; the persistence layer must perform the
// increment atomically per scope or concurrent producers can be handed the
// same number (see repository.CounterRepo for the single-statement variant).
func Next(last int64) int64 {
	if last < 0 {
		return 1
	}
	return last + 1
}

// Allocator mints strictly increasing, never-reused sequence numbers.  The
// global scope counts every unit produced across the system; product scopes
// count units of a single product code.
type Allocator interface {
	NextGlobal(ctx context.Context) (int64, error)
	NextForProduct(ctx context.Context, productCode string) (int64, error)
}

// MemoryAllocator is an in-process Allocator serialized by a mutex.  It backs
// single-instance deployments without a shared counter store and is the
// reference implementation the concurrency tests run against.
type MemoryAllocator struct {
	mu   sync.Mutex
	last map[string]int64
}

// NewMemoryAllocator returns an empty allocator; every scope starts at 1.
func NewMemoryAllocator() *MemoryAllocator {
	return &MemoryAllocator{last: make(map[string]int64)}
}

// NextScope increments and returns the counter for an arbitrary scope name.
func (a *MemoryAllocator) NextScope(scope string) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := Next(a.last[scope])
	a.last[scope] = n
	return n
}

// NextGlobal implements Allocator.
func (a *MemoryAllocator) NextGlobal(ctx context.Context) (int64, error) {
	return a.NextScope(GlobalScope), nil
}

// NextForProduct implements Allocator.
func (a *MemoryAllocator) NextForProduct(ctx context.Context, productCode string) (int64, error) {
	return a.NextScope(ProductScope(productCode)), nil
}

// GlobalScope is the counter scope shared by all products.
const GlobalScope = "global"

// ProductScope returns the counter scope name for one product code.
func ProductScope(code string) string { return "product:" + code }
