package geometry

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Engine models the process-wide geometry kernel. Bootstrap happens once,
// on first acquisition; every model handle holds a [Lease] for its lifetime
// and the engine can only be shut down once all leases are released.
type Engine struct {
	boot singleflight.Group

	mu     sync.Mutex
	ready  bool
	leases int
}

var defaultEngine = &Engine{}

// Default returns the process-wide engine.
func Default() *Engine {
	return defaultEngine
}

// Acquire bootstraps the engine if needed and returns a lease on it.
// Concurrent first acquisitions share a single bootstrap.
func (e *Engine) Acquire() (*Lease, error) {
	_, err, _ := e.boot.Do("bootstrap", func() (interface{}, error) {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.ready = true
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrapping geometry engine: %w", err)
	}

	e.mu.Lock()
	e.leases++
	e.mu.Unlock()

	return &Lease{engine: e}, nil
}

// Shutdown tears the engine down. It fails while leases are outstanding;
// a later Acquire bootstraps again.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.leases > 0 {
		return fmt.Errorf("geometry engine has %d open lease(s)", e.leases)
	}
	e.ready = false
	return nil
}

// Ready reports whether the engine is bootstrapped.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// Lease is a scoped hold on the engine. Release is idempotent.
type Lease struct {
	engine *Engine
	once   sync.Once
}

// Release returns the lease to the engine.
func (l *Lease) Release() {
	if l == nil || l.engine == nil {
		return
	}
	l.once.Do(func() {
		l.engine.mu.Lock()
		l.engine.leases--
		l.engine.mu.Unlock()
	})
}
