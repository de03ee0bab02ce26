// Package event provides an in-process event dispatcher. Synchronous
// delivery runs listeners inline; async delivery goes through a bounded
// worker pool so a burst of events cannot spawn unbounded goroutines.
package event

import (
	"sync"

	"github.com/pawmart/pawmart/pkg/logger"
	"github.com/pawmart/pawmart/pkg/workerpool"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	pool     *workerpool.Pool
	poolOnce sync.Once
)

// UsePool sets the worker pool used by FireAsync. Call at boot before any
// events fire; when unset, a pool of 8 workers is created lazily.
func UsePool(p *workerpool.Pool) {
	mu.Lock()
	pool = p
	mu.Unlock()
}

func asyncPool() *workerpool.Pool {
	mu.RLock()
	p := pool
	mu.RUnlock()
	if p != nil {
		return p
	}
	poolOnce.Do(func() {
		mu.Lock()
		if pool == nil {
			pool = workerpool.New(8)
		}
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return pool
}

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners via the worker pool and
// returns immediately. When the pool is saturated the listener runs inline
// as a fallback so no event is lost.
func FireAsync(event string, payload interface{}) {
	p := asyncPool()
	for _, h := range snapshot(event) {
		h := h
		if err := p.Submit(func() { h(payload) }); err != nil {
			logger.Warn("event: pool saturated, running listener inline", "event", event)
			h(payload)
		}
	}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
