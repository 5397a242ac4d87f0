// Package state holds the last-known backend connectivity shared between the
// health watcher and the HTTP handlers. Transient by design: nothing here is
// persisted and no history is kept beyond the latest check.
package state

import (
	"sync"
	"time"
)

// Connectivity is a concurrency-safe holder for the most recent probe
// outcome.
type Connectivity struct {
	mu        sync.RWMutex
	reachable bool
	checkedAt time.Time
}

// NewConnectivity starts in the unreachable state until the first probe
// reports in.
func NewConnectivity() *Connectivity {
	return &Connectivity{}
}

// Set records the outcome of a probe.
func (c *Connectivity) Set(reachable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reachable = reachable
	c.checkedAt = time.Now()
}

// Reachable returns the last probe outcome and when it was taken. A zero
// time means no probe has completed yet.
func (c *Connectivity) Reachable() (bool, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reachable, c.checkedAt
}
