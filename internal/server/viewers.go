package server

import (
	"fmt"
	"sync"
	"time"
)

// Viewers tracks connected sessions and remembers, per username, which
// gallery entry was on screen when the user last disconnected.
type Viewers struct {
	mu     sync.RWMutex
	online map[string]string // session ID -> username
	saved  map[string]string // username -> entry name
}

// NewViewers returns an empty registry.
func NewViewers() *Viewers {
	return &Viewers{
		online: make(map[string]string),
		saved:  make(map[string]string),
	}
}

// Add registers a session for name and returns its session ID along with
// the entry name the user last viewed ("" if none).
func (v *Viewers) Add(name string) (id, last string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Same user on two connections gets a suffixed ID
	id = name
	if _, online := v.online[id]; online {
		id = fmt.Sprintf("%s_%04d", name, time.Now().UnixNano()%10000)
	}
	v.online[id] = name
	return id, v.saved[name]
}

// Remove unregisters the session and records the entry it was showing.
func (v *Viewers) Remove(id, entry string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if name, ok := v.online[id]; ok {
		if entry != "" {
			v.saved[name] = entry
		}
		delete(v.online, id)
	}
}

// Count returns the number of connected sessions.
func (v *Viewers) Count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.online)
}
