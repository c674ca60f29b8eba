package teams

import (
	"sync"
	"time"
)

// SyncStatus tells whether the client is out of step with the store: the last
// call fell back to the local cache, or some owner still has a write that
// only reached the cache. LastError and Since describe the outage and are
// kept while Unsynced is not empty.
type SyncStatus struct {
	Degraded  bool      `json:"degraded"`
	LastError string    `json:"last_error,omitempty"`
	Since     time.Time `json:"since,omitempty"`
	Unsynced  []string  `json:"unsynced,omitempty"`
}

type statusTracker struct {
	mu     sync.RWMutex
	status SyncStatus
}

func (s *statusTracker) get() SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// degrade keeps the time of the first failure of an outage.
func (s *statusTracker) degrade(err error, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.status.Degraded {
		s.status.Since = now
	}
	s.status.Degraded = true
	s.status.LastError = err.Error()
}

// reset clears the outage unless unsynced writes are still outstanding.
func (s *statusTracker) reset(unsynced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if unsynced {
		return
	}
	s.status = SyncStatus{}
}
