package strikes

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the single-instance fallback (and the test double). State is
// lost on restart, which is acceptable only for one-node deployments.
type MemoryStore struct {
	policy Policy
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*memEntry
}

type memEntry struct {
	count        int
	windowStart  time.Time
	blockedUntil time.Time
}

func NewMemoryStore(policy Policy) *MemoryStore {
	return &MemoryStore{policy: policy, now: time.Now, entries: make(map[string]*memEntry)}
}

// WithClock overrides the time source. Tests only.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Register(_ context.Context, userID string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e := s.entries[userID]
	if e == nil || now.Sub(e.windowStart) > s.policy.Window {
		e = &memEntry{windowStart: now}
		if prev := s.entries[userID]; prev != nil {
			e.blockedUntil = prev.blockedUntil
		}
		s.entries[userID] = e
	}
	e.count++
	if e.count >= s.policy.Limit {
		e.blockedUntil = now.Add(s.policy.BlockDuration)
		return e.count, true, nil
	}
	return e.count, false, nil
}

func (s *MemoryStore) IsBlocked(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[userID]
	return e != nil && s.now().Before(e.blockedUntil), nil
}
