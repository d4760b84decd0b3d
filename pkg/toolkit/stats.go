package toolkit

import "sync"

// CallStats counts tool invocations per tool name. Purely diagnostic:
// the counters feed log lines and introspection, never control flow.
//
// Stats are an injected dependency, not package state, so tests and
// embedders get isolated instances.
type CallStats struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCallStats creates an empty counter set.
func NewCallStats() *CallStats {
	return &CallStats{
		counts: make(map[string]int),
	}
}

// Record increments the counter for name and returns the new count.
func (s *CallStats) Record(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[name]++
	return s.counts[name]
}

// Count returns the current count for name.
func (s *CallStats) Count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts[name]
}

// Snapshot returns a copy of all counters.
func (s *CallStats) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]int, len(s.counts))
	for name, count := range s.counts {
		snapshot[name] = count
	}
	return snapshot
}
