// Package session tracks the task ids the host has open against the
// remote service, for introspection only. Nothing is persisted and no
// expiry is enforced; an entry lives until it is explicitly removed.
package session

import (
	"sync"
	"time"
)

// Record holds the timestamps kept per tracked task id.
type Record struct {
	// Created is when the task was first tracked
	Created time.Time

	// LastActivity is bumped on every instruction dispatched against
	// the task
	LastActivity time.Time
}

// Entry pairs a task id with its record in a List snapshot.
type Entry struct {
	ID     string
	Record Record
}

// Registry is an in-memory mapping from task id to activity timestamps.
// The mutex is load-bearing: tool invocations run on independent
// goroutines, so the read-modify-write on the map needs a guard.
type Registry struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]Record),
	}
}

// Track inserts an entry for id with both timestamps set to now,
// overwriting any prior entry for the same id.
func (r *Registry) Track(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.records[id] = Record{Created: now, LastActivity: now}
}

// Touch updates LastActivity for a known id. Touching an unknown id is
// a no-op; it never creates an entry.
func (r *Registry) Touch(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return
	}
	record.LastActivity = time.Now()
	r.records[id] = record
}

// List returns a snapshot of all tracked entries. Order is unspecified.
func (r *Registry) List() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, 0, len(r.records))
	for id, record := range r.records {
		entries = append(entries, Entry{ID: id, Record: record})
	}
	return entries
}

// Remove deletes the entry for id if present.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, id)
}

// Len returns the number of tracked entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.records)
}
