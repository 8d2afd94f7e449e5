// Package store contains the canonical ID-keyed cache for one entity type.
//
// A Store is a pure reflection of the last-known server state: records enter
// through LoadMany/UpsertOne/SetFocused after a successful response and leave
// through Remove after a confirmed delete. Every mutation of the mapping or
// the focus pointer bumps Version, which derived views use as their
// memoization key.
package store

import (
	"sync"

	"github.com/example/sprintdesk/internal/models"
)

// Record is any entity identified by a backend-assigned numeric ID.
type Record interface {
	EntityID() int
}

// Store holds the records of one entity type plus its focus pointer and
// loading/error bookkeeping. The zero value is not usable; use New.
type Store[T Record] struct {
	mu      sync.RWMutex
	name    string
	records map[int]T
	focused *T
	loading bool
	err     models.FieldErrors
	version uint64
}

// New creates an empty store. name identifies the entity type in errors.
func New[T Record](name string) *Store[T] {
	return &Store[T]{
		name:    name,
		records: make(map[int]T),
	}
}

// Name returns the entity type name.
func (s *Store[T]) Name() string {
	return s.name
}

// LoadMany upserts every record keyed by its ID. Records absent from the list
// are kept. Records without a valid ID are skipped and reported through an
// *InvalidRecordError; the valid ones are still applied in one mutation.
func (s *Store[T]) LoadMany(records []T) error {
	valid := make([]T, 0, len(records))
	var rejected int
	for _, r := range records {
		if r.EntityID() <= 0 {
			rejected++
			continue
		}
		valid = append(valid, r)
	}

	s.mu.Lock()
	for _, r := range valid {
		s.records[r.EntityID()] = r
		if s.focused != nil && (*s.focused).EntityID() == r.EntityID() {
			rec := r
			s.focused = &rec
		}
	}
	if len(valid) > 0 {
		s.version++
	}
	s.mu.Unlock()

	if rejected > 0 {
		return &InvalidRecordError{Store: s.name, Count: rejected}
	}
	return nil
}

// UpsertOne inserts or overwrites the record and refreshes the focus pointer
// when it points at the same ID.
func (s *Store[T]) UpsertOne(record T) error {
	if record.EntityID() <= 0 {
		return &InvalidRecordError{Store: s.name, Count: 1}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.EntityID()] = record
	if s.focused != nil && (*s.focused).EntityID() == record.EntityID() {
		s.focused = &record
	}
	s.version++
	return nil
}

// SetFocused sets the focus pointer. A non-nil record is also upserted.
func (s *Store[T]) SetFocused(record *T) error {
	if record != nil && (*record).EntityID() <= 0 {
		return &InvalidRecordError{Store: s.name, Count: 1}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if record == nil {
		s.focused = nil
	} else {
		rec := *record
		s.records[rec.EntityID()] = rec
		s.focused = &rec
	}
	s.version++
	return nil
}

// Remove deletes the record and clears the focus pointer if it pointed at id.
// Removing an unknown id is a no-op.
func (s *Store[T]) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	focusedHere := s.focused != nil && (*s.focused).EntityID() == id
	if !ok && !focusedHere {
		return
	}
	delete(s.records, id)
	if focusedHere {
		s.focused = nil
	}
	s.version++
}

// SetLoading records whether a request for this entity type is in flight.
func (s *Store[T]) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// SetError stores the entity-scoped error slot; nil clears it.
func (s *Store[T]) SetError(err models.FieldErrors) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok
}

// All returns a copy of every record in unspecified order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}

// Snapshot returns a copy of the mapping together with its version, read
// under a single lock so the two always agree.
func (s *Store[T]) Snapshot() (map[int]T, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int]T, len(s.records))
	for id, r := range s.records {
		out[id] = r
	}
	return out, s.version
}

// Len returns the number of cached records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Focused returns the focused record, if any.
func (s *Store[T]) Focused() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.focused == nil {
		var zero T
		return zero, false
	}
	return *s.focused, true
}

// IsLoading reports whether a request is in flight.
func (s *Store[T]) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error slot, or nil.
func (s *Store[T]) Err() models.FieldErrors {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Version returns the mutation counter of the mapping and focus pointer.
// Loading and error bookkeeping do not change it.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
