// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/hwto/hwto/storage"
)

// Storage keys.
const (
	OfficeStorageKey   = "office-storage"
	EmployeeStorageKey = "employee-storage"
)

// StorageVersion is the persisted envelope version. Anything else loads as
// empty.
const StorageVersion = 1

type envelope[T any] struct {
	State   state[T] `json:"state"`
	Version int      `json:"version"`
}

type state[T any] struct {
	Records     []T  `json:"records"`
	Initialized bool `json:"initialized"`
}

// Store is a persisted collection holding at most one record per id. Every
// mutation is written through to the KV; a write error is returned after the
// in-memory state has already changed.
type Store[T Record[T]] struct {
	mu          sync.RWMutex
	kv          storage.KV
	key         string
	records     []T
	index       map[string]int
	initialized bool
	restored    bool
}

// NewStore returns an empty store persisting under key. Call Load to restore
// the persisted state.
func NewStore[T Record[T]](kv storage.KV, key string) *Store[T] {
	return &Store[T]{kv: kv, key: key, index: make(map[string]int)}
}

// NewOfficeStore returns the office collection.
func NewOfficeStore(kv storage.KV) *Store[Office] {
	return NewStore[Office](kv, OfficeStorageKey)
}

// NewEmployeeStore returns the employee collection.
func NewEmployeeStore(kv storage.KV) *Store[Employee] {
	return NewStore[Employee](kv, EmployeeStorageKey)
}

// Load replaces the in-memory state with the persisted one. Missing,
// unreadable or outdated state leaves the store empty and uninitialized.
// It reports whether persisted state was restored.
func (s *Store[T]) Load() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.restored = false

	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		log.Printf("%s: reading persisted state: %v; starting empty", s.key, err)

		return false
	}

	if !ok {
		return false
	}

	var env envelope[T]
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		log.Printf("%s: decoding persisted state: %v; starting empty", s.key, err)

		return false
	}

	if env.Version != StorageVersion {
		log.Printf("%s: unsupported version %d; starting empty", s.key, env.Version)

		return false
	}

	for _, r := range env.State.Records {
		s.insert(r)
	}

	s.initialized = env.State.Initialized
	s.restored = true

	return true
}

// Restored reports whether persisted state exists, found by Load or written
// since.
func (s *Store[T]) Restored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.restored
}

// All returns a copy of the records in insertion order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.records))
	copy(out, s.records)

	return out
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Get returns the record with id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[id]
	if !ok {
		var zero T

		return zero, false
	}

	return s.records[idx], true
}

// Initialized reports whether the collection holds user or seed data that
// should not be replaced automatically.
func (s *Store[T]) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.initialized
}

// SetAll replaces the collection. Later duplicates of an id are dropped.
func (s *Store[T]) SetAll(records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()

	for _, r := range records {
		s.insert(r)
	}

	s.initialized = true

	return s.persist()
}

// AddMany appends the records whose id is not stored yet; existing records
// are kept unchanged. It returns the number added.
func (s *Store[T]) AddMany(records []T) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addLocked(records)
}

// AddWithinLimit is AddMany after a capacity check against the current size.
// A breach rejects the whole batch with a CapacityError and stores nothing.
// The check and the inserts happen under the same lock.
func (s *Store[T]) AddWithinLimit(collection string, limit int, records []T) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := CheckCapacity(collection, len(s.records), len(records), limit); err != nil {
		return 0, err
	}

	return s.addLocked(records)
}

// addLocked requires s.mu to be held.
func (s *Store[T]) addLocked(records []T) (int, error) {
	added := 0

	for _, r := range records {
		if s.insert(r) {
			added++
		}
	}

	if added == 0 {
		return 0, nil
	}

	s.initialized = true

	return added, s.persist()
}

// UpdateGeocode replaces the coordinates and status of the record with id.
// It reports false, without writing, when id is unknown.
func (s *Store[T]) UpdateGeocode(id string, u GeocodeUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[id]
	if !ok {
		return false, nil
	}

	s.records[idx] = s.records[idx].WithGeocode(u)

	return true, s.persist()
}

// Clear removes every record and marks the collection uninitialized.
func (s *Store[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()

	return s.persist()
}

// MarkInitialized sets the initialized flag.
func (s *Store[T]) MarkInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	s.initialized = true

	return s.persist()
}

func (s *Store[T]) reset() {
	s.records = nil
	s.index = make(map[string]int)
	s.initialized = false
}

func (s *Store[T]) insert(r T) bool {
	id := r.RecordID()
	if _, dup := s.index[id]; dup {
		return false
	}

	s.index[id] = len(s.records)
	s.records = append(s.records, r)

	return true
}

func (s *Store[T]) persist() error {
	records := s.records
	if records == nil {
		records = []T{}
	}

	data, err := json.Marshal(envelope[T]{
		State:   state[T]{Records: records, Initialized: s.initialized},
		Version: StorageVersion,
	})
	if err != nil {
		return fmt.Errorf("%s: encoding state: %w", s.key, err)
	}

	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("%s: %w", s.key, err)
	}

	s.restored = true

	return nil
}

// SeedIfEmpty fills a store that had nothing persisted with seed records. A
// store the user cleared stays empty. It reports whether seeding happened.
func SeedIfEmpty[T Record[T]](s *Store[T], seed func() []T) (bool, error) {
	if s.Restored() || s.Len() > 0 {
		return false, nil
	}

	if err := s.SetAll(seed()); err != nil {
		return true, err
	}

	return true, nil
}
