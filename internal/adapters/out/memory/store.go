// Package memory keeps subcontract orders in process memory. It honours the
// same compare-and-set contract as the PostgreSQL adapter and is used for
// local runs and tests that do not need a database.
package memory

import (
	"fmt"
	"sync"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"
)

// write is one pending change to the store. expected is the version the
// writer loaded; inserts expect 0.
type write struct {
	snapshot order.Snapshot
	expected int64
	insert   bool
}

// Store holds the latest snapshot of every order.
type Store struct {
	mu      sync.RWMutex
	orders  map[kernel.UUID]order.Snapshot
	numbers map[string]kernel.UUID
}

func NewStore() *Store {
	return &Store{
		orders:  make(map[kernel.UUID]order.Snapshot),
		numbers: make(map[string]kernel.UUID),
	}
}

func (s *Store) get(id kernel.UUID) (order.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.orders[id]
	return snapshot, ok
}

// all returns every stored snapshot in no particular order.
func (s *Store) all() []order.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]order.Snapshot, 0, len(s.orders))
	for _, snapshot := range s.orders {
		out = append(out, snapshot)
	}
	return out
}

// check validates writes against the stored state without applying them.
func (s *Store) check(writes []write) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.stage(writes)
	return err
}

// apply validates and stores writes as one unit: either all of them land or
// none does.
func (s *Store) apply(writes []write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged, err := s.stage(writes)
	if err != nil {
		return err
	}

	for id, snapshot := range staged {
		s.orders[id] = snapshot
		s.numbers[snapshot.Number] = id
	}
	return nil
}

// stage replays writes on top of the stored state. Callers hold the lock.
func (s *Store) stage(writes []write) (map[kernel.UUID]order.Snapshot, error) {
	staged := make(map[kernel.UUID]order.Snapshot, len(writes))
	lookup := func(id kernel.UUID) (order.Snapshot, bool) {
		if snapshot, ok := staged[id]; ok {
			return snapshot, true
		}
		snapshot, ok := s.orders[id]
		return snapshot, ok
	}

	for _, w := range writes {
		id := w.snapshot.ID
		current, exists := lookup(id)

		if w.insert {
			if exists {
				return nil, errs.NewStorageError("insert order", fmt.Errorf("order %s already exists", id))
			}
			if owner, taken := s.numbers[w.snapshot.Number]; taken && !owner.IsEqual(id) {
				return nil, errs.NewStorageError(
					"insert order", fmt.Errorf("order number %q already exists", w.snapshot.Number),
				)
			}
			for _, other := range staged {
				if other.Number == w.snapshot.Number {
					return nil, errs.NewStorageError(
						"insert order", fmt.Errorf("order number %q already exists", w.snapshot.Number),
					)
				}
			}
			staged[id] = w.snapshot
			continue
		}

		if !exists {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		if current.Version != w.expected {
			return nil, errs.NewConcurrentModificationError("order", id.String(), w.expected, current.Version)
		}
		staged[id] = w.snapshot
	}

	return staged, nil
}
