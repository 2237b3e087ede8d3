/*
Copyright 2022 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/stefanprodan/gaia/pkg/record"
)

// MemoryStore is an in-memory Store. Records are kept encoded so callers
// never share state with the store.
type MemoryStore[R record.Record] struct {
	resource  string
	newRecord NewRecordFunc[R]

	mu      sync.RWMutex
	records map[int64][]byte
	index   map[string]int64
	nextID  int64
}

// NewMemoryStore returns an empty in-memory store for the named resource.
func NewMemoryStore[R record.Record](resource string, newRecord NewRecordFunc[R]) *MemoryStore[R] {
	return &MemoryStore[R]{
		resource:  resource,
		newRecord: newRecord,
		records:   make(map[int64][]byte),
		index:     make(map[string]int64),
	}
}

// FindByID returns the record with the given id, soft-deleted records included.
func (s *MemoryStore[R]) FindByID(ctx context.Context, id int64) (R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.get(id, fmt.Sprint(id))
}

// FindByNamespaceAndName returns the active record with the given namespace and name.
func (s *MemoryStore[R]) FindByNamespaceAndName(ctx context.Context, namespace, name string) (R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := record.Key(namespace, name)
	id, ok := s.index[key]
	if !ok {
		var zero R
		return zero, &NotFoundError{Resource: s.resource, Key: key}
	}
	return s.get(id, key)
}

// ExistsByNamespaceAndName reports whether an active record uses the namespace and name.
func (s *MemoryStore[R]) ExistsByNamespaceAndName(ctx context.Context, namespace, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.index[record.Key(namespace, name)]
	return ok, nil
}

// FindAllActive returns the active records ordered by id.
func (s *MemoryStore[R]) FindAllActive(ctx context.Context) ([]R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.index))
	for _, id := range s.index {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	records := make([]R, 0, len(ids))
	for _, id := range ids {
		r, err := s.get(id, fmt.Sprint(id))
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// Save inserts or updates the record.
func (s *MemoryStore[R]) Save(ctx context.Context, r R) error {
	return s.SaveAll(ctx, []R{r})
}

// SaveAll saves the records atomically.
func (s *MemoryStore[R]) SaveAll(ctx context.Context, records []R) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// stage on copies so a failing record leaves the store untouched
	staged := make(map[int64][]byte, len(s.records))
	for k, v := range s.records {
		staged[k] = v
	}
	index := make(map[string]int64, len(s.index))
	for k, v := range s.index {
		index[k] = v
	}
	nextID := s.nextID

	var assigned []*record.Meta
	fail := func(err error) error {
		for _, m := range assigned {
			m.ID = 0
		}
		return err
	}

	for _, r := range records {
		meta := r.GetMeta()
		key := meta.Key()

		if holder, ok := index[key]; ok && meta.Active() && holder != meta.ID {
			return fail(&AlreadyExistsError{Resource: s.resource, Key: key})
		}

		if meta.ID == 0 {
			nextID++
			meta.ID = nextID
			assigned = append(assigned, meta)
		}

		if prev, ok := staged[meta.ID]; ok {
			prevMeta, err := decodeMeta(prev)
			if err != nil {
				return fail(err)
			}
			if holder, ok := index[prevMeta.Key()]; ok && holder == meta.ID {
				delete(index, prevMeta.Key())
			}
		}
		if meta.Active() {
			index[key] = meta.ID
		}

		data, err := encode(r)
		if err != nil {
			return fail(fmt.Errorf("failed to encode %s: %w", s.resource, err))
		}
		staged[meta.ID] = data
	}

	s.records = staged
	s.index = index
	s.nextID = nextID
	return nil
}

func (s *MemoryStore[R]) get(id int64, key string) (R, error) {
	var zero R
	data, ok := s.records[id]
	if !ok {
		return zero, &NotFoundError{Resource: s.resource, Key: key}
	}
	r := s.newRecord()
	if err := decode(data, r); err != nil {
		return zero, err
	}
	return r, nil
}
