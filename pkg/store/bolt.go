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
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/stefanprodan/gaia/pkg/record"
)

const indexSuffix = ".index"

// BoltStore holds the BoltDB database shared by the record collections.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens or creates the database at the given path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Collection stores the records of one kind in a bucket, with a second
// bucket indexing the active records by namespace/name.
type Collection[R record.Record] struct {
	db        *bolt.DB
	bucket    []byte
	index     []byte
	newRecord NewRecordFunc[R]
}

// NewCollection returns the collection stored in the named bucket,
// creating the buckets if needed.
func NewCollection[R record.Record](s *BoltStore, name string, newRecord NewRecordFunc[R]) (*Collection[R], error) {
	c := &Collection[R]{
		db:        s.db,
		bucket:    []byte(name),
		index:     []byte(name + indexSuffix),
		newRecord: newRecord,
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{c.bucket, c.index} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindByID returns the record with the given id, soft-deleted records included.
func (c *Collection[R]) FindByID(ctx context.Context, id int64) (R, error) {
	r := c.newRecord()
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(c.bucket).Get(idKey(id))
		if data == nil {
			return &NotFoundError{Resource: string(c.bucket), Key: fmt.Sprint(id)}
		}
		return decode(data, r)
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return r, nil
}

// FindByNamespaceAndName returns the active record with the given namespace and name.
func (c *Collection[R]) FindByNamespaceAndName(ctx context.Context, namespace, name string) (R, error) {
	r := c.newRecord()
	key := record.Key(namespace, name)
	err := c.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(c.index).Get([]byte(key))
		if id == nil {
			return &NotFoundError{Resource: string(c.bucket), Key: key}
		}
		data := tx.Bucket(c.bucket).Get(id)
		if data == nil {
			return &NotFoundError{Resource: string(c.bucket), Key: key}
		}
		return decode(data, r)
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return r, nil
}

// ExistsByNamespaceAndName reports whether an active record uses the namespace and name.
func (c *Collection[R]) ExistsByNamespaceAndName(ctx context.Context, namespace, name string) (bool, error) {
	var found bool
	err := c.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(c.index).Get([]byte(record.Key(namespace, name))) != nil
		return nil
	})
	return found, err
}

// FindAllActive returns the active records ordered by id.
func (c *Collection[R]) FindAllActive(ctx context.Context) ([]R, error) {
	var records []R
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).ForEach(func(k, v []byte) error {
			r := c.newRecord()
			if err := decode(v, r); err != nil {
				return fmt.Errorf("failed to decode %s %d: %w", c.bucket, btoi(k), err)
			}
			if r.GetMeta().Active() {
				records = append(records, r)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Save inserts or updates the record.
func (c *Collection[R]) Save(ctx context.Context, r R) error {
	return c.SaveAll(ctx, []R{r})
}

// SaveAll saves the records in one transaction, if any record fails
// none of them is persisted.
func (c *Collection[R]) SaveAll(ctx context.Context, records []R) error {
	if len(records) == 0 {
		return nil
	}
	assigned := make([]*record.Meta, 0, len(records))
	err := c.db.Update(func(tx *bolt.Tx) error {
		for _, r := range records {
			meta := r.GetMeta()
			if meta.ID == 0 {
				assigned = append(assigned, meta)
			}
			if err := c.put(tx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// ids handed out by a rolled back transaction are void
		for _, meta := range assigned {
			meta.ID = 0
		}
	}
	return err
}

func (c *Collection[R]) put(tx *bolt.Tx, r R) error {
	b := tx.Bucket(c.bucket)
	idx := tx.Bucket(c.index)
	meta := r.GetMeta()
	key := []byte(meta.Key())

	if meta.Active() {
		if holder := idx.Get(key); holder != nil && btoi(holder) != meta.ID {
			return &AlreadyExistsError{Resource: string(c.bucket), Key: meta.Key()}
		}
	}

	if meta.ID == 0 {
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate %s id: %w", c.bucket, err)
		}
		meta.ID = int64(seq)
	}
	id := idKey(meta.ID)

	if prev := b.Get(id); prev != nil {
		prevMeta, err := decodeMeta(prev)
		if err != nil {
			return fmt.Errorf("failed to decode %s %d: %w", c.bucket, meta.ID, err)
		}
		prevKey := []byte(prevMeta.Key())
		if holder := idx.Get(prevKey); holder != nil && btoi(holder) == meta.ID {
			if err := idx.Delete(prevKey); err != nil {
				return err
			}
		}
	}

	if meta.Active() {
		if err := idx.Put(key, id); err != nil {
			return fmt.Errorf("failed to index %s %s: %w", c.bucket, key, err)
		}
	}

	data, err := encode(r)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.bucket, err)
	}
	if err := b.Put(id, data); err != nil {
		return fmt.Errorf("failed to store %s: %w", c.bucket, err)
	}
	return nil
}

func idKey(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func btoi(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}
