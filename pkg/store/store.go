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

// Package store persists gaia records.
//
// Records are keyed by a numeric id assigned on first save and indexed by
// namespace/name while active. A soft-deleted record keeps its id and stays
// readable by id, but releases its namespace/name for reuse.
package store

import (
	"context"
	"encoding/json"

	"github.com/stefanprodan/gaia/pkg/record"
)

// Store defines the persistence operations for one record kind.
type Store[R record.Record] interface {
	// FindByID returns the record with the given id, soft-deleted records included.
	FindByID(ctx context.Context, id int64) (R, error)

	// FindByNamespaceAndName returns the active record with the given namespace and name.
	FindByNamespaceAndName(ctx context.Context, namespace, name string) (R, error)

	// ExistsByNamespaceAndName reports whether an active record uses the namespace and name.
	ExistsByNamespaceAndName(ctx context.Context, namespace, name string) (bool, error)

	// FindAllActive returns the active records ordered by id.
	FindAllActive(ctx context.Context) ([]R, error)

	// Save inserts or updates the record, assigning an id to new records.
	Save(ctx context.Context, r R) error

	// SaveAll saves the records in a single transaction.
	SaveAll(ctx context.Context, records []R) error
}

// NewRecordFunc returns an empty record used for decoding.
type NewRecordFunc[R record.Record] func() R

func encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// decodeMeta reads only the bookkeeping fields of an encoded record.
func decodeMeta(data []byte) (record.Meta, error) {
	var meta record.Meta
	err := json.Unmarshal(data, &meta)
	return meta, err
}
