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

package manager

import (
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/stefanprodan/gaia/pkg/record"
)

// Kind describes how the records of one object kind map onto
// Kubernetes objects.
type Kind[R record.Record, O client.Object] interface {
	// Kind returns the Kubernetes kind name, e.g. ConfigMap.
	Kind() string

	NewRecord() R
	NewObject() O
	NewObjectList() client.ObjectList

	// Namespaced is false for cluster scoped kinds.
	Namespaced() bool

	// Default fills in the kind specific defaults of a normalized record.
	Default(r R)

	// Validate returns a BadRequestError naming the first invalid field.
	Validate(r R) error

	ToNative(r R) (O, error)
	FromNative(o O) (R, error)

	// Merge copies the payload fields of src into dst, leaving the
	// bookkeeping fields of dst untouched.
	Merge(dst, src R)

	// Skip reports whether a cluster object is excluded from sync.
	Skip(o O) bool

	// LiveView reports whether lookups by name return the live object
	// next to the record.
	LiveView() bool
}

// UpdatePreparer is implemented by kinds that carry fields of the existing
// cluster object over to the desired object before an update.
type UpdatePreparer[O client.Object] interface {
	PrepareUpdate(desired, existing O)
}

// Patch is a partial update applied to a stored record.
type Patch[R record.Record] interface {
	ApplyTo(r R)
}

// View is a record together with its live cluster object.
type View[R record.Record, O client.Object] struct {
	Record R `json:"data"`
	Object O `json:"object,omitempty"`
}
