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

// Package record defines the locally persisted representation of the
// Kubernetes objects managed by gaia.
package record

import (
	"strings"
)

// Meta holds the bookkeeping fields shared by every record kind.
type Meta struct {
	ID        int64  `json:"id"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	DeletedAt *int64 `json:"deleted_at"`
}

// GetMeta returns the record metadata.
func (m *Meta) GetMeta() *Meta {
	return m
}

// Active reports whether the record has not been soft-deleted.
func (m *Meta) Active() bool {
	return m.DeletedAt == nil
}

// Normalize lower-cases the namespace and name, and falls back to
// defaultNamespace when no namespace is set.
func (m *Meta) Normalize(defaultNamespace string) {
	m.Namespace = strings.ToLower(strings.TrimSpace(m.Namespace))
	if m.Namespace == "" {
		m.Namespace = strings.ToLower(defaultNamespace)
	}
	m.Name = strings.ToLower(strings.TrimSpace(m.Name))
}

// Key returns the record identity in the format <namespace>/<name>.
func (m *Meta) Key() string {
	return Key(m.Namespace, m.Name)
}

// Key joins namespace and name in the format <namespace>/<name>.
func Key(namespace, name string) string {
	return namespace + "/" + name
}

// Record is implemented by every persisted resource kind.
type Record interface {
	GetMeta() *Meta
}
