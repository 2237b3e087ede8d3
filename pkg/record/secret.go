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

package record

import (
	"fmt"
	"sort"
)

// Secret is the record of a core/v1 Secret. Only the key names are persisted,
// the values are kept in Values for the lifetime of a request.
type Secret struct {
	Meta `json:",inline"`

	Keys []string `json:"keys"`

	Values map[string]string `json:"-"`
}

func (s *Secret) String() string {
	return fmt.Sprintf("Secret [id=%d, namespace=%s, name=%s, keys=%v]", s.ID, s.Namespace, s.Name, s.Keys)
}

// SetValues replaces the secret values and the key list derived from them.
func (s *Secret) SetValues(values map[string]string) {
	s.Values = values
	s.Keys = SortedKeys(values)
}

// SecretUpdate holds the mutable fields of a Secret.
type SecretUpdate struct {
	Data map[string]string `json:"data"`
}

// ApplyTo replaces the secret values.
func (u SecretUpdate) ApplyTo(s *Secret) {
	s.SetValues(u.Data)
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
