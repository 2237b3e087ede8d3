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

package mapper

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/stefanprodan/gaia/pkg/record"
)

// Secret returns the Opaque Secret for the given record, the values are
// stored as raw bytes and encoded once by the API codec.
func Secret(s *record.Secret) *corev1.Secret {
	secret := &corev1.Secret{
		ObjectMeta: objectMeta(s.Namespace, s.Name),
		Type:       corev1.SecretTypeOpaque,
	}
	if s.Values != nil {
		secret.Data = make(map[string][]byte, len(s.Values))
		for k, v := range s.Values {
			secret.Data[k] = []byte(v)
		}
	}
	return secret
}

// SecretRecord returns the record fields of the given Secret,
// only the key names are kept.
func SecretRecord(secret *corev1.Secret) *record.Secret {
	r := &record.Secret{}
	r.Namespace = secret.Namespace
	r.Name = secret.Name
	if len(secret.Data) > 0 {
		keys := make(map[string]string, len(secret.Data))
		for k := range secret.Data {
			keys[k] = ""
		}
		r.Keys = record.SortedKeys(keys)
	}
	return r
}
