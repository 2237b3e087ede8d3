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

package kinds

import (
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/mapper"
	"github.com/stefanprodan/gaia/pkg/record"
)

// Secrets maps secret records to opaque core/v1 Secrets. Only the secret
// keys are stored, the values live in the cluster.
type Secrets struct{}

func (Secrets) Kind() string                     { return "Secret" }
func (Secrets) NewRecord() *record.Secret        { return &record.Secret{} }
func (Secrets) NewObject() *corev1.Secret        { return &corev1.Secret{} }
func (Secrets) NewObjectList() client.ObjectList { return &corev1.SecretList{} }
func (Secrets) Namespaced() bool                 { return true }
func (Secrets) LiveView() bool                   { return false }
func (Secrets) Default(*record.Secret)           {}

func (Secrets) Validate(s *record.Secret) error {
	if err := requireName("secret", &s.Meta); err != nil {
		return err
	}
	if len(s.Values) == 0 {
		return errdefs.BadRequest("data", "secret data is required")
	}
	return nil
}

func (Secrets) ToNative(s *record.Secret) (*corev1.Secret, error) {
	return mapper.Secret(s), nil
}

func (Secrets) FromNative(secret *corev1.Secret) (*record.Secret, error) {
	return mapper.SecretRecord(secret), nil
}

func (Secrets) Merge(dst, src *record.Secret) {
	dst.Keys = src.Keys
}

// Skip excludes the tokens the control plane issues to service accounts.
func (Secrets) Skip(secret *corev1.Secret) bool {
	return secret.Type == corev1.SecretTypeServiceAccountToken
}

// PrepareUpdate keeps the type of secrets created outside of gaia.
func (Secrets) PrepareUpdate(desired, existing *corev1.Secret) {
	if existing.Type != "" {
		desired.Type = existing.Type
	}
}
