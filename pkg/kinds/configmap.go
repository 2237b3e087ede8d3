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

// RootCAConfigMap is published by the control plane in every namespace.
const RootCAConfigMap = "kube-root-ca.crt"

// ConfigMaps maps config map records to core/v1 ConfigMaps.
type ConfigMaps struct{}

func (ConfigMaps) Kind() string                     { return "ConfigMap" }
func (ConfigMaps) NewRecord() *record.ConfigMap     { return &record.ConfigMap{} }
func (ConfigMaps) NewObject() *corev1.ConfigMap     { return &corev1.ConfigMap{} }
func (ConfigMaps) NewObjectList() client.ObjectList { return &corev1.ConfigMapList{} }
func (ConfigMaps) Namespaced() bool                 { return true }
func (ConfigMaps) LiveView() bool                   { return false }
func (ConfigMaps) Default(*record.ConfigMap)        {}

func (k ConfigMaps) Validate(c *record.ConfigMap) error {
	if err := requireName("config map", &c.Meta); err != nil {
		return err
	}
	if len(c.Data) == 0 {
		return errdefs.BadRequest("data", "config map data is required")
	}
	return nil
}

func (ConfigMaps) ToNative(c *record.ConfigMap) (*corev1.ConfigMap, error) {
	return mapper.ConfigMap(c), nil
}

func (ConfigMaps) FromNative(cm *corev1.ConfigMap) (*record.ConfigMap, error) {
	return mapper.ConfigMapRecord(cm), nil
}

func (ConfigMaps) Merge(dst, src *record.ConfigMap) {
	dst.Data = src.Data
}

func (ConfigMaps) Skip(cm *corev1.ConfigMap) bool {
	return cm.Name == RootCAConfigMap
}
