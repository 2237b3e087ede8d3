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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/stefanprodan/gaia/pkg/record"
)

// ConfigMap returns the ConfigMap for the given record.
func ConfigMap(c *record.ConfigMap) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: objectMeta(c.Namespace, c.Name),
		Data:       c.Data,
	}
}

// ConfigMapRecord returns the record fields of the given ConfigMap.
func ConfigMapRecord(cm *corev1.ConfigMap) *record.ConfigMap {
	r := &record.ConfigMap{Data: cm.Data}
	r.Namespace = cm.Namespace
	r.Name = cm.Name
	return r
}

func objectMeta(namespace, name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Namespace: namespace,
		Name:      name,
	}
}
