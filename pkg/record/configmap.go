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

import "fmt"

// ConfigMap is the record of a core/v1 ConfigMap.
type ConfigMap struct {
	Meta `json:",inline"`

	Data map[string]string `json:"data"`
}

func (c *ConfigMap) String() string {
	return fmt.Sprintf("ConfigMap [id=%d, namespace=%s, name=%s, data=%v]", c.ID, c.Namespace, c.Name, c.Data)
}

// ConfigMapUpdate holds the mutable fields of a ConfigMap.
type ConfigMapUpdate struct {
	Data map[string]string `json:"data"`
}

// ApplyTo replaces the config map data.
func (u ConfigMapUpdate) ApplyTo(c *ConfigMap) {
	c.Data = u.Data
}
