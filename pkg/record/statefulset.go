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

// EnvFromType selects the object kind an EnvFrom entry references.
type EnvFromType string

const (
	EnvFromConfigMap EnvFromType = "config-map"
	EnvFromSecret    EnvFromType = "secret"
)

// EnvVar is a literal environment variable.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EnvFrom imports all keys of a ConfigMap or Secret as environment variables.
type EnvFrom struct {
	Name string      `json:"name"`
	Type EnvFromType `json:"type"`
}

// Port is a container port. Unset fields are omitted from the native object.
type Port struct {
	ContainerPort *int32 `json:"container_port,omitempty"`
	HostPort      *int32 `json:"host_port,omitempty"`
	Name          string `json:"name,omitempty"`
	Protocol      string `json:"protocol,omitempty"`
	HostIP        string `json:"host_ip,omitempty"`
}

// VolumeMount mounts a pod volume into a container.
type VolumeMount struct {
	Name      string `json:"name"`
	MountPath string `json:"mount_path"`
	ReadOnly  bool   `json:"read_only"`
}

// Container describes a container of a stateful set pod template.
type Container struct {
	Name    string            `json:"name"`
	Image   string            `json:"image"`
	Command []string          `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     []EnvVar          `json:"env,omitempty"`
	EnvFrom []EnvFrom         `json:"env_from,omitempty"`
	Ports   []Port            `json:"ports,omitempty"`
	Volumes []VolumeMount     `json:"volumes,omitempty"`
	Limits  map[string]string `json:"limits,omitempty"`
}

// Volume is a pod volume, Configs must hold the keys required by Type.
// ReadOnly applies to claim and NFS volumes only.
type Volume struct {
	Name     string            `json:"name"`
	ReadOnly bool              `json:"read_only"`
	Type     VolumeType        `json:"type"`
	Configs  map[string]string `json:"configs"`
}

// StatefulSet is the record of an apps/v1 StatefulSet.
type StatefulSet struct {
	Meta `json:",inline"`

	Replicas       int32       `json:"replicas"`
	InitContainers []Container `json:"init_containers,omitempty"`
	Containers     []Container `json:"containers"`
	Volumes        []Volume    `json:"volumes,omitempty"`
}

func (s *StatefulSet) String() string {
	return fmt.Sprintf("StatefulSet [id=%d, namespace=%s, name=%s, replicas=%d, containers=%d, volumes=%d]",
		s.ID, s.Namespace, s.Name, s.Replicas, len(s.Containers), len(s.Volumes))
}

// StatefulSetUpdate holds the mutable fields of a StatefulSet.
// A nil field is left untouched, an empty list replaces the current one.
type StatefulSetUpdate struct {
	Replicas       *int32      `json:"replicas"`
	InitContainers []Container `json:"init_containers"`
	Containers     []Container `json:"containers"`
	Volumes        []Volume    `json:"volumes"`
}

// ApplyTo copies the set fields onto s.
func (u StatefulSetUpdate) ApplyTo(s *StatefulSet) {
	if u.Replicas != nil {
		s.Replicas = *u.Replicas
	}
	if u.InitContainers != nil {
		s.InitContainers = u.InitContainers
	}
	if u.Containers != nil {
		s.Containers = u.Containers
	}
	if u.Volumes != nil {
		s.Volumes = u.Volumes
	}
}
