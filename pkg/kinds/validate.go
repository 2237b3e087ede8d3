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
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/mapper"
	"github.com/stefanprodan/gaia/pkg/record"
)

func requireName(kind string, meta *record.Meta) error {
	if meta.Name == "" {
		return errdefs.BadRequest("name", "%s name is required", kind)
	}
	return nil
}

func requireCapacity(capacity string) error {
	if capacity == "" {
		return errdefs.BadRequest("capacity", "capacity is required")
	}
	if _, err := resource.ParseQuantity(capacity); err != nil {
		return errdefs.BadRequest("capacity", "invalid capacity %q", capacity)
	}
	return nil
}

func requireAccessMode(mode record.AccessMode) error {
	if mode == "" {
		return errdefs.BadRequest("access_mode", "access mode is required")
	}
	if !mode.Valid() {
		return errdefs.BadRequest("access_mode", "unsupported access mode %q", mode)
	}
	return nil
}

func requireVolume(v record.Volume) error {
	if v.Name == "" {
		return errdefs.BadRequest("volumes", "volume name is required")
	}
	if v.Type == "" {
		return errdefs.BadRequest("type", "volume %s type is required", v.Name)
	}
	if v.Type == record.HostPath && v.ReadOnly {
		return errdefs.BadRequest("read_only", "host path volume %s can't be read-only", v.Name)
	}
	return mapper.RequireConfigs(v.Type, v.Configs)
}

func requireContainers(field string, containers []record.Container) error {
	for i, c := range containers {
		if strings.TrimSpace(c.Name) == "" {
			return errdefs.BadRequest(field, "container %d name is required", i)
		}
		if strings.TrimSpace(c.Image) == "" {
			return errdefs.BadRequest(field, "container %s image is required", c.Name)
		}
		for _, e := range c.EnvFrom {
			if e.Name == "" {
				return errdefs.BadRequest("env_from", "container %s env source name is required", c.Name)
			}
			if e.Type != record.EnvFromConfigMap && e.Type != record.EnvFromSecret {
				return errdefs.BadRequest("env_from", "unsupported env source type %q", e.Type)
			}
		}
		for key, value := range c.Limits {
			if _, err := resource.ParseQuantity(value); err != nil {
				return errdefs.BadRequest(key, "container %s has an invalid %s limit %q", c.Name, key, value)
			}
		}
	}
	return nil
}

func volumeNames(volumes []record.Volume) map[string]bool {
	names := make(map[string]bool, len(volumes))
	for _, v := range volumes {
		names[v.Name] = true
	}
	return names
}

func requireMounts(containers []record.Container, volumes map[string]bool) error {
	for _, c := range containers {
		for _, m := range c.Volumes {
			if m.MountPath == "" {
				return errdefs.BadRequest("mount_path", "container %s mount %s requires a path", c.Name, m.Name)
			}
			if !volumes[m.Name] {
				return errdefs.BadRequest("volumes", "container %s mounts the undefined volume %q", c.Name, m.Name)
			}
		}
	}
	return nil
}
