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

// AccessMode is the single access mode of a volume or claim.
type AccessMode string

const (
	ReadWriteOnce    AccessMode = "ReadWriteOnce"
	ReadOnlyMany     AccessMode = "ReadOnlyMany"
	ReadWriteMany    AccessMode = "ReadWriteMany"
	ReadWriteOncePod AccessMode = "ReadWriteOncePod"
)

// Valid reports whether m is one of the known access modes.
func (m AccessMode) Valid() bool {
	switch m {
	case ReadWriteOnce, ReadOnlyMany, ReadWriteMany, ReadWriteOncePod:
		return true
	default:
		return false
	}
}

// VolumeType selects the volume source and the config keys it requires.
type VolumeType string

const (
	// ClaimReference mounts a PersistentVolumeClaim, requires ConfigClaimName.
	ClaimReference VolumeType = "claim-reference"
	// NetworkFileShare mounts an NFS export, requires ConfigServer and ConfigPath.
	NetworkFileShare VolumeType = "network-file-share"
	// HostPath mounts a node directory, requires ConfigPath.
	HostPath VolumeType = "host-path"
)

// Volume config keys.
const (
	ConfigClaimName = "claim_name"
	ConfigServer    = "server"
	ConfigPath      = "path"
)

// RequiredConfigs returns the config keys the volume type must carry.
func (t VolumeType) RequiredConfigs() []string {
	switch t {
	case ClaimReference:
		return []string{ConfigClaimName}
	case NetworkFileShare:
		return []string{ConfigServer, ConfigPath}
	case HostPath:
		return []string{ConfigPath}
	default:
		return nil
	}
}

// PersistentVolume is the record of a core/v1 PersistentVolume.
type PersistentVolume struct {
	Meta `json:",inline"`

	Capacity   string            `json:"capacity"`
	AccessMode AccessMode        `json:"access_mode"`
	Type       VolumeType        `json:"type"`
	Configs    map[string]string `json:"configs"`
}

func (v *PersistentVolume) String() string {
	return fmt.Sprintf("PersistentVolume [id=%d, namespace=%s, name=%s, capacity=%s, accessMode=%s, type=%s, configs=%v]",
		v.ID, v.Namespace, v.Name, v.Capacity, v.AccessMode, v.Type, v.Configs)
}

// PersistentVolumeUpdate holds the mutable fields of a PersistentVolume,
// empty fields are left untouched.
type PersistentVolumeUpdate struct {
	Capacity   string            `json:"capacity"`
	AccessMode AccessMode        `json:"access_mode"`
	Type       VolumeType        `json:"type"`
	Configs    map[string]string `json:"configs"`
}

// ApplyTo copies the set fields onto v.
func (u PersistentVolumeUpdate) ApplyTo(v *PersistentVolume) {
	if u.Capacity != "" {
		v.Capacity = u.Capacity
	}
	if u.AccessMode != "" {
		v.AccessMode = u.AccessMode
	}
	if u.Type != "" {
		v.Type = u.Type
	}
	if u.Configs != nil {
		v.Configs = u.Configs
	}
}

// PersistentVolumeClaim is the record of a core/v1 PersistentVolumeClaim
// bound to the volume named VolumeName.
type PersistentVolumeClaim struct {
	Meta `json:",inline"`

	Capacity   string     `json:"capacity"`
	AccessMode AccessMode `json:"access_mode"`
	VolumeName string     `json:"volume_name"`
}

func (c *PersistentVolumeClaim) String() string {
	return fmt.Sprintf("PersistentVolumeClaim [id=%d, namespace=%s, name=%s, capacity=%s, accessMode=%s, volumeName=%s]",
		c.ID, c.Namespace, c.Name, c.Capacity, c.AccessMode, c.VolumeName)
}

// PersistentVolumeClaimUpdate holds the mutable fields of a PersistentVolumeClaim,
// empty fields are left untouched.
type PersistentVolumeClaimUpdate struct {
	Capacity   string     `json:"capacity"`
	AccessMode AccessMode `json:"access_mode"`
	VolumeName string     `json:"volume_name"`
}

// ApplyTo copies the set fields onto c.
func (u PersistentVolumeClaimUpdate) ApplyTo(c *PersistentVolumeClaim) {
	if u.Capacity != "" {
		c.Capacity = u.Capacity
	}
	if u.AccessMode != "" {
		c.AccessMode = u.AccessMode
	}
	if u.VolumeName != "" {
		c.VolumeName = u.VolumeName
	}
}
