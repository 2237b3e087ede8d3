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

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/mapper"
	"github.com/stefanprodan/gaia/pkg/record"
)

// PersistentVolumes maps volume records to cluster scoped core/v1
// PersistentVolumes. The record namespace is bookkeeping only.
type PersistentVolumes struct{}

func (PersistentVolumes) Kind() string                        { return "PersistentVolume" }
func (PersistentVolumes) NewRecord() *record.PersistentVolume { return &record.PersistentVolume{} }
func (PersistentVolumes) NewObject() *corev1.PersistentVolume { return &corev1.PersistentVolume{} }
func (PersistentVolumes) NewObjectList() client.ObjectList    { return &corev1.PersistentVolumeList{} }
func (PersistentVolumes) Namespaced() bool                    { return false }
func (PersistentVolumes) LiveView() bool                      { return true }
func (PersistentVolumes) Default(*record.PersistentVolume)    {}
func (PersistentVolumes) Skip(*corev1.PersistentVolume) bool  { return false }

func (PersistentVolumes) Validate(v *record.PersistentVolume) error {
	if err := requireName("persistent volume", &v.Meta); err != nil {
		return err
	}
	if err := requireCapacity(v.Capacity); err != nil {
		return err
	}
	if err := requireAccessMode(v.AccessMode); err != nil {
		return err
	}
	switch v.Type {
	case "":
		return errdefs.BadRequest("type", "persistent volume type is required")
	case record.NetworkFileShare, record.HostPath:
	default:
		return errdefs.BadRequest("type", "unsupported persistent volume type %q", v.Type)
	}
	if len(v.Configs) == 0 {
		return errdefs.BadRequest("configs", "persistent volume configs are required")
	}
	return mapper.RequireConfigs(v.Type, v.Configs)
}

func (PersistentVolumes) ToNative(v *record.PersistentVolume) (*corev1.PersistentVolume, error) {
	return mapper.PersistentVolume(v)
}

func (PersistentVolumes) FromNative(pv *corev1.PersistentVolume) (*record.PersistentVolume, error) {
	return mapper.PersistentVolumeRecord(pv)
}

func (PersistentVolumes) Merge(dst, src *record.PersistentVolume) {
	dst.Capacity = src.Capacity
	dst.AccessMode = src.AccessMode
	dst.Type = src.Type
	dst.Configs = src.Configs
}

// PrepareUpdate keeps the binding and the fields defaulted by the cluster.
func (PersistentVolumes) PrepareUpdate(desired, existing *corev1.PersistentVolume) {
	desired.Labels = existing.Labels
	desired.Annotations = existing.Annotations
	desired.Spec.ClaimRef = existing.Spec.ClaimRef
	desired.Spec.StorageClassName = existing.Spec.StorageClassName
	desired.Spec.PersistentVolumeReclaimPolicy = existing.Spec.PersistentVolumeReclaimPolicy
	desired.Spec.VolumeMode = existing.Spec.VolumeMode
	desired.Spec.MountOptions = existing.Spec.MountOptions
	desired.Spec.NodeAffinity = existing.Spec.NodeAffinity
}

// PersistentVolumeClaims maps claim records to core/v1 PersistentVolumeClaims
// bound to a named volume.
type PersistentVolumeClaims struct{}

func (PersistentVolumeClaims) Kind() string { return "PersistentVolumeClaim" }
func (PersistentVolumeClaims) NewRecord() *record.PersistentVolumeClaim {
	return &record.PersistentVolumeClaim{}
}
func (PersistentVolumeClaims) NewObject() *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{}
}
func (PersistentVolumeClaims) NewObjectList() client.ObjectList {
	return &corev1.PersistentVolumeClaimList{}
}
func (PersistentVolumeClaims) Namespaced() bool                        { return true }
func (PersistentVolumeClaims) LiveView() bool                          { return true }
func (PersistentVolumeClaims) Skip(*corev1.PersistentVolumeClaim) bool { return false }

func (PersistentVolumeClaims) Default(c *record.PersistentVolumeClaim) {
	c.VolumeName = strings.ToLower(strings.TrimSpace(c.VolumeName))
}

func (PersistentVolumeClaims) Validate(c *record.PersistentVolumeClaim) error {
	if err := requireName("persistent volume claim", &c.Meta); err != nil {
		return err
	}
	if err := requireCapacity(c.Capacity); err != nil {
		return err
	}
	if err := requireAccessMode(c.AccessMode); err != nil {
		return err
	}
	if c.VolumeName == "" {
		return errdefs.BadRequest("volume_name", "persistent volume claim volume name is required")
	}
	return nil
}

func (PersistentVolumeClaims) ToNative(c *record.PersistentVolumeClaim) (*corev1.PersistentVolumeClaim, error) {
	return mapper.PersistentVolumeClaim(c)
}

func (PersistentVolumeClaims) FromNative(pvc *corev1.PersistentVolumeClaim) (*record.PersistentVolumeClaim, error) {
	return mapper.PersistentVolumeClaimRecord(pvc)
}

func (PersistentVolumeClaims) Merge(dst, src *record.PersistentVolumeClaim) {
	dst.Capacity = src.Capacity
	dst.AccessMode = src.AccessMode
	dst.VolumeName = src.VolumeName
}

// PrepareUpdate keeps the fields defaulted by the cluster.
func (PersistentVolumeClaims) PrepareUpdate(desired, existing *corev1.PersistentVolumeClaim) {
	desired.Labels = existing.Labels
	desired.Annotations = existing.Annotations
	desired.Spec.StorageClassName = existing.Spec.StorageClassName
	desired.Spec.VolumeMode = existing.Spec.VolumeMode
	desired.Spec.DataSource = existing.Spec.DataSource
	desired.Spec.DataSourceRef = existing.Spec.DataSourceRef
}
