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
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/record"
)

// PersistentVolume returns the PersistentVolume for the given record.
// Persistent volumes are cluster scoped, the record namespace is bookkeeping only.
func PersistentVolume(v *record.PersistentVolume) (*corev1.PersistentVolume, error) {
	capacity, err := storageQuantity(v.Capacity)
	if err != nil {
		return nil, err
	}

	spec := corev1.PersistentVolumeSpec{
		Capacity:    corev1.ResourceList{corev1.ResourceStorage: capacity},
		AccessModes: []corev1.PersistentVolumeAccessMode{corev1.PersistentVolumeAccessMode(v.AccessMode)},
	}

	switch v.Type {
	case record.NetworkFileShare:
		if err := RequireConfigs(v.Type, v.Configs); err != nil {
			return nil, err
		}
		spec.NFS = &corev1.NFSVolumeSource{
			Server: v.Configs[record.ConfigServer],
			Path:   v.Configs[record.ConfigPath],
		}
	case record.HostPath:
		if err := RequireConfigs(v.Type, v.Configs); err != nil {
			return nil, err
		}
		spec.HostPath = &corev1.HostPathVolumeSource{
			Path: v.Configs[record.ConfigPath],
		}
	default:
		return nil, errdefs.BadRequest("type", "unsupported persistent volume type %q", v.Type)
	}

	return &corev1.PersistentVolume{
		ObjectMeta: metav1.ObjectMeta{Name: v.Name},
		Spec:       spec,
	}, nil
}

// PersistentVolumeRecord returns the record fields of the given PersistentVolume.
// Only the first access mode is kept, the type is inferred from the NFS or
// host path source and any other source is not representable.
func PersistentVolumeRecord(pv *corev1.PersistentVolume) (*record.PersistentVolume, error) {
	r := &record.PersistentVolume{}
	r.Namespace = pv.Namespace
	r.Name = pv.Name

	capacity, ok := pv.Spec.Capacity[corev1.ResourceStorage]
	if !ok {
		return nil, fmt.Errorf("PersistentVolume/%s has no storage capacity: %w", pv.Name, errdefs.ErrUnrepresentable)
	}
	r.Capacity = capacity.String()

	mode, err := firstAccessMode(pv.Spec.AccessModes)
	if err != nil {
		return nil, fmt.Errorf("PersistentVolume/%s %w", pv.Name, err)
	}
	r.AccessMode = mode

	switch {
	case pv.Spec.NFS != nil:
		r.Type = record.NetworkFileShare
		r.Configs = nfsConfigs(pv.Spec.NFS)
	case pv.Spec.HostPath != nil:
		r.Type = record.HostPath
		r.Configs = hostPathConfigs(pv.Spec.HostPath)
	default:
		return nil, fmt.Errorf("PersistentVolume/%s has no nfs or hostPath source: %w", pv.Name, errdefs.ErrUnrepresentable)
	}

	return r, nil
}

// PersistentVolumeClaim returns the PersistentVolumeClaim for the given record,
// requesting the record capacity from the volume named VolumeName.
func PersistentVolumeClaim(c *record.PersistentVolumeClaim) (*corev1.PersistentVolumeClaim, error) {
	capacity, err := storageQuantity(c.Capacity)
	if err != nil {
		return nil, err
	}

	return &corev1.PersistentVolumeClaim{
		ObjectMeta: objectMeta(c.Namespace, c.Name),
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.PersistentVolumeAccessMode(c.AccessMode)},
			VolumeName:  c.VolumeName,
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: capacity},
			},
		},
	}, nil
}

// PersistentVolumeClaimRecord returns the record fields of the given claim.
func PersistentVolumeClaimRecord(pvc *corev1.PersistentVolumeClaim) (*record.PersistentVolumeClaim, error) {
	r := &record.PersistentVolumeClaim{VolumeName: pvc.Spec.VolumeName}
	r.Namespace = pvc.Namespace
	r.Name = pvc.Name

	capacity, ok := pvc.Spec.Resources.Requests[corev1.ResourceStorage]
	if !ok {
		return nil, fmt.Errorf("PersistentVolumeClaim/%s/%s has no storage request: %w", pvc.Namespace, pvc.Name, errdefs.ErrUnrepresentable)
	}
	r.Capacity = capacity.String()

	mode, err := firstAccessMode(pvc.Spec.AccessModes)
	if err != nil {
		return nil, fmt.Errorf("PersistentVolumeClaim/%s/%s %w", pvc.Namespace, pvc.Name, err)
	}
	r.AccessMode = mode

	return r, nil
}

func storageQuantity(capacity string) (resource.Quantity, error) {
	q, err := resource.ParseQuantity(capacity)
	if err != nil {
		return q, errdefs.BadRequest("capacity", "invalid capacity %q: %v", capacity, err)
	}
	return q, nil
}

func firstAccessMode(modes []corev1.PersistentVolumeAccessMode) (record.AccessMode, error) {
	if len(modes) == 0 {
		return "", fmt.Errorf("has no access mode: %w", errdefs.ErrUnrepresentable)
	}
	return record.AccessMode(modes[0]), nil
}
