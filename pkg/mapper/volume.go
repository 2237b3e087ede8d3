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

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/record"
)

// RequireConfigs checks that configs holds a non-empty value for every key
// required by the volume type.
func RequireConfigs(t record.VolumeType, configs map[string]string) error {
	keys := t.RequiredConfigs()
	if keys == nil {
		return errdefs.BadRequest("type", "unsupported volume type %q", t)
	}
	for _, key := range keys {
		if configs[key] == "" {
			return errdefs.BadRequest(key, "%s volume requires the %s config", t, key)
		}
	}
	return nil
}

// Volumes translates the given pod volume records.
func Volumes(in []record.Volume) ([]corev1.Volume, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]corev1.Volume, 0, len(in))
	for _, v := range in {
		volume, err := Volume(v)
		if err != nil {
			return nil, err
		}
		out = append(out, volume)
	}
	return out, nil
}

// Volume translates a pod volume record to a claim, NFS or host path source.
// Host path sources have no read-only flag, read-only host paths are rejected.
func Volume(v record.Volume) (corev1.Volume, error) {
	out := corev1.Volume{Name: v.Name}
	if err := RequireConfigs(v.Type, v.Configs); err != nil {
		return out, err
	}

	switch v.Type {
	case record.ClaimReference:
		out.PersistentVolumeClaim = &corev1.PersistentVolumeClaimVolumeSource{
			ClaimName: v.Configs[record.ConfigClaimName],
			ReadOnly:  v.ReadOnly,
		}
	case record.NetworkFileShare:
		out.NFS = &corev1.NFSVolumeSource{
			Server:   v.Configs[record.ConfigServer],
			Path:     v.Configs[record.ConfigPath],
			ReadOnly: v.ReadOnly,
		}
	case record.HostPath:
		if v.ReadOnly {
			return out, errdefs.BadRequest("read_only", "%s volume %s can't be read-only", v.Type, v.Name)
		}
		out.HostPath = &corev1.HostPathVolumeSource{
			Path: v.Configs[record.ConfigPath],
		}
	}
	return out, nil
}

// VolumeRecords translates the given pod volumes to records.
func VolumeRecords(in []corev1.Volume) ([]record.Volume, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]record.Volume, 0, len(in))
	for _, v := range in {
		r, err := VolumeRecord(v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// VolumeRecord infers the volume type from the populated source.
// Sources other than claim, NFS and host path are not representable.
func VolumeRecord(v corev1.Volume) (record.Volume, error) {
	out := record.Volume{Name: v.Name}
	switch {
	case v.PersistentVolumeClaim != nil:
		out.Type = record.ClaimReference
		out.ReadOnly = v.PersistentVolumeClaim.ReadOnly
		out.Configs = map[string]string{record.ConfigClaimName: v.PersistentVolumeClaim.ClaimName}
	case v.NFS != nil:
		out.Type = record.NetworkFileShare
		out.ReadOnly = v.NFS.ReadOnly
		out.Configs = nfsConfigs(v.NFS)
	case v.HostPath != nil:
		out.Type = record.HostPath
		out.Configs = hostPathConfigs(v.HostPath)
	default:
		return out, fmt.Errorf("volume %s has no claim, nfs or hostPath source: %w", v.Name, errdefs.ErrUnrepresentable)
	}
	return out, nil
}

func nfsConfigs(source *corev1.NFSVolumeSource) map[string]string {
	return map[string]string{
		record.ConfigServer: source.Server,
		record.ConfigPath:   source.Path,
	}
}

func hostPathConfigs(source *corev1.HostPathVolumeSource) map[string]string {
	return map[string]string{
		record.ConfigPath: source.Path,
	}
}
