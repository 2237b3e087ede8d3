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
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/record"
)

func TestConfigMap_RoundTrip(t *testing.T) {
	in := &record.ConfigMap{Data: map[string]string{"LOG_LEVEL": "info"}}
	in.Namespace = "default"
	in.Name = "app-config"

	out := ConfigMapRecord(ConfigMap(in))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestSecret_EncodesValuesOnce(t *testing.T) {
	g := NewWithT(t)

	in := &record.Secret{}
	in.Namespace = "default"
	in.Name = "db"
	in.SetValues(map[string]string{"password": "s3cr3t"})

	secret := Secret(in)
	g.Expect(secret.Type).To(Equal(corev1.SecretTypeOpaque))

	data, err := json.Marshal(secret)
	g.Expect(err).NotTo(HaveOccurred())
	// base64("s3cr3t")
	g.Expect(string(data)).To(ContainSubstring(`"password":"czNjcjN0"`))

	out := SecretRecord(secret)
	g.Expect(out.Keys).To(Equal([]string{"password"}))
	g.Expect(out.Values).To(BeNil())
}

func TestPersistentVolume_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		typ     record.VolumeType
		configs map[string]string
	}{
		{
			name:    "host path",
			typ:     record.HostPath,
			configs: map[string]string{record.ConfigPath: "/mnt/data"},
		},
		{
			name:    "nfs",
			typ:     record.NetworkFileShare,
			configs: map[string]string{record.ConfigServer: "10.0.0.5", record.ConfigPath: "/exports/data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			in := &record.PersistentVolume{
				Capacity:   "10Gi",
				AccessMode: record.ReadWriteMany,
				Type:       tt.typ,
				Configs:    tt.configs,
			}
			in.Name = "data"

			pv, err := PersistentVolume(in)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(pv.Namespace).To(BeEmpty())

			out, err := PersistentVolumeRecord(pv)
			g.Expect(err).NotTo(HaveOccurred())
			if diff := cmp.Diff(in, out); diff != "" {
				t.Errorf("unexpected record (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPersistentVolume_MissingConfig(t *testing.T) {
	g := NewWithT(t)

	in := &record.PersistentVolume{
		Capacity:   "1Gi",
		AccessMode: record.ReadWriteOnce,
		Type:       record.NetworkFileShare,
		Configs:    map[string]string{record.ConfigServer: "10.0.0.5"},
	}
	in.Name = "nfs"

	_, err := PersistentVolume(in)
	g.Expect(errdefs.IsBadRequest(err)).To(BeTrue())
	g.Expect(errdefs.FieldOf(err)).To(Equal("path"))
}

func TestPersistentVolume_ClaimReferenceType(t *testing.T) {
	g := NewWithT(t)

	in := &record.PersistentVolume{
		Capacity:   "1Gi",
		AccessMode: record.ReadWriteOnce,
		Type:       record.ClaimReference,
		Configs:    map[string]string{record.ConfigClaimName: "data"},
	}

	_, err := PersistentVolume(in)
	g.Expect(errdefs.FieldOf(err)).To(Equal("type"))
}

func TestPersistentVolumeRecord_Unrepresentable(t *testing.T) {
	g := NewWithT(t)

	pv := &corev1.PersistentVolume{
		Spec: corev1.PersistentVolumeSpec{
			Capacity:    corev1.ResourceList{corev1.ResourceStorage: resource.MustParse("1Gi")},
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			PersistentVolumeSource: corev1.PersistentVolumeSource{
				CSI: &corev1.CSIPersistentVolumeSource{Driver: "ebs.csi.aws.com", VolumeHandle: "vol-1"},
			},
		},
	}
	pv.Name = "csi"

	_, err := PersistentVolumeRecord(pv)
	g.Expect(errors.Is(err, errdefs.ErrUnrepresentable)).To(BeTrue())

	pv.Spec.CSI = nil
	pv.Spec.HostPath = &corev1.HostPathVolumeSource{Path: "/mnt"}
	pv.Spec.AccessModes = nil
	_, err = PersistentVolumeRecord(pv)
	g.Expect(errors.Is(err, errdefs.ErrUnrepresentable)).To(BeTrue())
}

func TestPersistentVolumeClaim_RoundTrip(t *testing.T) {
	g := NewWithT(t)

	in := &record.PersistentVolumeClaim{
		Capacity:   "10Gi",
		AccessMode: record.ReadWriteOnce,
		VolumeName: "data",
	}
	in.Namespace = "default"
	in.Name = "data"

	pvc, err := PersistentVolumeClaim(in)
	g.Expect(err).NotTo(HaveOccurred())

	storage := pvc.Spec.Resources.Requests[corev1.ResourceStorage]
	g.Expect(storage.String()).To(Equal("10Gi"))
	g.Expect(pvc.Spec.VolumeName).To(Equal("data"))

	out, err := PersistentVolumeClaimRecord(pvc)
	g.Expect(err).NotTo(HaveOccurred())
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestPersistentVolumeClaim_InvalidCapacity(t *testing.T) {
	g := NewWithT(t)

	in := &record.PersistentVolumeClaim{Capacity: "ten gigs", AccessMode: record.ReadWriteOnce}
	_, err := PersistentVolumeClaim(in)
	g.Expect(errdefs.FieldOf(err)).To(Equal("capacity"))
}

func TestStatefulSet_RoundTrip(t *testing.T) {
	g := NewWithT(t)

	containerPort := int32(9898)
	hostPort := int32(19898)
	in := &record.StatefulSet{
		Replicas: 3,
		InitContainers: []record.Container{{
			Name:    "migrate",
			Image:   "ghcr.io/stefanprodan/podinfo:6.7.0",
			Command: []string{"./podcli"},
			Args:    []string{"check", "tcp", "db:5432"},
		}},
		Containers: []record.Container{{
			Name:  "app",
			Image: "ghcr.io/stefanprodan/podinfo:6.7.0",
			Env:   []record.EnvVar{{Name: "PODINFO_UI_COLOR", Value: "#34577c"}},
			EnvFrom: []record.EnvFrom{
				{Name: "app-config", Type: record.EnvFromConfigMap},
				{Name: "app-secret", Type: record.EnvFromSecret},
			},
			Ports: []record.Port{
				{ContainerPort: &containerPort, Name: "http", Protocol: "TCP"},
				{ContainerPort: &containerPort, HostPort: &hostPort, Protocol: "UDP", HostIP: "0.0.0.0"},
			},
			Volumes: []record.VolumeMount{
				{Name: "data", MountPath: "/data"},
				{Name: "shared", MountPath: "/shared", ReadOnly: true},
				{Name: "logs", MountPath: "/var/log"},
			},
			Limits: map[string]string{"cpu": "500m", "memory": "128Mi", "ephemeral-storage": "1Gi"},
		}},
		Volumes: []record.Volume{
			{Name: "data", Type: record.ClaimReference, Configs: map[string]string{record.ConfigClaimName: "app-data"}},
			{Name: "shared", ReadOnly: true, Type: record.NetworkFileShare, Configs: map[string]string{record.ConfigServer: "nfs.local", record.ConfigPath: "/exports"}},
			{Name: "logs", Type: record.HostPath, Configs: map[string]string{record.ConfigPath: "/var/log/app"}},
		},
	}
	in.Namespace = "default"
	in.Name = "app"

	sts, err := StatefulSet(in)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sts.Spec.Selector.MatchLabels).To(Equal(map[string]string{AppLabel: "app"}))
	g.Expect(sts.Spec.Template.Labels).To(Equal(map[string]string{AppLabel: "app"}))
	g.Expect(*sts.Spec.Replicas).To(Equal(int32(3)))

	container := sts.Spec.Template.Spec.Containers[0]
	g.Expect(container.Ports[0].ContainerPort).To(Equal(int32(9898)))
	g.Expect(container.Resources.Limits.Memory().String()).To(Equal("128Mi"))
	g.Expect(container.Resources.Limits.StorageEphemeral().String()).To(Equal("1Gi"))
	g.Expect(container.EnvFrom[1].SecretRef.Name).To(Equal("app-secret"))

	out, err := StatefulSetRecord(sts)
	g.Expect(err).NotTo(HaveOccurred())
	if diff := cmp.Diff(in, out, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestContainer_OmitsUnsetFields(t *testing.T) {
	g := NewWithT(t)

	c, err := Container(record.Container{Name: "app", Image: "nginx"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c.Command).To(BeNil())
	g.Expect(c.Env).To(BeNil())
	g.Expect(c.EnvFrom).To(BeNil())
	g.Expect(c.Ports).To(BeNil())
	g.Expect(c.VolumeMounts).To(BeNil())
	g.Expect(c.Resources.Limits).To(BeNil())
}

func TestContainer_DefaultProtocol(t *testing.T) {
	g := NewWithT(t)

	port := int32(80)
	c, err := Container(record.Container{Name: "app", Image: "nginx", Ports: []record.Port{{ContainerPort: &port}}})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c.Ports[0].Protocol).To(Equal(corev1.ProtocolTCP))
	g.Expect(c.Ports[0].HostPort).To(BeZero())
}

func TestContainer_Errors(t *testing.T) {
	tests := []struct {
		name      string
		container record.Container
		field     string
	}{
		{
			name:      "env source type",
			container: record.Container{Name: "app", EnvFrom: []record.EnvFrom{{Name: "cfg", Type: "volume"}}},
			field:     "env_from",
		},
		{
			name:      "limit quantity",
			container: record.Container{Name: "app", Limits: map[string]string{"memory": "lots"}},
			field:     "memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			_, err := Container(tt.container)
			g.Expect(errdefs.IsBadRequest(err)).To(BeTrue())
			g.Expect(errdefs.FieldOf(err)).To(Equal(tt.field))
		})
	}
}

func TestContainerRecord_ValueFrom(t *testing.T) {
	g := NewWithT(t)

	_, err := ContainerRecord(corev1.Container{
		Name: "app",
		Env: []corev1.EnvVar{{
			Name: "POD_NAME",
			ValueFrom: &corev1.EnvVarSource{
				FieldRef: &corev1.ObjectFieldSelector{FieldPath: "metadata.name"},
			},
		}},
	})
	g.Expect(errors.Is(err, errdefs.ErrUnrepresentable)).To(BeTrue())
}

func TestVolume_MissingConfig(t *testing.T) {
	g := NewWithT(t)

	_, err := Volume(record.Volume{Name: "data", Type: record.ClaimReference, Configs: map[string]string{}})
	g.Expect(errdefs.FieldOf(err)).To(Equal(record.ConfigClaimName))

	_, err = Volume(record.Volume{Name: "data", Type: "ceph"})
	g.Expect(errdefs.FieldOf(err)).To(Equal("type"))
}

func TestVolume_ReadOnlyHostPath(t *testing.T) {
	g := NewWithT(t)

	_, err := Volume(record.Volume{
		Name:     "logs",
		ReadOnly: true,
		Type:     record.HostPath,
		Configs:  map[string]string{record.ConfigPath: "/var/log"},
	})
	g.Expect(errdefs.IsBadRequest(err)).To(BeTrue())
	g.Expect(errdefs.FieldOf(err)).To(Equal("read_only"))
}

func TestVolumeRecord_Unrepresentable(t *testing.T) {
	g := NewWithT(t)

	_, err := VolumeRecord(corev1.Volume{
		Name:         "tmp",
		VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
	})
	g.Expect(errors.Is(err, errdefs.ErrUnrepresentable)).To(BeTrue())
}
