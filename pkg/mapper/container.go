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

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/record"
)

// DefaultProtocol is set on container ports that don't specify one.
const DefaultProtocol = "TCP"

// Containers translates the given records to containers.
func Containers(in []record.Container) ([]corev1.Container, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]corev1.Container, 0, len(in))
	for _, c := range in {
		container, err := Container(c)
		if err != nil {
			return nil, err
		}
		out = append(out, container)
	}
	return out, nil
}

// Container translates a container record, optional attributes are only
// set on the result when present on the record.
func Container(c record.Container) (corev1.Container, error) {
	out := corev1.Container{
		Name:  c.Name,
		Image: c.Image,
	}

	if c.Command != nil {
		out.Command = c.Command
	}
	if c.Args != nil {
		out.Args = c.Args
	}

	if c.Env != nil {
		out.Env = make([]corev1.EnvVar, 0, len(c.Env))
		for _, e := range c.Env {
			out.Env = append(out.Env, corev1.EnvVar{Name: e.Name, Value: e.Value})
		}
	}

	if c.EnvFrom != nil {
		out.EnvFrom = make([]corev1.EnvFromSource, 0, len(c.EnvFrom))
		for _, e := range c.EnvFrom {
			source, err := envFromSource(e)
			if err != nil {
				return out, err
			}
			out.EnvFrom = append(out.EnvFrom, source)
		}
	}

	if c.Ports != nil {
		out.Ports = make([]corev1.ContainerPort, 0, len(c.Ports))
		for _, p := range c.Ports {
			out.Ports = append(out.Ports, containerPort(p))
		}
	}

	if c.Volumes != nil {
		out.VolumeMounts = make([]corev1.VolumeMount, 0, len(c.Volumes))
		for _, m := range c.Volumes {
			out.VolumeMounts = append(out.VolumeMounts, corev1.VolumeMount{
				Name:      m.Name,
				MountPath: m.MountPath,
				ReadOnly:  m.ReadOnly,
			})
		}
	}

	if c.Limits != nil {
		limits := make(corev1.ResourceList, len(c.Limits))
		for key, value := range c.Limits {
			q, err := resource.ParseQuantity(value)
			if err != nil {
				return out, errdefs.BadRequest(key, "invalid %s limit %q: %v", key, value, err)
			}
			limits[corev1.ResourceName(key)] = q
		}
		out.Resources = corev1.ResourceRequirements{Limits: limits}
	}

	return out, nil
}

func envFromSource(e record.EnvFrom) (corev1.EnvFromSource, error) {
	ref := corev1.LocalObjectReference{Name: e.Name}
	switch e.Type {
	case record.EnvFromConfigMap:
		return corev1.EnvFromSource{ConfigMapRef: &corev1.ConfigMapEnvSource{LocalObjectReference: ref}}, nil
	case record.EnvFromSecret:
		return corev1.EnvFromSource{SecretRef: &corev1.SecretEnvSource{LocalObjectReference: ref}}, nil
	default:
		return corev1.EnvFromSource{}, errdefs.BadRequest("env_from", "unsupported env source type %q", e.Type)
	}
}

func containerPort(p record.Port) corev1.ContainerPort {
	port := corev1.ContainerPort{
		Name:     p.Name,
		HostIP:   p.HostIP,
		Protocol: corev1.Protocol(DefaultProtocol),
	}
	if p.ContainerPort != nil {
		port.ContainerPort = *p.ContainerPort
	}
	if p.HostPort != nil {
		port.HostPort = *p.HostPort
	}
	if p.Protocol != "" {
		port.Protocol = corev1.Protocol(p.Protocol)
	}
	return port
}

// ContainerRecords translates the given containers to records.
func ContainerRecords(in []corev1.Container) ([]record.Container, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]record.Container, 0, len(in))
	for _, c := range in {
		r, err := ContainerRecord(c)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ContainerRecord translates a container to its record. Env vars sourced
// from a field or key selector are not representable.
func ContainerRecord(c corev1.Container) (record.Container, error) {
	out := record.Container{
		Name:  c.Name,
		Image: c.Image,
	}

	if len(c.Command) > 0 {
		out.Command = c.Command
	}
	if len(c.Args) > 0 {
		out.Args = c.Args
	}

	for _, e := range c.Env {
		if e.ValueFrom != nil {
			return out, fmt.Errorf("container %s env %s uses valueFrom: %w", c.Name, e.Name, errdefs.ErrUnrepresentable)
		}
		out.Env = append(out.Env, record.EnvVar{Name: e.Name, Value: e.Value})
	}

	for _, e := range c.EnvFrom {
		switch {
		case e.ConfigMapRef != nil:
			out.EnvFrom = append(out.EnvFrom, record.EnvFrom{Name: e.ConfigMapRef.Name, Type: record.EnvFromConfigMap})
		case e.SecretRef != nil:
			out.EnvFrom = append(out.EnvFrom, record.EnvFrom{Name: e.SecretRef.Name, Type: record.EnvFromSecret})
		default:
			return out, fmt.Errorf("container %s has an env source without reference: %w", c.Name, errdefs.ErrUnrepresentable)
		}
	}

	for _, p := range c.Ports {
		port := record.Port{
			Name:     p.Name,
			Protocol: string(p.Protocol),
			HostIP:   p.HostIP,
		}
		if p.ContainerPort != 0 {
			port.ContainerPort = int32Ptr(p.ContainerPort)
		}
		if p.HostPort != 0 {
			port.HostPort = int32Ptr(p.HostPort)
		}
		out.Ports = append(out.Ports, port)
	}

	for _, m := range c.VolumeMounts {
		out.Volumes = append(out.Volumes, record.VolumeMount{
			Name:      m.Name,
			MountPath: m.MountPath,
			ReadOnly:  m.ReadOnly,
		})
	}

	if len(c.Resources.Limits) > 0 {
		out.Limits = make(map[string]string, len(c.Resources.Limits))
		for key, q := range c.Resources.Limits {
			out.Limits[string(key)] = q.String()
		}
	}

	return out, nil
}

func int32Ptr(i int32) *int32 {
	return &i
}
