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
	appsv1 "k8s.io/api/apps/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/mapper"
	"github.com/stefanprodan/gaia/pkg/record"
)

// StatefulSets maps stateful set records to apps/v1 StatefulSets.
type StatefulSets struct{}

func (StatefulSets) Kind() string                     { return "StatefulSet" }
func (StatefulSets) NewRecord() *record.StatefulSet   { return &record.StatefulSet{} }
func (StatefulSets) NewObject() *appsv1.StatefulSet   { return &appsv1.StatefulSet{} }
func (StatefulSets) NewObjectList() client.ObjectList { return &appsv1.StatefulSetList{} }
func (StatefulSets) Namespaced() bool                 { return true }
func (StatefulSets) LiveView() bool                   { return false }
func (StatefulSets) Skip(*appsv1.StatefulSet) bool    { return false }

// Default sets a single replica when none is requested and the TCP
// protocol on ports without one.
func (StatefulSets) Default(s *record.StatefulSet) {
	if s.Replicas <= 0 {
		s.Replicas = 1
	}
	defaultPorts(s.InitContainers)
	defaultPorts(s.Containers)
}

func defaultPorts(containers []record.Container) {
	for i := range containers {
		for j := range containers[i].Ports {
			if containers[i].Ports[j].Protocol == "" {
				containers[i].Ports[j].Protocol = mapper.DefaultProtocol
			}
		}
	}
}

func (StatefulSets) Validate(s *record.StatefulSet) error {
	if err := requireName("stateful set", &s.Meta); err != nil {
		return err
	}
	if len(s.Containers) == 0 {
		return errdefs.BadRequest("containers", "stateful set requires at least one container")
	}
	if err := requireContainers("init_containers", s.InitContainers); err != nil {
		return err
	}
	if err := requireContainers("containers", s.Containers); err != nil {
		return err
	}
	for _, v := range s.Volumes {
		if err := requireVolume(v); err != nil {
			return err
		}
	}
	volumes := volumeNames(s.Volumes)
	if err := requireMounts(s.InitContainers, volumes); err != nil {
		return err
	}
	return requireMounts(s.Containers, volumes)
}

func (StatefulSets) ToNative(s *record.StatefulSet) (*appsv1.StatefulSet, error) {
	return mapper.StatefulSet(s)
}

func (StatefulSets) FromNative(sts *appsv1.StatefulSet) (*record.StatefulSet, error) {
	return mapper.StatefulSetRecord(sts)
}

func (StatefulSets) Merge(dst, src *record.StatefulSet) {
	dst.Replicas = src.Replicas
	dst.InitContainers = src.InitContainers
	dst.Containers = src.Containers
	dst.Volumes = src.Volumes
}

// PrepareUpdate keeps the immutable fields of the existing stateful set.
// The pod template keeps the labels matched by the existing selector.
func (StatefulSets) PrepareUpdate(desired, existing *appsv1.StatefulSet) {
	desired.Labels = existing.Labels
	desired.Annotations = existing.Annotations
	desired.Spec.ServiceName = existing.Spec.ServiceName
	desired.Spec.PodManagementPolicy = existing.Spec.PodManagementPolicy
	desired.Spec.VolumeClaimTemplates = existing.Spec.VolumeClaimTemplates
	desired.Spec.UpdateStrategy = existing.Spec.UpdateStrategy

	if existing.Spec.Selector == nil {
		return
	}
	desired.Spec.Selector = existing.Spec.Selector
	labels := make(map[string]string, len(existing.Spec.Template.Labels)+1)
	for k, v := range desired.Spec.Template.Labels {
		labels[k] = v
	}
	for k, v := range existing.Spec.Template.Labels {
		labels[k] = v
	}
	desired.Spec.Template.Labels = labels
}
