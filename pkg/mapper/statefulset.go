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
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/stefanprodan/gaia/pkg/record"
)

// AppLabel selects the pods of a stateful set.
const AppLabel = "app"

// StatefulSet returns the StatefulSet for the given record. The pods are
// selected by the app=<name> label.
func StatefulSet(s *record.StatefulSet) (*appsv1.StatefulSet, error) {
	initContainers, err := Containers(s.InitContainers)
	if err != nil {
		return nil, err
	}
	containers, err := Containers(s.Containers)
	if err != nil {
		return nil, err
	}
	volumes, err := Volumes(s.Volumes)
	if err != nil {
		return nil, err
	}

	replicas := s.Replicas
	return &appsv1.StatefulSet{
		ObjectMeta: objectMeta(s.Namespace, s.Name),
		Spec: appsv1.StatefulSetSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{
				MatchLabels: map[string]string{AppLabel: s.Name},
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: map[string]string{AppLabel: s.Name},
				},
				Spec: corev1.PodSpec{
					InitContainers: initContainers,
					Containers:     containers,
					Volumes:        volumes,
				},
			},
		},
	}, nil
}

// StatefulSetRecord returns the record fields of the given StatefulSet.
func StatefulSetRecord(sts *appsv1.StatefulSet) (*record.StatefulSet, error) {
	r := &record.StatefulSet{Replicas: 1}
	r.Namespace = sts.Namespace
	r.Name = sts.Name

	if sts.Spec.Replicas != nil {
		r.Replicas = *sts.Spec.Replicas
	}

	var err error
	podSpec := sts.Spec.Template.Spec
	if r.InitContainers, err = ContainerRecords(podSpec.InitContainers); err != nil {
		return nil, err
	}
	if r.Containers, err = ContainerRecords(podSpec.Containers); err != nil {
		return nil, err
	}
	if r.Volumes, err = VolumeRecords(podSpec.Volumes); err != nil {
		return nil, err
	}

	return r, nil
}
