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
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/stefanprodan/gaia/pkg/manager"
	"github.com/stefanprodan/gaia/pkg/record"
	"github.com/stefanprodan/gaia/pkg/store"
)

// Bucket names of the record collections.
const (
	PersistentVolumesBucket      = "persistent_volumes"
	PersistentVolumeClaimsBucket = "persistent_volume_claims"
	ConfigMapsBucket             = "config_maps"
	SecretsBucket                = "secrets"
	StatefulSetsBucket           = "stateful_sets"
)

// NewScheme returns a scheme holding the core and apps API groups.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	_ = corev1.AddToScheme(scheme)
	_ = appsv1.AddToScheme(scheme)
	return scheme
}

// Stores holds the record store of every kind.
type Stores struct {
	PersistentVolumes      store.Store[*record.PersistentVolume]
	PersistentVolumeClaims store.Store[*record.PersistentVolumeClaim]
	ConfigMaps             store.Store[*record.ConfigMap]
	Secrets                store.Store[*record.Secret]
	StatefulSets           store.Store[*record.StatefulSet]
}

// NewBoltStores returns the record collections of the given database.
func NewBoltStores(db *store.BoltStore) (*Stores, error) {
	pv, err := store.NewCollection[*record.PersistentVolume](db, PersistentVolumesBucket, PersistentVolumes{}.NewRecord)
	if err != nil {
		return nil, err
	}
	pvc, err := store.NewCollection[*record.PersistentVolumeClaim](db, PersistentVolumeClaimsBucket, PersistentVolumeClaims{}.NewRecord)
	if err != nil {
		return nil, err
	}
	cm, err := store.NewCollection[*record.ConfigMap](db, ConfigMapsBucket, ConfigMaps{}.NewRecord)
	if err != nil {
		return nil, err
	}
	secret, err := store.NewCollection[*record.Secret](db, SecretsBucket, Secrets{}.NewRecord)
	if err != nil {
		return nil, err
	}
	sts, err := store.NewCollection[*record.StatefulSet](db, StatefulSetsBucket, StatefulSets{}.NewRecord)
	if err != nil {
		return nil, err
	}

	return &Stores{
		PersistentVolumes:      pv,
		PersistentVolumeClaims: pvc,
		ConfigMaps:             cm,
		Secrets:                secret,
		StatefulSets:           sts,
	}, nil
}

// NewMemoryStores returns empty in-memory stores.
func NewMemoryStores() *Stores {
	return &Stores{
		PersistentVolumes:      store.NewMemoryStore[*record.PersistentVolume](PersistentVolumesBucket, PersistentVolumes{}.NewRecord),
		PersistentVolumeClaims: store.NewMemoryStore[*record.PersistentVolumeClaim](PersistentVolumeClaimsBucket, PersistentVolumeClaims{}.NewRecord),
		ConfigMaps:             store.NewMemoryStore[*record.ConfigMap](ConfigMapsBucket, ConfigMaps{}.NewRecord),
		Secrets:                store.NewMemoryStore[*record.Secret](SecretsBucket, Secrets{}.NewRecord),
		StatefulSets:           store.NewMemoryStore[*record.StatefulSet](StatefulSetsBucket, StatefulSets{}.NewRecord),
	}
}

// Registry holds the resource manager of every kind.
type Registry struct {
	PersistentVolumes      *manager.ResourceManager[*record.PersistentVolume, *corev1.PersistentVolume]
	PersistentVolumeClaims *manager.ResourceManager[*record.PersistentVolumeClaim, *corev1.PersistentVolumeClaim]
	ConfigMaps             *manager.ResourceManager[*record.ConfigMap, *corev1.ConfigMap]
	Secrets                *manager.ResourceManager[*record.Secret, *corev1.Secret]
	StatefulSets           *manager.ResourceManager[*record.StatefulSet, *appsv1.StatefulSet]
}

// NewRegistry returns the resource managers backed by the given client and stores.
func NewRegistry(kubeClient client.Client, stores *Stores, opts manager.Options) *Registry {
	return &Registry{
		PersistentVolumes: manager.NewResourceManager[*record.PersistentVolume, *corev1.PersistentVolume](
			PersistentVolumes{}, kubeClient, stores.PersistentVolumes, opts),
		PersistentVolumeClaims: manager.NewResourceManager[*record.PersistentVolumeClaim, *corev1.PersistentVolumeClaim](
			PersistentVolumeClaims{}, kubeClient, stores.PersistentVolumeClaims, opts),
		ConfigMaps: manager.NewResourceManager[*record.ConfigMap, *corev1.ConfigMap](
			ConfigMaps{}, kubeClient, stores.ConfigMaps, opts),
		Secrets: manager.NewResourceManager[*record.Secret, *corev1.Secret](
			Secrets{}, kubeClient, stores.Secrets, opts),
		StatefulSets: manager.NewResourceManager[*record.StatefulSet, *appsv1.StatefulSet](
			StatefulSets{}, kubeClient, stores.StatefulSets, opts),
	}
}

// Syncers returns the managers in bootstrap order: volumes before the
// claims bound to them, config maps and secrets before the stateful sets
// that reference them.
func (r *Registry) Syncers() []manager.Syncer {
	return []manager.Syncer{
		r.PersistentVolumes,
		r.PersistentVolumeClaims,
		r.ConfigMaps,
		r.Secrets,
		r.StatefulSets,
	}
}
