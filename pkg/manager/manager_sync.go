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

package manager

import (
	"context"
	"fmt"

	apimeta "k8s.io/apimachinery/pkg/api/meta"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/stefanprodan/gaia/pkg/store"
)

// Sync lists the objects of the managed kind and adopts the ones without an
// active record. In overwrite mode the existing records take the cluster
// state. Records are never removed.
//
// Objects that cannot be read into a record are reported as failed entries
// and do not stop the sync. All new and changed records are saved in a
// single transaction.
func (m *ResourceManager[R, O]) Sync(ctx context.Context) (*ChangeSet, error) {
	kind := m.kind.Kind()
	logger := log.FromContext(ctx).WithValues("kind", kind)

	list := m.kind.NewObjectList()
	var opts []client.ListOption
	if m.kind.Namespaced() {
		opts = append(opts, client.InNamespace(m.opts.DefaultNamespace))
	}
	if err := m.client.List(ctx, list, opts...); err != nil {
		return nil, fmt.Errorf("%s list failed, error: %w", kind, err)
	}
	items, err := apimeta.ExtractList(list)
	if err != nil {
		return nil, fmt.Errorf("%s list failed, error: %w", kind, err)
	}

	changeSet := NewChangeSet()
	var staged []R
	now := m.now()

	for _, item := range items {
		obj, ok := item.(O)
		if !ok {
			return nil, fmt.Errorf("%s list returned unexpected item %T", kind, item)
		}
		if m.kind.Skip(obj) {
			logger.V(1).Info("skipped", "name", obj.GetName())
			continue
		}

		subject := FmtSubject(kind, obj.GetNamespace(), obj.GetName())
		desired, err := m.kind.FromNative(obj)
		if err != nil {
			logger.Error(err, "object cannot be synced", "subject", subject)
			changeSet.Add(ChangeSetEntry{Subject: subject, Action: FailedAction, Err: err})
			continue
		}
		m.normalize(desired)
		meta := desired.GetMeta()

		existing, err := m.store.FindByNamespaceAndName(ctx, meta.Namespace, meta.Name)
		switch {
		case store.IsNotFound(err):
			meta.CreatedAt = now
			meta.UpdatedAt = now
			staged = append(staged, desired)
			changeSet.Add(ChangeSetEntry{Subject: subject, Action: CreatedAction})
		case err != nil:
			return nil, err
		case m.opts.Overwrite:
			m.kind.Merge(existing, desired)
			existing.GetMeta().UpdatedAt = now
			staged = append(staged, existing)
			changeSet.Add(ChangeSetEntry{Subject: subject, Action: ConfiguredAction})
		default:
			changeSet.Add(ChangeSetEntry{Subject: subject, Action: UnchangedAction})
		}
	}

	if err := m.store.SaveAll(ctx, staged); err != nil {
		return nil, fmt.Errorf("%s sync failed to save records, error: %w", kind, err)
	}

	for _, e := range changeSet.Entries {
		syncObjectsTotal.WithLabelValues(kind, string(e.Action)).Inc()
	}
	logger.Info("synced",
		"created", changeSet.Count(CreatedAction),
		"configured", changeSet.Count(ConfiguredAction),
		"unchanged", changeSet.Count(UnchangedAction),
		"failed", changeSet.Count(FailedAction))

	return changeSet, nil
}

// Syncer adopts the cluster objects of one kind.
type Syncer interface {
	Kind() string
	Sync(ctx context.Context) (*ChangeSet, error)
}
