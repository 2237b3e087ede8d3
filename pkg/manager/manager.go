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
	"strings"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/record"
	"github.com/stefanprodan/gaia/pkg/store"
)

// Options configures a ResourceManager.
type Options struct {
	// DefaultNamespace is used for records without a namespace.
	DefaultNamespace string

	// Overwrite makes Sync replace the payload of records that already
	// exist with the cluster state.
	Overwrite bool

	// FieldManager is recorded as the manager of the fields written by
	// Create and Update, defaults to "gaia".
	FieldManager string

	// Now returns the current time, defaults to time.Now.
	Now func() time.Time
}

// ResourceManager manages the records of one kind and the matching
// Kubernetes objects.
type ResourceManager[R record.Record, O client.Object] struct {
	kind   Kind[R, O]
	client client.Client
	store  store.Store[R]
	opts   Options
}

// NewResourceManager returns a ResourceManager for the given kind.
func NewResourceManager[R record.Record, O client.Object](kind Kind[R, O], kubeClient client.Client, s store.Store[R], opts Options) *ResourceManager[R, O] {
	if opts.DefaultNamespace == "" {
		opts.DefaultNamespace = "default"
	}
	if opts.FieldManager == "" {
		opts.FieldManager = "gaia"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ResourceManager[R, O]{
		kind:   kind,
		client: kubeClient,
		store:  s,
		opts:   opts,
	}
}

// Kind returns the Kubernetes kind name of the managed objects.
func (m *ResourceManager[R, O]) Kind() string {
	return m.kind.Kind()
}

// Get returns the record with the given id, soft-deleted records included.
func (m *ResourceManager[R, O]) Get(ctx context.Context, id int64) (R, error) {
	r, err := m.store.FindByID(ctx, id)
	if err != nil {
		var zero R
		if store.IsNotFound(err) {
			return zero, errdefs.NotFound("%s %d not found", m.kind.Kind(), id)
		}
		return zero, err
	}
	return r, nil
}

// Lookup returns the active record with the given namespace and name. For
// kinds with a live view the cluster object is returned too, or nil when
// the cluster no longer has it.
func (m *ResourceManager[R, O]) Lookup(ctx context.Context, namespace, name string) (*View[R, O], error) {
	key := record.Meta{Namespace: namespace, Name: name}
	key.Normalize(m.opts.DefaultNamespace)

	r, err := m.store.FindByNamespaceAndName(ctx, key.Namespace, key.Name)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errdefs.NotFound("%s not found", m.subject(key.Namespace, key.Name))
		}
		return nil, err
	}

	view := &View[R, O]{Record: r}
	if !m.kind.LiveView() {
		return view, nil
	}

	obj := m.newObject(key.Namespace, key.Name)
	if err := m.client.Get(ctx, client.ObjectKeyFromObject(obj), obj); err != nil {
		if apierrors.IsNotFound(err) {
			return view, nil
		}
		return nil, fmt.Errorf("%s query failed, error: %w", m.subject(key.Namespace, key.Name), err)
	}
	view.Object = obj
	return view, nil
}

// List returns the active records ordered by id.
func (m *ResourceManager[R, O]) List(ctx context.Context) ([]R, error) {
	return m.store.FindAllActive(ctx)
}

// Create creates the Kubernetes object for the record, then stores the
// record. Nothing is stored when the cluster rejects the object.
func (m *ResourceManager[R, O]) Create(ctx context.Context, r R) (_ R, err error) {
	defer func() { observeOperation(m.kind.Kind(), "create", err) }()
	var zero R

	meta := r.GetMeta()
	meta.ID = 0
	meta.DeletedAt = nil
	m.normalize(r)
	if err := m.kind.Validate(r); err != nil {
		return zero, err
	}

	subject := m.subject(meta.Namespace, meta.Name)
	exists, err := m.store.ExistsByNamespaceAndName(ctx, meta.Namespace, meta.Name)
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, errdefs.BadRequest("name", "%s already exists", subject)
	}

	obj, err := m.kind.ToNative(r)
	if err != nil {
		return zero, err
	}
	if err := m.client.Create(ctx, obj, client.FieldOwner(m.opts.FieldManager)); err != nil {
		return zero, fmt.Errorf("%s create failed, error: %w", subject, err)
	}

	now := m.now()
	meta.CreatedAt = now
	meta.UpdatedAt = now
	if err := m.store.Save(ctx, r); err != nil {
		if store.IsAlreadyExists(err) {
			return zero, errdefs.BadRequest("name", "%s already exists", subject)
		}
		return zero, fmt.Errorf("%s save failed, error: %w", subject, err)
	}

	log.FromContext(ctx).Info("created", "subject", subject, "id", meta.ID)
	return r, nil
}

// Update applies the patch to the stored record, updates the Kubernetes
// object and then stores the record. The object of a deleted record is
// left untouched and only the stored record changes.
func (m *ResourceManager[R, O]) Update(ctx context.Context, id int64, patch Patch[R]) (_ R, err error) {
	defer func() { observeOperation(m.kind.Kind(), "update", err) }()
	var zero R

	r, err := m.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	meta := r.GetMeta()

	patch.ApplyTo(r)
	m.normalize(r)
	if err := m.kind.Validate(r); err != nil {
		return zero, err
	}

	obj, err := m.kind.ToNative(r)
	if err != nil {
		return zero, err
	}

	subject := m.subject(meta.Namespace, meta.Name)

	// the name of a deleted record may have been reused
	if meta.Active() {
		if err := m.updateObject(ctx, subject, obj); err != nil {
			return zero, err
		}
	}

	meta.UpdatedAt = m.now()
	if err := m.store.Save(ctx, r); err != nil {
		return zero, fmt.Errorf("%s save failed, error: %w", subject, err)
	}

	log.FromContext(ctx).Info("updated", "subject", subject, "id", meta.ID)
	return r, nil
}

// Delete deletes the Kubernetes object (not found errors are ignored),
// then marks the record as deleted. Deleting a record that is already
// marked as deleted only refreshes its deletion time.
func (m *ResourceManager[R, O]) Delete(ctx context.Context, id int64) (err error) {
	defer func() { observeOperation(m.kind.Kind(), "delete", err) }()

	r, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	meta := r.GetMeta()
	subject := m.subject(meta.Namespace, meta.Name)

	// the name of a deleted record may have been reused
	if meta.Active() {
		obj := m.newObject(meta.Namespace, meta.Name)
		if err := m.client.Delete(ctx, obj); err != nil && !apierrors.IsNotFound(err) {
			return fmt.Errorf("%s delete failed, error: %w", subject, err)
		}
	}

	now := m.now()
	meta.DeletedAt = &now
	meta.UpdatedAt = now
	if err := m.store.Save(ctx, r); err != nil {
		return fmt.Errorf("%s save failed, error: %w", subject, err)
	}

	log.FromContext(ctx).Info("deleted", "subject", subject, "id", meta.ID)
	return nil
}

func (m *ResourceManager[R, O]) updateObject(ctx context.Context, subject string, obj O) error {
	existing := m.newObject(obj.GetNamespace(), obj.GetName())
	if err := m.client.Get(ctx, client.ObjectKeyFromObject(existing), existing); err != nil {
		return fmt.Errorf("%s query failed, error: %w", subject, err)
	}
	obj.SetResourceVersion(existing.GetResourceVersion())
	if p, ok := m.kind.(UpdatePreparer[O]); ok {
		p.PrepareUpdate(obj, existing)
	}
	if err := m.client.Update(ctx, obj, client.FieldOwner(m.opts.FieldManager)); err != nil {
		return fmt.Errorf("%s update failed, error: %w", subject, err)
	}
	return nil
}

func (m *ResourceManager[R, O]) normalize(r R) {
	r.GetMeta().Normalize(m.opts.DefaultNamespace)
	m.kind.Default(r)
}

// newObject returns an empty object addressing the given namespace and name.
func (m *ResourceManager[R, O]) newObject(namespace, name string) O {
	obj := m.kind.NewObject()
	obj.SetName(name)
	if m.kind.Namespaced() {
		obj.SetNamespace(namespace)
	}
	return obj
}

func (m *ResourceManager[R, O]) subject(namespace, name string) string {
	if !m.kind.Namespaced() {
		namespace = ""
	}
	return FmtSubject(m.kind.Kind(), namespace, strings.ToLower(name))
}

// now returns the current time in epoch seconds.
func (m *ResourceManager[R, O]) now() int64 {
	return m.opts.Now().Unix()
}
