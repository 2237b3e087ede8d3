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

package manager_test

import (
	"fmt"
	"sync/atomic"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	"github.com/stefanprodan/gaia/pkg/kinds"
	"github.com/stefanprodan/gaia/pkg/manager"
)

// testClock starts at a fixed time and moves one minute per tick.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Tick() {
	c.now = c.now.Add(time.Minute)
}

type testEnv struct {
	client   client.WithWatch
	registry *kinds.Registry
	stores   *kinds.Stores
	clock    *testClock
}

func newTestEnv(overwrite bool, funcs *interceptor.Funcs, objects ...client.Object) *testEnv {
	builder := fake.NewClientBuilder().
		WithScheme(kinds.NewScheme()).
		WithObjects(objects...)
	if funcs != nil {
		builder = builder.WithInterceptorFuncs(*funcs)
	}
	kubeClient := builder.Build()

	clock := newTestClock()
	stores := kinds.NewMemoryStores()
	registry := kinds.NewRegistry(kubeClient, stores, manager.Options{
		DefaultNamespace: "default",
		Overwrite:        overwrite,
		Now:              clock.Now,
	})

	return &testEnv{
		client:   kubeClient,
		registry: registry,
		stores:   stores,
		clock:    clock,
	}
}

var nextNameId int64

func generateName(prefix string) string {
	id := atomic.AddInt64(&nextNameId, 1)
	return fmt.Sprintf("%s-%d", prefix, id)
}
