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

package main

import (
	"fmt"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/stefanprodan/gaia/pkg/config"
	"github.com/stefanprodan/gaia/pkg/kinds"
	"github.com/stefanprodan/gaia/pkg/manager"
	"github.com/stefanprodan/gaia/pkg/store"
)

// newKubeClient is replaced in tests.
var newKubeClient = func(rcg genericclioptions.RESTClientGetter) (client.Client, error) {
	cfg, err := newKubeConfig(rcg)
	if err != nil {
		return nil, fmt.Errorf("kubernetes client initialization failed: %w", err)
	}

	kubeClient, err := client.New(cfg, client.Options{
		Scheme: kinds.NewScheme(),
	})
	if err != nil {
		return nil, fmt.Errorf("kubernetes client initialization failed: %w", err)
	}

	return kubeClient, nil
}

func newKubeConfig(rcg genericclioptions.RESTClientGetter) (*rest.Config, error) {
	cfg, err := rcg.ToRESTConfig()
	if err != nil {
		return nil, fmt.Errorf("kubeconfig load failed: %w", err)
	}

	cfg.QPS = 50
	cfg.Burst = 100

	return cfg, nil
}

// openStores opens the record database, the caller must close it.
func openStores() (*store.BoltStore, *kinds.Stores, error) {
	path := rootArgs.storePath
	if path == "" {
		path = cfg.StorePath
	}
	if path == "" {
		p, err := config.DefaultStorePath()
		if err != nil {
			return nil, nil, fmt.Errorf("$HOME dir can't be determined, error: %w", err)
		}
		path = p
	}
	if err := ensureDir(path); err != nil {
		return nil, nil, err
	}

	db, err := store.NewBoltStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("store %s: %w", path, err)
	}
	stores, err := kinds.NewBoltStores(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, stores, nil
}

// newRegistry returns the resource managers for the configured namespace and profiles.
func newRegistry(stores *kinds.Stores) (*kinds.Registry, error) {
	kubeClient, err := newKubeClient(kubeconfigArgs)
	if err != nil {
		return nil, err
	}
	return kinds.NewRegistry(kubeClient, stores, manager.Options{
		DefaultNamespace: namespace(),
		Overwrite:        cfg.OverwriteOnSync(),
		FieldManager:     cfg.FieldManager,
	}), nil
}
