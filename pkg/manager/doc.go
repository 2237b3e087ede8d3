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

// Package manager keeps the gaia record store and the cluster in step.
//
// A ResourceManager pairs a record Store with a Kubernetes client for one
// object kind. Create, Update and Delete mutate the cluster first and only
// persist the record once the cluster accepted the change. Sync adopts the
// objects found in the cluster into the store.
package manager
