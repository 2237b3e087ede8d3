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

// Package mapper translates between gaia records and Kubernetes objects.
//
// The record to object direction is used for every create, update and delete
// sent to the cluster. The object to record direction is only used when
// adopting cluster objects during sync, and fails with errdefs.ErrUnrepresentable
// when the object uses a source or reference gaia can't persist.
//
// The mappers are pure: they don't talk to the cluster or the store.
package mapper
