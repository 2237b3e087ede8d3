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
)

// Bootstrap runs the syncers in order and returns the combined change set.
// It stops at the first syncer that fails; objects that could not be
// adopted are reported in the change set and do not stop it.
func Bootstrap(ctx context.Context, syncers ...Syncer) (*ChangeSet, error) {
	changeSet := NewChangeSet()
	for _, s := range syncers {
		cs, err := s.Sync(ctx)
		if err != nil {
			return changeSet, fmt.Errorf("%s sync failed, error: %w", s.Kind(), err)
		}
		changeSet.AddAll(cs.Entries)
	}
	return changeSet, nil
}
