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
	"fmt"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Action represents the action taken by the sync process on an object.
type Action string

const (
	CreatedAction    Action = "created"
	ConfiguredAction Action = "configured"
	UnchangedAction  Action = "unchanged"
	FailedAction     Action = "failed"
)

// ChangeSet holds the result of the sync of an object collection.
type ChangeSet struct {
	Entries []ChangeSetEntry
}

func NewChangeSet() *ChangeSet {
	return &ChangeSet{Entries: []ChangeSetEntry{}}
}

func (c *ChangeSet) Add(e ChangeSetEntry) {
	c.Entries = append(c.Entries, e)
}

func (c *ChangeSet) AddAll(e []ChangeSetEntry) {
	c.Entries = append(c.Entries, e...)
}

// Count returns the number of entries with the given action.
func (c *ChangeSet) Count(action Action) int {
	n := 0
	for _, e := range c.Entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

// Err aggregates the errors of the failed entries.
func (c *ChangeSet) Err() error {
	var errs []error
	for _, e := range c.Entries {
		if e.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Subject, e.Err))
		}
	}
	return utilerrors.NewAggregate(errs)
}

// ChangeSetEntry defines the result of an action performed on an object.
type ChangeSetEntry struct {
	// Subject represents the object ID in the format 'kind/namespace/name'.
	Subject string
	// Action represents the action taken for this object.
	Action Action
	// Err is set for failed entries.
	Err error
}

func (e ChangeSetEntry) String() string {
	return fmt.Sprintf("%s %s", e.Subject, e.Action)
}

const fmtSeparator = "/"

// FmtSubject returns the object ID in the format <kind>/<namespace>/<name>.
func FmtSubject(kind, namespace, name string) string {
	var builder strings.Builder
	builder.WriteString(kind + fmtSeparator)
	if namespace != "" {
		builder.WriteString(namespace + fmtSeparator)
	}
	builder.WriteString(name)
	return builder.String()
}
