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
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/stefanprodan/gaia/pkg/kinds"
	"github.com/stefanprodan/gaia/pkg/record"
	"github.com/stefanprodan/gaia/pkg/store"
)

var getCmd = &cobra.Command{
	Use:   "get [kind] [name]",
	Short: "Get prints the stored records of the given kind.",
	Example: `  # List the config map records
  gaia get configmaps

  # Print a stateful set record as YAML
  gaia get statefulsets web -n apps -o yaml`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: recordKinds(),
	RunE:      runGetCmd,
}

type getFlags struct {
	output string
}

var getArgs getFlags

func init() {
	getCmd.Flags().StringVarP(&getArgs.output, "output", "o", "table",
		"The output format, one of table, yaml or json.")
	rootCmd.AddCommand(getCmd)
}

type recordGetter func(ctx context.Context, stores *kinds.Stores, namespace, name string) ([]record.Record, error)

var recordGetters = map[string]recordGetter{
	"configmaps": func(ctx context.Context, s *kinds.Stores, namespace, name string) ([]record.Record, error) {
		return findRecords(ctx, s.ConfigMaps, namespace, name)
	},
	"secrets": func(ctx context.Context, s *kinds.Stores, namespace, name string) ([]record.Record, error) {
		return findRecords(ctx, s.Secrets, namespace, name)
	},
	"persistentvolumes": func(ctx context.Context, s *kinds.Stores, namespace, name string) ([]record.Record, error) {
		return findRecords(ctx, s.PersistentVolumes, namespace, name)
	},
	"persistentvolumeclaims": func(ctx context.Context, s *kinds.Stores, namespace, name string) ([]record.Record, error) {
		return findRecords(ctx, s.PersistentVolumeClaims, namespace, name)
	},
	"statefulsets": func(ctx context.Context, s *kinds.Stores, namespace, name string) ([]record.Record, error) {
		return findRecords(ctx, s.StatefulSets, namespace, name)
	},
}

func recordKinds() []string {
	var names []string
	for k := range recordGetters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func runGetCmd(cmd *cobra.Command, args []string) error {
	getter, ok := recordGetters[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown kind %q, supported kinds: %s", args[0], strings.Join(recordKinds(), ", "))
	}
	var name string
	if len(args) > 1 {
		name = args[1]
	}

	db, stores, err := openStores()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), rootArgs.timeout)
	defer cancel()

	records, err := getter(ctx, stores, namespace(), name)
	if err != nil {
		return err
	}

	switch getArgs.output {
	case "yaml":
		data, err := yaml.Marshal(records)
		if err != nil {
			return err
		}
		cmd.Print(string(data))
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
	case "table":
		var rows [][]string
		for _, r := range records {
			rows = append(rows, recordRow(r))
		}
		printTable(cmd.OutOrStdout(), []string{"id", "namespace", "name", "details", "updated"}, rows)
	default:
		return fmt.Errorf("unsupported output format %q", getArgs.output)
	}
	return nil
}

// findRecords returns the active records of a kind, or the named one.
func findRecords[R record.Record](ctx context.Context, s store.Store[R], namespace, name string) ([]record.Record, error) {
	if name != "" {
		key := record.Meta{Namespace: namespace, Name: name}
		key.Normalize(namespace)
		r, err := s.FindByNamespaceAndName(ctx, key.Namespace, key.Name)
		if err != nil {
			return nil, err
		}
		return []record.Record{r}, nil
	}

	list, err := s.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]record.Record, 0, len(list))
	for _, r := range list {
		records = append(records, r)
	}
	return records, nil
}

func recordRow(r record.Record) []string {
	meta := r.GetMeta()
	var details string
	switch v := r.(type) {
	case *record.ConfigMap:
		details = fmt.Sprintf("%d keys", len(v.Data))
	case *record.Secret:
		details = strings.Join(v.Keys, ",")
	case *record.PersistentVolume:
		details = fmt.Sprintf("%s %s %s", v.Capacity, v.AccessMode, v.Type)
	case *record.PersistentVolumeClaim:
		details = fmt.Sprintf("%s %s %s", v.Capacity, v.AccessMode, v.VolumeName)
	case *record.StatefulSet:
		details = fmt.Sprintf("%d replicas, %d containers", v.Replicas, len(v.Containers))
	}
	return []string{
		strconv.FormatInt(meta.ID, 10),
		meta.Namespace,
		meta.Name,
		details,
		time.Unix(meta.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
}
