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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanprodan/gaia/pkg/manager"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync adopts the volumes, claims, config maps, secrets and stateful sets found in the cluster.",
	Long: `The sync command lists the objects of every managed kind and stores a record for
each object without one. When the 'dev' profile is active, existing records are
overwritten with the cluster state. Records are never removed.`,
	Example: `  gaia sync --namespace apps`,
	RunE:    runSyncCmd,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	db, stores, err := openStores()
	if err != nil {
		return err
	}
	defer db.Close()

	registry, err := newRegistry(stores)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), rootArgs.timeout)
	defer cancel()

	logger.Println(`►`, fmt.Sprintf("syncing objects in namespace %s", namespace()))
	changeSet, err := manager.Bootstrap(ctx, registry.Syncers()...)
	if changeSet != nil {
		printChangeSet(cmd, changeSet)
	}
	if err != nil {
		return err
	}

	for _, e := range changeSet.Entries {
		if e.Err != nil {
			logger.Println(`✗`, e.Subject, e.Err)
		}
	}
	logger.Println(`✔`, fmt.Sprintf("sync finished, %d created, %d configured, %d unchanged, %d failed",
		changeSet.Count(manager.CreatedAction),
		changeSet.Count(manager.ConfiguredAction),
		changeSet.Count(manager.UnchangedAction),
		changeSet.Count(manager.FailedAction)))
	return nil
}

func printChangeSet(cmd *cobra.Command, changeSet *manager.ChangeSet) {
	var rows [][]string
	for _, e := range changeSet.Entries {
		rows = append(rows, []string{e.Subject, string(e.Action)})
	}
	printTable(cmd.OutOrStdout(), []string{"object", "action"}, rows)
}
