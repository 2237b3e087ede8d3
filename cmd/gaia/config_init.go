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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stefanprodan/gaia/pkg/config"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Init writes the config file at '$HOME/.gaia/config'.",
	Example: `  # Write the defaults
  gaia config init

  # Enable the dev profile and scope gaia to the apps namespace
  gaia config init --profile dev --default-namespace apps --force`,
	RunE: runConfigInitCmd,
}

type configInitFlags struct {
	defaultNamespace string
	profiles         []string
	force            bool
}

var configInitArgs configInitFlags

func init() {
	configInitCmd.Flags().StringVar(&configInitArgs.defaultNamespace, "default-namespace", config.DefaultNamespace,
		"The namespace of the records without one.")
	configInitCmd.Flags().StringSliceVar(&configInitArgs.profiles, "profile", nil,
		"The active profiles, 'dev' makes sync overwrite existing records.")
	configInitCmd.Flags().BoolVar(&configInitArgs.force, "force", false,
		"Overwrite an existing config file.")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInitCmd(cmd *cobra.Command, args []string) error {
	cfgPath, err := config.DefaultConfigPath()
	if err != nil {
		return fmt.Errorf("$HOME dir can't be determined, error: %w", err)
	}

	if _, err := os.Stat(cfgPath); err == nil && !configInitArgs.force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", cfgPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	c := config.NewConfig()
	c.DefaultNamespace = configInitArgs.defaultNamespace
	c.Profiles = configInitArgs.profiles
	if err := c.Write(cfgPath); err != nil {
		return err
	}

	logger.Println(`✔`, "config written to", cfgPath)
	return nil
}
