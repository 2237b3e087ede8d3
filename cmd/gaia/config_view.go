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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View prints the config loaded from '$HOME/.gaia/config', or the defaults when the file is missing.",
	RunE:  runConfigViewCmd,
}

type configViewFlags struct {
	output string
}

var configViewArgs = configViewFlags{output: "yaml"}

func init() {
	configViewCmd.Flags().StringVarP(&configViewArgs.output, "output", "o", configViewArgs.output,
		"The output format, one of yaml or json.")
	configCmd.AddCommand(configViewCmd)
}

func runConfigViewCmd(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	switch configViewArgs.output {
	case "yaml":
		data, err = yaml.Marshal(cfg)
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	default:
		return fmt.Errorf("unsupported output format %q", configViewArgs.output)
	}
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}
