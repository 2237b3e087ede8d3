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
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	_ "k8s.io/client-go/plugin/pkg/client/auth"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/stefanprodan/gaia/pkg/config"
)

var VERSION = "0.1.0-dev.0"

const PROJECT = "gaia"

var rootCmd = &cobra.Command{
	Use:           PROJECT,
	Version:       VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "A record keeper for Kubernetes config maps, secrets, volumes and stateful sets.",
	Long: `Gaia keeps a local record of the Kubernetes objects it manages and serves them over a REST API.

Serve the API after adopting the objects found in the cluster:

- gaia serve --listen-address :8080

Adopt the cluster objects without serving:

- gaia sync --namespace <namespace>

Inspect the stored records:

- gaia get configmaps|secrets|persistentvolumes|persistentvolumeclaims|statefulsets [name] [-o yaml|json]
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ctrllog.SetLogger(zap.New(zap.WriteTo(cmd.ErrOrStderr()), zap.UseDevMode(rootArgs.verbose)))
	},
}

type rootFlags struct {
	timeout   time.Duration
	storePath string
	verbose   bool
}

var (
	rootArgs = rootFlags{}
	logger   = stderrLogger{stderr: os.Stderr}
	cfg      = config.NewConfig()
)

var kubeconfigArgs = genericclioptions.NewConfigFlags(false)

func init() {
	rootCmd.PersistentFlags().DurationVar(&rootArgs.timeout, "timeout", time.Minute,
		"The length of time to wait before giving up on the current operation.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.storePath, "store", "",
		"Path to the record database, defaults to the config storePath or '$HOME/.gaia/gaia.db'.")
	rootCmd.PersistentFlags().BoolVar(&rootArgs.verbose, "verbose", false,
		"Print debug logs.")

	kubeconfigArgs.Timeout = nil
	kubeconfigArgs.Namespace = nil
	kubeconfigArgs.AddFlags(rootCmd.PersistentFlags())

	defaultNamespace := ""
	kubeconfigArgs.Namespace = &defaultNamespace
	rootCmd.PersistentFlags().StringVarP(kubeconfigArgs.Namespace, "namespace", "n", *kubeconfigArgs.Namespace,
		"The namespace of the managed objects, defaults to the config defaultNamespace.")

	rootCmd.DisableAutoGenTag = true
	rootCmd.SetOut(os.Stdout)
}

func main() {
	loadConfig()
	if err := rootCmd.Execute(); err != nil {
		logger.Println(`✗`, err)
		os.Exit(1)
	}
}

func loadConfig() {
	if c, err := config.Read(""); err != nil {
		logger.Println(`✗`, fmt.Errorf("loading the config failed, error: %w", err))
	} else {
		cfg = c
	}
}

// namespace returns the namespace flag or the configured default.
func namespace() string {
	if kubeconfigArgs.Namespace != nil && *kubeconfigArgs.Namespace != "" {
		return *kubeconfigArgs.Namespace
	}
	return cfg.DefaultNamespace
}

type stderrLogger struct {
	stderr io.Writer
}

func (l stderrLogger) Println(a ...interface{}) {
	fmt.Fprintln(l.stderr, a...)
}
