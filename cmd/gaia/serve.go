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
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/stefanprodan/gaia/pkg/api"
	"github.com/stefanprodan/gaia/pkg/manager"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve syncs the cluster objects and serves the records over HTTP.",
	Long: `The serve command adopts the objects found in the cluster, then serves the REST API.
Startup fails if the initial sync can't list or store the objects.`,
	Example: `  gaia serve --listen-address :8080 --namespace apps`,
	RunE:    runServeCmd,
}

type serveFlags struct {
	listenAddress   string
	shutdownTimeout time.Duration
}

var serveArgs serveFlags

func init() {
	serveCmd.Flags().StringVar(&serveArgs.listenAddress, "listen-address", "",
		"The address the API binds to, defaults to the config listenAddress.")
	serveCmd.Flags().DurationVar(&serveArgs.shutdownTimeout, "shutdown-timeout", 15*time.Second,
		"The length of time to wait for in-flight requests on shutdown.")
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, stores, err := openStores()
	if err != nil {
		return err
	}
	defer db.Close()

	registry, err := newRegistry(stores)
	if err != nil {
		return err
	}

	syncCtx, cancel := context.WithTimeout(ctx, rootArgs.timeout)
	changeSet, err := manager.Bootstrap(syncCtx, registry.Syncers()...)
	cancel()
	if err != nil {
		return fmt.Errorf("bootstrap failed, error: %w", err)
	}
	if err := changeSet.Err(); err != nil {
		logger.Println(`✗`, err)
	}
	logger.Println(`✔`, fmt.Sprintf("bootstrap finished, %d objects adopted", changeSet.Count(manager.CreatedAction)))

	metrics := prometheus.NewRegistry()
	metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := manager.RegisterMetrics(metrics); err != nil {
		return err
	}

	address := serveArgs.listenAddress
	if address == "" {
		address = cfg.ListenAddress
	}
	srv := &http.Server{
		Addr:              address,
		Handler:           api.NewServer(registry, metrics, ctrllog.Log.WithName("api")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Println(`►`, "serving on", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveArgs.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed, error: %w", err)
	}
	logger.Println(`✔`, "server stopped")
	return nil
}
