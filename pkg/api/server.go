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

// Package api serves the gaia records over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/stefanprodan/gaia/pkg/kinds"
	"github.com/stefanprodan/gaia/pkg/record"
)

// RequestTimeout bounds the handling of a single request.
const RequestTimeout = 60 * time.Second

// NewServer builds the root router and mounts one subrouter per record
// kind under /api/v1.
func NewServer(registry *kinds.Registry, gatherer prometheus.Gatherer, logger logr.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))
	r.Use(withLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Use a versioned path like /api/v1/..."})
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/persistentvolumes", resourceRouter(&resourceHandler[*record.PersistentVolume, *corev1.PersistentVolume, record.PersistentVolumeUpdate]{
			manager: registry.PersistentVolumes,
			decode:  decodeRecord[*record.PersistentVolume](kinds.PersistentVolumes{}.NewRecord),
		}))
		api.Mount("/persistentvolumeclaims", resourceRouter(&resourceHandler[*record.PersistentVolumeClaim, *corev1.PersistentVolumeClaim, record.PersistentVolumeClaimUpdate]{
			manager: registry.PersistentVolumeClaims,
			decode:  decodeRecord[*record.PersistentVolumeClaim](kinds.PersistentVolumeClaims{}.NewRecord),
		}))
		api.Mount("/configmaps", resourceRouter(&resourceHandler[*record.ConfigMap, *corev1.ConfigMap, record.ConfigMapUpdate]{
			manager: registry.ConfigMaps,
			decode:  decodeRecord[*record.ConfigMap](kinds.ConfigMaps{}.NewRecord),
		}))
		api.Mount("/secrets", resourceRouter(&resourceHandler[*record.Secret, *corev1.Secret, record.SecretUpdate]{
			manager: registry.Secrets,
			decode:  decodeSecret,
		}))
		api.Mount("/statefulsets", resourceRouter(&resourceHandler[*record.StatefulSet, *appsv1.StatefulSet, record.StatefulSetUpdate]{
			manager: registry.StatefulSets,
			decode:  decodeRecord[*record.StatefulSet](kinds.StatefulSets{}.NewRecord),
		}))
	})

	return r
}

// withLogger makes the logger available to the managers through the request context.
func withLogger(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger.WithValues("requestID", middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r.WithContext(log.IntoContext(r.Context(), l)))
		})
	}
}
