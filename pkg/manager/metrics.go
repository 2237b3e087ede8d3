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
	"github.com/prometheus/client_golang/prometheus"
)

var (
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gaia",
			Name:      "operations_total",
			Help:      "Number of record operations by kind, operation and result.",
		},
		[]string{"kind", "operation", "result"},
	)

	syncObjectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gaia",
			Name:      "sync_objects_total",
			Help:      "Number of cluster objects visited by sync, by kind and action.",
		},
		[]string{"kind", "action"},
	)
)

// RegisterMetrics registers the manager collectors with r.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{operationsTotal, syncObjectsTotal} {
		if err := r.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func observeOperation(kind, operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	operationsTotal.WithLabelValues(kind, operation, result).Inc()
}
