// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docs_catalog_load_duration_seconds",
			Help:    "Duration of catalog loads in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		},
	)
	catalogLoadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docs_catalog_load_errors_total",
			Help: "Total number of failed catalog loads",
		},
	)
	catalogServices = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "docs_catalog_services",
			Help: "Number of services in the most recently loaded catalog",
		},
	)
)
