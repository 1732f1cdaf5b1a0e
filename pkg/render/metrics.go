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

package render

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docs_render_duration_seconds",
			Help:    "Duration of full document renders in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5},
		},
	)
	renderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docs_render_failures_total",
			Help: "Total number of services skipped because they failed to render",
		},
		[]string{"service"},
	)
	renderedCards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "docs_rendered_cards",
			Help: "Number of endpoint cards in the most recently built document",
		},
	)
	pageWriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docs_page_write_duration_seconds",
			Help:    "Duration of HTML page writes in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5},
		},
	)
)
