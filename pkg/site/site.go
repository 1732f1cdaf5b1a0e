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

package site

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/futureguide/api-docs/pkg/catalog"
	docserrors "github.com/futureguide/api-docs/pkg/errors"
	"github.com/futureguide/api-docs/pkg/render"
)

var (
	reloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docs_site_reloads_total",
			Help: "Total number of catalog reloads by result",
		},
		[]string{"result"},
	)
	lastReload = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "docs_site_last_reload_timestamp_seconds",
			Help: "Unix time of the last successful catalog reload",
		},
	)
)

// Loader returns a freshly loaded catalog.
type Loader func() (*catalog.Catalog, error)

// snapshot pairs a catalog with the document rendered from it so readers
// always see a matching pair.
type snapshot struct {
	cat *catalog.Catalog
	doc *render.Document
}

// Site serves one rendered catalog. The current snapshot is immutable and
// replaced atomically by Reload.
type Site struct {
	current    atomic.Pointer[snapshot]
	loader     Loader
	liveReload string
	version    string
}

// Option configures a Site.
type Option func(*Site)

// WithLoader sets the function Reload uses to fetch a new catalog.
func WithLoader(l Loader) Option {
	return func(s *Site) {
		s.loader = l
	}
}

// WithLiveReload makes pages connect to the websocket at path.
func WithLiveReload(path string) Option {
	return func(s *Site) {
		s.liveReload = path
	}
}

// WithVersion sets the version stamped into API response headers.
func WithVersion(v string) Option {
	return func(s *Site) {
		s.version = v
	}
}

// New renders cat and returns a Site serving it.
func New(cat *catalog.Catalog, opts ...Option) (*Site, error) {
	if cat == nil {
		return nil, docserrors.New(docserrors.ErrCodeInvalidRequest, "catalog is required")
	}
	s := &Site{}
	for _, opt := range opts {
		opt(s)
	}
	s.swap(cat)
	return s, nil
}

func (s *Site) swap(cat *catalog.Catalog) {
	s.current.Store(&snapshot{cat: cat, doc: render.NewDocument(cat)})
}

// Catalog returns the catalog being served.
func (s *Site) Catalog() *catalog.Catalog {
	return s.current.Load().cat
}

// Document returns the rendered document. Callers must Clone before
// changing card visibility.
func (s *Site) Document() *render.Document {
	return s.current.Load().doc
}

// LiveReloadPath returns the websocket path pages connect to, or empty.
func (s *Site) LiveReloadPath() string {
	return s.liveReload
}

// Reload loads a new catalog and swaps it in. On failure the previous
// catalog keeps serving.
func (s *Site) Reload() error {
	if s.loader == nil {
		return docserrors.New(docserrors.ErrCodeUnavailable, "site has no catalog loader")
	}

	cat, err := s.loader()
	if err != nil {
		reloadsTotal.WithLabelValues("error").Inc()
		slog.Error("catalog reload failed, keeping previous catalog", "error", err)
		return err
	}

	s.swap(cat)
	reloadsTotal.WithLabelValues("success").Inc()
	lastReload.Set(float64(time.Now().Unix()))
	slog.Info("catalog reloaded", "services", cat.Len(), "skipped", len(s.Document().Skipped))
	return nil
}
