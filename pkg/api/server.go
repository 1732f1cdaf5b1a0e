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

package api

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/futureguide/api-docs/pkg/catalog"
	"github.com/futureguide/api-docs/pkg/livereload"
	"github.com/futureguide/api-docs/pkg/logging"
	"github.com/futureguide/api-docs/pkg/server"
	"github.com/futureguide/api-docs/pkg/site"
)

const (
	name           = "docsd"
	versionDefault = "dev"

	// EnvDataDir points at a catalog directory to serve instead of the
	// embedded catalog.
	EnvDataDir = "DOCS_DATA_DIR"
	// EnvWatch enables reloading on changes below EnvDataDir.
	EnvWatch = "DOCS_WATCH"
	// EnvLogLevel sets the log level (debug, info, warn, error).
	EnvLogLevel = "LOG_LEVEL"

	// LiveReloadPath is the websocket endpoint pages listen on.
	LiveReloadPath = "/livereload"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/futureguide/api-docs/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Options is the environment driven configuration of the daemon.
type Options struct {
	DataDir string
	Watch   bool
	// Port overrides the PORT environment variable when set.
	Port int
}

// OptionsFromEnv reads Options from the environment.
func OptionsFromEnv() Options {
	opts := Options{DataDir: os.Getenv(EnvDataDir)}
	if v := os.Getenv(EnvWatch); v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid watch flag, ignoring", "env", EnvWatch, "value", v)
		}
		opts.Watch = watch
	}
	if opts.Watch && opts.DataDir == "" {
		slog.Warn("watch requires a data directory, disabling", "env", EnvDataDir)
		opts.Watch = false
	}
	return opts
}

func (o Options) loader() site.Loader {
	if o.DataDir == "" {
		return catalog.Default
	}
	return func() (*catalog.Catalog, error) {
		return catalog.LoadDir(o.DataDir)
	}
}

// NewServer loads the catalog and assembles the documentation server.
func NewServer(opts Options) (*server.Server, error) {
	load := opts.loader()
	cat, err := load()
	if err != nil {
		return nil, err
	}

	siteOpts := []site.Option{site.WithLoader(load), site.WithVersion(version)}
	if opts.Watch {
		siteOpts = append(siteOpts, site.WithLiveReload(LiveReloadPath))
	}
	docs, err := site.New(cat, siteOpts...)
	if err != nil {
		return nil, err
	}

	slog.Info("catalog loaded",
		"title", cat.Title(),
		"services", cat.Len(),
		"source", sourceOf(opts),
	)

	var serverOpts []server.Option
	if opts.Port > 0 {
		cfg := server.NewConfig()
		cfg.Port = opts.Port
		serverOpts = append(serverOpts, server.WithConfig(cfg))
	}
	serverOpts = append(serverOpts,
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(docs.Handlers()),
		server.WithRawHandler("GET "+site.StaticPath, site.StaticHandler()),
	)

	if opts.Watch {
		hub := livereload.NewHub()
		serverOpts = append(serverOpts,
			server.WithRawHandler("GET "+LiveReloadPath, hub),
			server.WithBackground(hub.Run),
			server.WithBackground(func(ctx context.Context) error {
				return livereload.Watch(ctx, opts.DataDir, func() {
					if err := docs.Reload(); err == nil {
						hub.Notify()
					}
				})
			}),
		)
	}

	return server.New(serverOpts...), nil
}

func sourceOf(opts Options) string {
	if opts.DataDir == "" {
		return "embedded"
	}
	return opts.DataDir
}

// Serve starts the documentation server and blocks until SIGINT or
// SIGTERM.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.SetDefaultStructuredLoggerWithLevel(name, version, os.Getenv(EnvLogLevel))
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s, err := NewServer(OptionsFromEnv())
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
