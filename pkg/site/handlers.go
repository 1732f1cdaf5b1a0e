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
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/futureguide/api-docs/pkg/defaults"
	docserrors "github.com/futureguide/api-docs/pkg/errors"
	"github.com/futureguide/api-docs/pkg/render"
	"github.com/futureguide/api-docs/pkg/search"
	"github.com/futureguide/api-docs/pkg/serializer"
	"github.com/futureguide/api-docs/pkg/server"
	"github.com/futureguide/api-docs/pkg/theme"
)

const (
	// QueryParam carries the search text on the page and the search API.
	QueryParam = "q"
	// MaxQueryLength bounds the accepted search text.
	MaxQueryLength = 256
	// ThemePath is the form target of the theme toggle.
	ThemePath = "/theme"
	// StaticPath serves the embedded stylesheet and script.
	StaticPath = "/static/"
)

// Handlers returns the routes served by the site, keyed by mux pattern.
func (s *Site) Handlers() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /{$}":                   s.HandlePage,
		"POST " + ThemePath:          s.HandleTheme,
		"GET /v1/services":           s.HandleServices,
		"GET /v1/services/{id}":      s.HandleService,
		"GET /v1/services/{id}/html": s.HandleSection,
		"GET /v1/search":             s.HandleSearch,
	}
}

// StaticHandler serves the page assets under StaticPath.
func StaticHandler() http.Handler {
	return http.StripPrefix(StaticPath, http.FileServerFS(render.Static()))
}

func queryFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query().Get(QueryParam)
	if len(q) > MaxQueryLength {
		server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest,
			"Search query too long", false, map[string]any{
				"length": len(q),
				"max":    MaxQueryLength,
			})
		return "", false
	}
	return q, true
}

// HandlePage renders the documentation page. The q parameter pre-filters
// the cards and the theme comes from the preference cookie.
func (s *Site) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.PageHandlerTimeout)
	defer cancel()

	q, ok := queryFrom(w, r)
	if !ok {
		return
	}

	doc := s.Document().Clone()
	visible := search.Filter(doc.Cards(), q)

	pref := theme.NewPreference(theme.NewCookieStore(w, r))
	current := pref.Init()

	var buf bytes.Buffer
	err := render.WriteHTML(&buf, doc, render.PageOptions{
		Theme:        current,
		Query:        q,
		StaticPrefix: StaticPath,
		ThemeAction:  ThemePath,
		LiveReload:   s.liveReload,
	})
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to render page", nil)
		return
	}
	if ctx.Err() != nil {
		server.WriteErrorFromErr(w, r,
			docserrors.Wrap(docserrors.ErrCodeTimeout, "page rendering timed out", ctx.Err()),
			"Failed to render page", nil)
		return
	}

	slog.Debug("page rendered", "query", q, "visible", visible, "theme", current)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(defaults.PageCacheMaxAge.Seconds())))
	w.Header().Set("Vary", "Cookie")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write page", "error", err)
	}
}

// HandleTheme flips the stored theme and sends the browser back to the
// page it came from.
func (s *Site) HandleTheme(w http.ResponseWriter, r *http.Request) {
	pref := theme.NewPreference(theme.NewCookieStore(w, r))
	pref.Init()

	next, err := pref.Toggle()
	if err != nil {
		// The page still flips for this response, only persistence failed.
		slog.Warn("failed to persist theme", "error", err)
	}
	slog.Debug("theme toggled", "theme", next)

	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the same-host path of the Referer, or "/".
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	// A path starting with "//" would redirect to another host.
	if err != nil || ref.Path == "" || strings.HasPrefix(ref.Path, "//") || strings.HasPrefix(ref.Path, "/\\") ||
		(ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

// HandleServices lists the catalog.
func (s *Site) HandleServices(w http.ResponseWriter, r *http.Request) {
	setCache(w)
	serializer.RespondJSON(w, http.StatusOK, NewServiceList(s.Catalog(), s.version))
}

// HandleService returns one service record by id.
func (s *Site) HandleService(w http.ResponseWriter, r *http.Request) {
	detail, err := NewServiceDetail(s.Catalog(), r.PathValue("id"), s.version)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to get service", nil)
		return
	}
	setCache(w)
	serializer.RespondJSON(w, http.StatusOK, detail)
}

// HandleSection returns the rendered HTML section of one service.
func (s *Site) HandleSection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	v, ok := s.Document().View(id)
	if !ok {
		server.WriteErrorFromErr(w, r,
			docserrors.NewWithContext(docserrors.ErrCodeNotFound, "service not found", map[string]any{"id": id}),
			"Failed to get service", nil)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteSection(&buf, v); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to render service", nil)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	setCache(w)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write section", "service", id, "error", err)
	}
}

// HandleSearch returns the endpoints matching q.
func (s *Site) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q, ok := queryFrom(w, r)
	if !ok {
		return
	}
	setCache(w)
	serializer.RespondJSON(w, http.StatusOK, NewSearchResult(s.Document(), q, s.version))
}

func setCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(defaults.PageCacheMaxAge.Seconds())))
}
