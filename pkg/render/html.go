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
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"time"

	docserrors "github.com/futureguide/api-docs/pkg/errors"
	"github.com/futureguide/api-docs/pkg/theme"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplates = template.Must(
	template.New("docs").ParseFS(templateFS, "templates/*.tmpl"),
)

// Static returns the stylesheet and script referenced by the page.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("embedded static assets missing: %v", err))
	}
	return sub
}

// PageOptions controls page level details that are not part of the
// rendered catalog.
type PageOptions struct {
	// Theme is the initial data-theme attribute.
	Theme theme.Theme
	// Query pre-fills the search input.
	Query string
	// StaticPrefix is prepended to asset names. Defaults to "/static/".
	StaticPrefix string
	// ThemeAction is the form target of the theme toggle. Empty keeps the
	// toggle client side only.
	ThemeAction string
	// LiveReload is the websocket path the page listens on for reloads.
	// Empty disables live reload.
	LiveReload string
}

type pageData struct {
	Doc          *Document
	Theme        theme.Theme
	Query        string
	Static       string
	ThemeAction  string
	LiveReload   string
	Sections     []template.HTML
	VisibleCards int
	TotalCards   int
}

// WriteHTML writes doc as a complete page. Each view is executed into its
// own buffer so that a failing service is logged and skipped.
func WriteHTML(w io.Writer, doc *Document, opts PageOptions) error {
	start := time.Now()
	defer func() {
		pageWriteDuration.Observe(time.Since(start).Seconds())
	}()

	if opts.StaticPrefix == "" {
		opts.StaticPrefix = "/static/"
	}
	if opts.Theme == "" {
		opts.Theme = theme.Default
	}

	data := pageData{
		Doc:          doc,
		Theme:        opts.Theme,
		Query:        opts.Query,
		Static:       opts.StaticPrefix,
		ThemeAction:  opts.ThemeAction,
		LiveReload:   opts.LiveReload,
		Sections:     make([]template.HTML, 0, len(doc.Views)),
		VisibleCards: doc.VisibleCards(),
		TotalCards:   len(doc.Cards()),
	}

	for _, v := range doc.Views {
		html, err := renderView(v)
		if err != nil {
			renderFailures.WithLabelValues(v.Anchor()).Inc()
			slog.Error("failed to write service section, skipping", "service", v.Anchor(), "error", err)
			continue
		}
		data.Sections = append(data.Sections, html)
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "page", data); err != nil {
		return docserrors.Wrap(docserrors.ErrCodeInternal, "failed to execute page template", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return docserrors.Wrap(docserrors.ErrCodeInternal, "failed to write page", err)
	}
	return nil
}

// WriteSection writes the HTML of a single view.
func WriteSection(w io.Writer, v View) error {
	html, err := renderView(v)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, string(html)); err != nil {
		return docserrors.Wrap(docserrors.ErrCodeInternal, "failed to write section", err)
	}
	return nil
}

func renderView(v View) (template.HTML, error) {
	var name string
	switch v.(type) {
	case *StandardView:
		name = "standard"
	case *SharingView:
		name = "sharing"
	default:
		return "", docserrors.NewWithContext(docserrors.ErrCodeInternal, "no template for view",
			map[string]any{"type": fmt.Sprintf("%T", v)})
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, v); err != nil {
		return "", docserrors.WrapWithContext(docserrors.ErrCodeInternal, "failed to execute section template", err,
			map[string]any{"service": v.Anchor()})
	}
	//nolint:gosec // G203: buf holds output already escaped by html/template
	return template.HTML(buf.String()), nil
}
