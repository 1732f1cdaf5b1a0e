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
	"log/slog"
	"time"

	"github.com/futureguide/api-docs/pkg/catalog"
)

// NavLink is one entry of the sidebar navigation.
type NavLink struct {
	Anchor string
	Label  string
}

// Href is the in-page link target.
func (n NavLink) Href() string {
	return "#" + n.Anchor
}

// ServiceSummary is one row of the overview tab.
type ServiceSummary struct {
	Anchor    string
	Name      string
	Kind      catalog.Kind
	BaseURL   string
	Endpoints int
}

// MethodCount is one row of the methods tab.
type MethodCount struct {
	Method catalog.Method
	Count  int
}

// Class is the style token of the method badge.
func (m MethodCount) Class() string {
	return m.Method.Class()
}

// Document is the whole rendered page. A built Document is not modified;
// callers that filter work on a Clone.
type Document struct {
	Title    string
	Nav      []NavLink
	Services []ServiceSummary
	Methods  []MethodCount
	Views    []View
	// Skipped lists entries that failed to render.
	Skipped []string
}

var methodOrder = []catalog.Method{
	catalog.MethodGet,
	catalog.MethodPost,
	catalog.MethodPut,
	catalog.MethodPatch,
	catalog.MethodDelete,
}

// NewDocument renders every entry of cat in catalog order. A failing entry
// is logged and left out; the rest of the page still renders.
func NewDocument(cat *catalog.Catalog) *Document {
	return Build(cat.Title(), cat.All())
}

// Build renders entries under the given page title.
func Build(title string, entries []catalog.Entry) *Document {
	start := time.Now()
	defer func() {
		renderDuration.Observe(time.Since(start).Seconds())
	}()

	doc := &Document{
		Title: title,
		Nav:   make([]NavLink, 0, len(entries)),
		Views: make([]View, 0, len(entries)),
	}

	counts := make(map[catalog.Method]int)
	for _, e := range entries {
		v, err := Render(e)
		if err != nil {
			renderFailures.WithLabelValues(e.ID).Inc()
			slog.Error("failed to render service, skipping", "service", e.ID, "error", err)
			doc.Skipped = append(doc.Skipped, e.ID)
			continue
		}
		doc.Nav = append(doc.Nav, NavLink{Anchor: e.ID, Label: navLabel(e)})
		doc.Views = append(doc.Views, v)

		summary := ServiceSummary{Anchor: e.ID, Name: v.Heading(), Kind: e.Service.ServiceKind(), Endpoints: len(v.Cards())}
		if s, ok := e.Service.(*catalog.Standard); ok {
			summary.BaseURL = orDefault(s.BaseURL, PlaceholderValue)
		}
		doc.Services = append(doc.Services, summary)

		for _, c := range v.Cards() {
			counts[c.Method]++
		}
	}

	for _, m := range methodOrder {
		if counts[m] > 0 {
			doc.Methods = append(doc.Methods, MethodCount{Method: m, Count: counts[m]})
		}
	}

	renderedCards.Set(float64(len(doc.Cards())))
	return doc
}

func navLabel(e catalog.Entry) string {
	def := PlaceholderName
	if _, ok := e.Service.(*catalog.SharingDoc); ok {
		def = PlaceholderSharing
	}
	return orDefault(e.DisplayName(), def)
}

// Cards returns every endpoint card in page order.
func (d *Document) Cards() []*Card {
	var out []*Card
	for _, v := range d.Views {
		out = append(out, v.Cards()...)
	}
	return out
}

// VisibleCards counts cards with Visible set.
func (d *Document) VisibleCards() int {
	n := 0
	for _, c := range d.Cards() {
		if c.Visible {
			n++
		}
	}
	return n
}

// View returns the view with the given anchor.
func (d *Document) View(anchor string) (View, bool) {
	for _, v := range d.Views {
		if v.Anchor() == anchor {
			return v, true
		}
	}
	return nil, false
}

// Clone returns a copy whose cards can be filtered independently.
func (d *Document) Clone() *Document {
	c := *d
	c.Views = make([]View, len(d.Views))
	for i, v := range d.Views {
		c.Views[i] = v.clone()
	}
	return &c
}
