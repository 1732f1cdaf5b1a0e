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
	"strconv"

	"github.com/futureguide/api-docs/pkg/catalog"
	docserrors "github.com/futureguide/api-docs/pkg/errors"
	"github.com/futureguide/api-docs/pkg/header"
	"github.com/futureguide/api-docs/pkg/render"
	"github.com/futureguide/api-docs/pkg/search"
)

// ServiceSummary is one row of a ServiceList.
type ServiceSummary struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Kind      catalog.Kind `json:"kind" yaml:"kind"`
	BaseURL   string       `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Endpoints int          `json:"endpoints" yaml:"endpoints"`
}

// ServiceList is the response of the service listing.
type ServiceList struct {
	header.Header `yaml:",inline"`

	Title    string           `json:"title" yaml:"title"`
	Services []ServiceSummary `json:"services" yaml:"services"`
}

// NewServiceList summarizes every service of cat in catalog order.
func NewServiceList(cat *catalog.Catalog, version string) *ServiceList {
	l := &ServiceList{Title: cat.Title()}
	l.Init(header.KindServiceList, version)

	for _, e := range cat.All() {
		s := ServiceSummary{
			ID:        e.ID,
			Name:      e.DisplayName(),
			Kind:      e.Service.ServiceKind(),
			Endpoints: e.Endpoints(),
		}
		if std, ok := e.Service.(*catalog.Standard); ok {
			s.BaseURL = std.BaseURL
		}
		l.Services = append(l.Services, s)
	}
	return l
}

func (l *ServiceList) Columns() []string {
	return []string{"ID", "NAME", "KIND", "BASE URL", "ENDPOINTS"}
}

func (l *ServiceList) Rows() [][]string {
	rows := make([][]string, 0, len(l.Services))
	for _, s := range l.Services {
		rows = append(rows, []string{s.ID, s.Name, string(s.Kind), orNA(s.BaseURL), strconv.Itoa(s.Endpoints)})
	}
	return rows
}

// EndpointRef identifies one documented operation.
type EndpointRef struct {
	ServiceID string         `json:"serviceId" yaml:"serviceId"`
	Method    catalog.Method `json:"method" yaml:"method"`
	Path      string         `json:"path" yaml:"path"`
	Title     string         `json:"title" yaml:"title"`
}

// ServiceDetail is the response for a single service: the raw record plus
// its endpoint index.
type ServiceDetail struct {
	header.Header `yaml:",inline"`

	ID        string          `json:"id" yaml:"id"`
	Service   catalog.Service `json:"service" yaml:"service"`
	Endpoints []EndpointRef   `json:"endpoints" yaml:"endpoints"`
}

// NewServiceDetail looks up id in cat.
func NewServiceDetail(cat *catalog.Catalog, id, version string) (*ServiceDetail, error) {
	svc, ok := cat.Get(id)
	if !ok {
		return nil, docserrors.NewWithContext(docserrors.ErrCodeNotFound, "service not found",
			map[string]any{"id": id, "available": cat.IDs()})
	}

	d := &ServiceDetail{ID: id, Service: svc, Endpoints: endpointRefs(id, svc)}
	d.Init(header.KindService, version)
	return d, nil
}

func endpointRefs(id string, svc catalog.Service) []EndpointRef {
	refs := []EndpointRef{}
	switch s := svc.(type) {
	case *catalog.Standard:
		for _, ep := range s.Endpoints {
			refs = append(refs, EndpointRef{ServiceID: id, Method: ep.Method, Path: ep.Path, Title: ep.Title})
		}
	case *catalog.SharingDoc:
		for _, sec := range s.Sections {
			for _, sub := range sec.Subsections {
				if sub.IsEndpoint() {
					refs = append(refs, EndpointRef{ServiceID: id, Method: sub.Method, Path: sub.Path, Title: sub.Title})
				}
			}
		}
	}
	return refs
}

func (d *ServiceDetail) Columns() []string {
	return []string{"METHOD", "PATH", "TITLE"}
}

func (d *ServiceDetail) Rows() [][]string {
	return refRows(d.Endpoints, false)
}

// SearchResult lists the endpoints matching a query.
type SearchResult struct {
	header.Header `yaml:",inline"`

	Query   string        `json:"query" yaml:"query"`
	Total   int           `json:"total" yaml:"total"`
	Matched int           `json:"matched" yaml:"matched"`
	Matches []EndpointRef `json:"matches" yaml:"matches"`
}

// NewSearchResult runs query against the cards of doc. doc is not
// modified.
func NewSearchResult(doc *render.Document, query, version string) *SearchResult {
	cards := doc.Cards()
	matches := search.Matches(cards, query)

	r := &SearchResult{
		Query:   query,
		Total:   len(cards),
		Matched: len(matches),
		Matches: make([]EndpointRef, 0, len(matches)),
	}
	r.Init(header.KindSearchResult, version)

	for _, c := range matches {
		r.Matches = append(r.Matches, EndpointRef{ServiceID: c.ServiceID, Method: c.Method, Path: c.Path, Title: c.Title})
	}
	return r
}

func (r *SearchResult) Columns() []string {
	return []string{"SERVICE", "METHOD", "PATH", "TITLE"}
}

func (r *SearchResult) Rows() [][]string {
	return refRows(r.Matches, true)
}

func refRows(refs []EndpointRef, withService bool) [][]string {
	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		row := []string{string(ref.Method), ref.Path, ref.Title}
		if withService {
			row = append([]string{ref.ServiceID}, row...)
		}
		rows = append(rows, row)
	}
	return rows
}

func orNA(s string) string {
	if s == "" {
		return render.PlaceholderValue
	}
	return s
}
