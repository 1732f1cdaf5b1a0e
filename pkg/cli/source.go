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

package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/futureguide/api-docs/pkg/catalog"
	"github.com/futureguide/api-docs/pkg/header"
	"github.com/futureguide/api-docs/pkg/render"
	"github.com/futureguide/api-docs/pkg/serializer"
	"github.com/futureguide/api-docs/pkg/site"
)

// source answers the read commands from a local catalog or a server.
type source interface {
	List(ctx context.Context) (any, error)
	Show(ctx context.Context, id string) (any, error)
	Search(ctx context.Context, query string) (any, error)
}

func newSource(cmd *cli.Command) (source, error) {
	if base := cmd.String("server"); base != "" {
		if _, err := url.ParseRequestURI(base); err != nil {
			return nil, fmt.Errorf("invalid --server URL %q: %w", base, err)
		}
		return &remoteSource{
			base:   strings.TrimRight(base, "/"),
			reader: serializer.NewHttpReader(serializer.WithInsecureSkipVerify(cmd.Bool("insecure-tls"))),
		}, nil
	}

	cat, err := loadCatalog(cmd.String("data-dir"))
	if err != nil {
		return nil, err
	}
	return &localSource{cat: cat, doc: render.NewDocument(cat)}, nil
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %q: %w", dir, err)
	}
	return cat, nil
}

type localSource struct {
	cat *catalog.Catalog
	doc *render.Document
}

func (s *localSource) List(_ context.Context) (any, error) {
	return site.NewServiceList(s.cat, version), nil
}

func (s *localSource) Show(_ context.Context, id string) (any, error) {
	return site.NewServiceDetail(s.cat, id, version)
}

func (s *localSource) Search(_ context.Context, query string) (any, error) {
	return site.NewSearchResult(s.doc, query, version), nil
}

type remoteSource struct {
	base   string
	reader *serializer.HttpReader
}

func (s *remoteSource) List(ctx context.Context) (any, error) {
	var l site.ServiceList
	if err := s.reader.ReadJSON(ctx, s.base+"/v1/services", &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *remoteSource) Show(ctx context.Context, id string) (any, error) {
	var d remoteDetail
	if err := s.reader.ReadJSON(ctx, s.base+"/v1/services/"+url.PathEscape(id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *remoteSource) Search(ctx context.Context, query string) (any, error) {
	var r site.SearchResult
	if err := s.reader.ReadJSON(ctx, s.base+"/v1/search?"+url.Values{site.QueryParam: {query}}.Encode(), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// remoteDetail is a ServiceDetail decoded without knowing the record
// variant.
type remoteDetail struct {
	header.Header `yaml:",inline"`

	ID        string             `json:"id" yaml:"id"`
	Service   map[string]any     `json:"service" yaml:"service"`
	Endpoints []site.EndpointRef `json:"endpoints" yaml:"endpoints"`
}

func (d *remoteDetail) Columns() []string {
	return (&site.ServiceDetail{}).Columns()
}

func (d *remoteDetail) Rows() [][]string {
	return (&site.ServiceDetail{Endpoints: d.Endpoints}).Rows()
}
