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
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sync"
	"time"

	docserrors "github.com/futureguide/api-docs/pkg/errors"
	"github.com/futureguide/api-docs/pkg/header"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestFile is the catalog manifest at the root of a data directory.
	ManifestFile = "catalog.yaml"
	// ServicesDir holds one <id>.yaml file per service.
	ServicesDir = "services"
)

//go:embed data/catalog.yaml data/services/*.yaml
var dataFS embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Catalog is the ordered, read-only set of documented services.
type Catalog struct {
	header.Header `yaml:",inline"`

	entries []Entry
	index   map[string]int
}

// manifest is the on-disk shape of catalog.yaml.
type manifest struct {
	header.Header `yaml:",inline"`
	Spec          struct {
		Services []string `yaml:"services"`
	} `yaml:"spec"`
}

// record reads the discriminator fields of a service file.
type record struct {
	ID   string `yaml:"id"`
	Kind Kind   `yaml:"kind"`
}

// Default returns the catalog compiled into the binary. It is loaded once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(dataFS, "data")
		if err != nil {
			defaultErr = docserrors.Wrap(docserrors.ErrCodeInternal, "embedded catalog data missing", err)
			return
		}
		defaultCatalog, defaultErr = Load(sub)
	})
	return defaultCatalog, defaultErr
}

// LoadDir loads a catalog from a directory on disk with the same layout as
// the embedded data.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeNotFound, fmt.Sprintf("data directory %q not readable", dir), err)
	}
	if !info.IsDir() {
		return nil, docserrors.New(docserrors.ErrCodeInvalidRequest, fmt.Sprintf("data path %q is not a directory", dir))
	}
	return Load(os.DirFS(dir))
}

// Load reads catalog.yaml and every service file it lists from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	start := time.Now()
	c, err := load(fsys)
	catalogLoadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		catalogLoadErrors.Inc()
		return nil, err
	}
	catalogServices.Set(float64(len(c.entries)))
	slog.Debug("catalog loaded",
		"title", c.Title(),
		"services", len(c.entries),
		"duration", time.Since(start))
	return c, nil
}

func load(fsys fs.FS) (*Catalog, error) {
	content, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeNotFound, "catalog manifest not found", err)
	}

	var m manifest
	if err := decodeStrict(content, &m); err != nil {
		return nil, docserrors.WrapWithContext(docserrors.ErrCodeInvalidData, "failed to parse catalog manifest", err,
			map[string]any{"file": ManifestFile})
	}
	if m.Kind != header.KindCatalog {
		return nil, docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "unexpected manifest kind",
			map[string]any{"kind": string(m.Kind), "expected": string(header.KindCatalog)})
	}
	if m.APIVersion != header.APIVersionV1 {
		return nil, docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "unsupported manifest apiVersion",
			map[string]any{"apiVersion": m.APIVersion, "expected": header.APIVersionV1})
	}

	entries := make([]Entry, 0, len(m.Spec.Services))
	for _, id := range m.Spec.Services {
		file := path.Join(ServicesDir, id+".yaml")
		svc, err := loadService(fsys, file)
		if err != nil {
			return nil, err
		}
		if svc.ServiceID() != id {
			return nil, docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "service id does not match manifest",
				map[string]any{"file": file, "id": svc.ServiceID(), "expected": id})
		}
		entries = append(entries, Entry{ID: id, Service: svc})
	}

	return newCatalog(m.Header, entries)
}

func loadService(fsys fs.FS, file string) (Service, error) {
	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, docserrors.WrapWithContext(docserrors.ErrCodeNotFound, "service file not found", err,
			map[string]any{"file": file})
	}

	var rec record
	if err := yaml.Unmarshal(content, &rec); err != nil {
		return nil, docserrors.WrapWithContext(docserrors.ErrCodeInvalidData, "failed to parse service file", err,
			map[string]any{"file": file})
	}

	var svc Service
	switch rec.Kind {
	case KindStandard:
		svc = &Standard{}
	case KindSharing:
		svc = &SharingDoc{}
	default:
		return nil, docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "unknown service kind",
			map[string]any{"file": file, "kind": string(rec.Kind)})
	}

	if err := decodeStrict(content, svc); err != nil {
		return nil, docserrors.WrapWithContext(docserrors.ErrCodeInvalidData, "failed to decode service file", err,
			map[string]any{"file": file, "kind": string(rec.Kind)})
	}
	return svc, nil
}

// decodeStrict rejects keys that do not map to a field so that typos in
// data files fail the load instead of silently dropping content.
func decodeStrict(content []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// New builds a catalog from entries in the given order. It applies the
// same validation as Load.
func New(title string, entries ...Entry) (*Catalog, error) {
	h := header.New(
		header.WithKind(header.KindCatalog),
		header.WithMetadata("title", title),
	)
	return newCatalog(*h, entries)
}

func newCatalog(h header.Header, entries []Entry) (*Catalog, error) {
	if err := Validate(entries); err != nil {
		return nil, err
	}
	c := &Catalog{
		Header:  h,
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)
	for i, e := range c.entries {
		c.index[e.ID] = i
	}
	return c, nil
}

// Title returns the site title from the manifest metadata.
func (c *Catalog) Title() string {
	if t := c.Metadata["title"]; t != "" {
		return t
	}
	return "API Documentation"
}

// All returns every entry in catalog order. The slice is a copy; the
// records it points to must not be modified.
func (c *Catalog) All() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the service with the given id.
func (c *Catalog) Get(id string) (Service, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.entries[i].Service, true
}

// Len returns the number of services.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// IDs returns the service ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}
