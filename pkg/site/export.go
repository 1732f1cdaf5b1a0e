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
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	docserrors "github.com/futureguide/api-docs/pkg/errors"
	"github.com/futureguide/api-docs/pkg/header"
	"github.com/futureguide/api-docs/pkg/render"
	"github.com/futureguide/api-docs/pkg/theme"
)

// IndexFile is the page file name inside an exported bundle.
const IndexFile = "index.html"

// ExportOptions controls the static export.
type ExportOptions struct {
	// Flat puts the assets next to the page instead of under static/.
	// ConfigMap keys cannot contain a slash, so ConfigMap targets need it.
	Flat bool
	// Theme is the initial theme of the exported page.
	Theme theme.Theme
	// Version is stamped into the bundle header.
	Version string
}

// Bundle is a self-contained rendered site keyed by relative file name.
type Bundle struct {
	header.Header `yaml:",inline"`

	files map[string][]byte
}

// Files returns the bundle content.
func (b *Bundle) Files() map[string][]byte {
	return b.files
}

// Names returns the file names in sorted order.
func (b *Bundle) Names() []string {
	return slices.Sorted(maps.Keys(b.files))
}

// Export renders doc as a static page plus its assets. The theme toggle
// stays client side since there is no server to post to.
func Export(doc *render.Document, opts ExportOptions) (*Bundle, error) {
	prefix := "static/"
	if opts.Flat {
		prefix = "./"
	}

	var page bytes.Buffer
	if err := render.WriteHTML(&page, doc, render.PageOptions{Theme: opts.Theme, StaticPrefix: prefix}); err != nil {
		return nil, err
	}

	b := &Bundle{files: map[string][]byte{IndexFile: page.Bytes()}}
	b.Init(header.KindSite, opts.Version)

	static := render.Static()
	err := fs.WalkDir(static, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(static, name)
		if err != nil {
			return err
		}
		if opts.Flat {
			b.files[path.Base(name)] = content
		} else {
			b.files[path.Join("static", name)] = content
		}
		return nil
	})
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeInternal, "failed to read static assets", err)
	}
	return b, nil
}

// WriteDir writes every file of the bundle below dir.
func (b *Bundle) WriteDir(dir string) error {
	for _, name := range b.Names() {
		if !fs.ValidPath(name) || strings.Contains(name, "..") {
			return docserrors.NewWithContext(docserrors.ErrCodeInvalidRequest, "invalid bundle file name",
				map[string]any{"name": name})
		}
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return docserrors.Wrap(docserrors.ErrCodeInternal, "failed to create output directory", err)
		}
		if err := os.WriteFile(target, b.files[name], 0o644); err != nil { //nolint:gosec // published site content is world readable
			return docserrors.Wrap(docserrors.ErrCodeInternal, "failed to write "+name, err)
		}
	}
	return nil
}
