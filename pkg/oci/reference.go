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

package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	docserrors "github.com/futureguide/api-docs/pkg/errors"
)

// URIScheme marks an output target as an OCI registry reference.
const URIScheme = "oci://"

// DefaultTag is used when an oci:// target names no tag.
const DefaultTag = "latest"

// Reference is a parsed output target. Targets without the oci:// scheme
// are local paths.
type Reference struct {
	IsOCI      bool
	Registry   string
	Repository string
	Tag        string
	LocalPath  string
}

// IsOCITarget reports whether target uses the oci:// scheme.
func IsOCITarget(target string) bool {
	return strings.HasPrefix(strings.TrimSpace(target), URIScheme)
}

// ParseOutputTarget parses a local path or an oci://registry/repo[:tag]
// reference. Digest references are rejected because pushes need a tag.
func ParseOutputTarget(target string) (*Reference, error) {
	target = strings.TrimSpace(target)
	if !IsOCITarget(target) {
		return &Reference{LocalPath: target}, nil
	}

	raw := strings.TrimPrefix(target, URIScheme)
	ref, err := reference.ParseNormalizedNamed(raw)
	if err != nil {
		return nil, docserrors.WrapWithContext(docserrors.ErrCodeInvalidRequest, "invalid OCI reference", err,
			map[string]any{"target": target})
	}
	if _, ok := ref.(reference.Digested); ok {
		return nil, docserrors.NewWithContext(docserrors.ErrCodeInvalidRequest,
			"OCI reference must use a tag, not a digest", map[string]any{"target": target})
	}

	r := &Reference{
		IsOCI:      true,
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        DefaultTag,
	}
	if tagged, ok := ref.(reference.Tagged); ok {
		r.Tag = tagged.Tag()
	}

	if err := ValidateRegistryReference(r.Registry, r.Repository); err != nil {
		return nil, err
	}
	return r, nil
}

// ValidateRegistryReference checks that registry and repository form a
// pushable reference.
func ValidateRegistryReference(registry, repository string) error {
	if registry == "" {
		return docserrors.New(docserrors.ErrCodeInvalidRequest, "registry is required")
	}
	if repository == "" {
		return docserrors.New(docserrors.ErrCodeInvalidRequest, "repository is required")
	}
	if _, err := reference.ParseNormalizedNamed(registry + "/" + repository); err != nil {
		return docserrors.Wrap(docserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid repository %s/%s", registry, repository), err)
	}
	return nil
}

// String returns the target in the form it was given.
func (r *Reference) String() string {
	if !r.IsOCI {
		return r.LocalPath
	}
	return URIScheme + r.ImageReference()
}

// ImageReference returns registry/repository:tag without the scheme.
func (r *Reference) ImageReference() string {
	if !r.IsOCI {
		return ""
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of r with tag replaced.
func (r *Reference) WithTag(tag string) *Reference {
	if !r.IsOCI {
		return r
	}
	cp := *r
	cp.Tag = tag
	return &cp
}
