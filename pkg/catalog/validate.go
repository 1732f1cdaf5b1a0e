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
	"fmt"

	docserrors "github.com/futureguide/api-docs/pkg/errors"
	"github.com/futureguide/api-docs/pkg/version"
)

// Validate checks the catalog invariants: ids are non-empty and unique,
// every record kind is known, service versions parse and every documented
// endpoint has a supported method and a path.
func Validate(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "service id is required",
				map[string]any{"position": i})
		}
		if _, dup := seen[e.ID]; dup {
			return docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "duplicate service id",
				map[string]any{"id": e.ID})
		}
		seen[e.ID] = struct{}{}

		if err := validateService(e); err != nil {
			return err
		}
	}
	return nil
}

func validateService(e Entry) error {
	switch s := e.Service.(type) {
	case *Standard:
		if s.Kind != "" && s.Kind != KindStandard {
			return kindMismatch(e.ID, s.Kind, KindStandard)
		}
		if s.Version != "" {
			if _, err := version.Parse(s.Version); err != nil {
				return docserrors.WrapWithContext(docserrors.ErrCodeInvalidData, "invalid service version", err,
					map[string]any{"id": e.ID, "version": s.Version})
			}
		}
		for i, ep := range s.Endpoints {
			if err := validateEndpoint(e.ID, fmt.Sprintf("endpoints[%d]", i), ep.Method, ep.Path); err != nil {
				return err
			}
		}
	case *SharingDoc:
		if s.Kind != "" && s.Kind != KindSharing {
			return kindMismatch(e.ID, s.Kind, KindSharing)
		}
		for i, sec := range s.Sections {
			for j, sub := range sec.Subsections {
				if !sub.IsEndpoint() {
					continue
				}
				where := fmt.Sprintf("sections[%d].subsections[%d]", i, j)
				if err := validateEndpoint(e.ID, where, sub.Method, sub.Path); err != nil {
					return err
				}
			}
		}
	case nil:
		return docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "service record is missing",
			map[string]any{"id": e.ID})
	default:
		return docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "unsupported service record",
			map[string]any{"id": e.ID, "type": fmt.Sprintf("%T", s)})
	}
	return nil
}

func validateEndpoint(id, where string, m Method, path string) error {
	if !m.IsValid() {
		return docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "unsupported HTTP method",
			map[string]any{"id": id, "field": where, "method": string(m)})
	}
	if path == "" {
		return docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "endpoint path is required",
			map[string]any{"id": id, "field": where})
	}
	return nil
}

func kindMismatch(id string, got, want Kind) error {
	return docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "record kind does not match its shape",
		map[string]any{"id": id, "kind": string(got), "expected": string(want)})
}
