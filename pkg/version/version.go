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

// Package version parses the service versions recorded in the catalog.
//
// Versions have one to three numeric components, an optional "v" prefix
// and optional pre-release or build extras:
//
//	1, v2, 1.0, 2.0.0, 1.4.0-beta.1, 3.1.0+build.7
//
// Comparison ignores extras and treats missing components as zero.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmpty        = errors.New("version string is empty")
	ErrTooManyParts = errors.New("version has more than 3 components")
	ErrNonNumeric   = errors.New("version component is not numeric")
	ErrNegativePart = errors.New("version component cannot be negative")
)

// Version is a parsed service version.
type Version struct {
	Major int
	Minor int
	Patch int
	// Precision is the number of components present (1, 2 or 3).
	Precision int
	// Extras holds the pre-release or build suffix including its separator.
	Extras string
}

// Parse parses s.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmpty
	}

	s = strings.TrimPrefix(s, "v")
	var v Version

	main := s
	if i := strings.IndexAny(s, "-+"); i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		main, v.Extras = s[:i], s[i:]
	}

	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyParts
	}

	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if n < 0 {
			return Version{}, fmt.Errorf("%w: %d", ErrNegativePart, n)
		}
		switch i {
		case 0:
			v.Major = n
		case 1:
			v.Minor = n
		case 2:
			v.Patch = n
		}
	}

	v.Precision = len(parts)
	return v, nil
}

// MustParse is Parse for constants. It panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("version.MustParse(%q): %v", s, err))
	}
	return v
}

// String formats the significant components and the extras.
func (v Version) String() string {
	var b strings.Builder
	switch v.Precision {
	case 1:
		fmt.Fprintf(&b, "%d", v.Major)
	case 2:
		fmt.Fprintf(&b, "%d.%d", v.Major, v.Minor)
	default:
		fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	b.WriteString(v.Extras)
	return b.String()
}

// Compare returns -1, 0 or 1 as v is older than, equal to or newer than
// other.
func (v Version) Compare(other Version) int {
	for _, d := range [...]int{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch} {
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
	}
	return 0
}

// IsNewer reports whether v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.Compare(other) > 0
}
