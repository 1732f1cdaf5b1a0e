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

package server

import (
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is the default API version if none is negotiated
	DefaultAPIVersion = "v1"

	// VendorMediaTypePrefix selects an API version through the Accept header,
	// e.g. application/vnd.futureguide.docs.v1+json.
	VendorMediaTypePrefix = "application/vnd.futureguide.docs."

	// HeaderAPIVersion carries the negotiated version on every response.
	HeaderAPIVersion = "X-API-Version"
)

var validAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion picks the version named by a vendor media type in
// the Accept header, falling back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return DefaultAPIVersion
	}

	for _, mediaType := range strings.Split(accept, ",") {
		mediaType = strings.TrimSpace(mediaType)
		if i := strings.IndexByte(mediaType, ';'); i >= 0 {
			mediaType = mediaType[:i]
		}
		rest, ok := strings.CutPrefix(mediaType, VendorMediaTypePrefix)
		if !ok {
			continue
		}
		version, _, _ := strings.Cut(rest, "+")
		if isValidAPIVersion(version) {
			return version
		}
	}

	return DefaultAPIVersion
}

func isValidAPIVersion(version string) bool {
	return validAPIVersions[version]
}

// SetAPIVersionHeader sets the negotiated version on the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set(HeaderAPIVersion, version)
}
