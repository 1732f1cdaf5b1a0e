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

// Package header provides the common header carried by catalog files and
// API responses: Kind, APIVersion and a flat metadata map.
//
//	kind: Catalog
//	apiVersion: docs.futureguide.id/v1
//	metadata:
//	  name: futureguide-api
//	  title: FutureGuide API Documentation
//
// Consumers check Kind and APIVersion before using the payload:
//
//	if !h.Kind.IsValid() || h.APIVersion != header.APIVersionV1 {
//	    return fmt.Errorf("unsupported document %s/%s", h.APIVersion, h.Kind)
//	}
package header
