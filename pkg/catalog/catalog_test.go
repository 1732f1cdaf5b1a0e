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
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docserrors "github.com/futureguide/api-docs/pkg/errors"
)

var expectedOrder = []string{
	"global-endpoints",
	"auth-service",
	"auth-v2-service",
	"assessment-service",
	"archive-service",
	"archive-service-sharing",
	"chatbot-service",
	"admin-service",
	"notification-service",
}

func TestDefault_Order(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Equal(t, expectedOrder, cat.IDs())
	assert.Equal(t, len(expectedOrder), cat.Len())
	assert.Equal(t, "FutureGuide API Documentation", cat.Title())

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, cat, again, "default catalog should be loaded once")
}

func TestDefault_EndpointCounts(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	want := map[string]int{
		"global-endpoints":        5,
		"auth-service":            12,
		"auth-v2-service":         9,
		"assessment-service":      10,
		"archive-service":         16,
		"archive-service-sharing": 2,
		"chatbot-service":         15,
		"admin-service":           24,
		"notification-service":    5,
	}

	total := 0
	for _, e := range cat.All() {
		assert.Equal(t, want[e.ID], e.Endpoints(), "endpoints for %s", e.ID)
		total += e.Endpoints()
	}
	assert.Equal(t, 98, total)
}

func TestDefault_Variants(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	for _, e := range cat.All() {
		switch s := e.Service.(type) {
		case *Standard:
			assert.Equal(t, KindStandard, s.ServiceKind())
			assert.NotEmpty(t, s.Name, e.ID)
		case *SharingDoc:
			assert.Equal(t, "archive-service-sharing", e.ID)
			assert.NotEmpty(t, s.Sections)
		default:
			t.Fatalf("unexpected record type %T", s)
		}
	}

	svc, ok := cat.Get("notification-service")
	require.True(t, ok)
	std, ok := svc.(*Standard)
	require.True(t, ok)
	require.NotNil(t, std.WebSocket)
	require.NotNil(t, std.Implementation)
	require.NotNil(t, std.Troubleshooting)
	assert.NotEmpty(t, std.WebSocket.Events)
	assert.NotEmpty(t, std.Implementation.CompleteReactExample)
}

func TestDefault_FirstAuthEndpoint(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	svc, ok := cat.Get("auth-service")
	require.True(t, ok)
	std := svc.(*Standard)

	ep := std.Endpoints[0]
	assert.Equal(t, MethodPost, ep.Method)
	assert.Equal(t, "/api/auth/register", ep.Path)
	assert.Nil(t, ep.Authentication)
	require.NotNil(t, ep.RateLimit)
	assert.Equal(t, "Auth Limiter (100/15min)", *ep.RateLimit)
	require.Len(t, ep.Parameters, 3)
	assert.True(t, ep.Parameters[0].Required)
	require.Len(t, ep.ErrorResponses, 3)
	assert.Equal(t, 400, ep.ErrorResponses[0].Status)
	assert.Equal(t, "VALIDATION_ERROR", ep.ErrorResponses[0].Code)
	require.NotNil(t, ep.Example)
	assert.Contains(t, *ep.Example, "curl -X POST")
}

func TestGet_Unknown(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	_, ok := cat.Get("billing-service")
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	all := cat.All()
	all[0] = Entry{ID: "mutated"}
	assert.Equal(t, "global-endpoints", cat.All()[0].ID)
}

const testManifest = `kind: Catalog
apiVersion: docs.futureguide.id/v1
metadata:
  title: Test Docs
spec:
  services:
    - beta
    - alpha
`

const alphaService = `id: alpha
kind: standard
name: Alpha
endpoints:
  - method: GET
    path: /alpha
    title: Get Alpha
`

const betaService = `id: beta
kind: sharing
title: Beta Sharing
sections:
  - title: Endpoints
    subsections:
      - title: Read
        method: GET
        path: /beta
      - title: Notes
        content:
          - first
`

func TestLoad_MapFS(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog.yaml":        {Data: []byte(testManifest)},
		"services/alpha.yaml": {Data: []byte(alphaService)},
		"services/beta.yaml":  {Data: []byte(betaService)},
	}

	cat, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "alpha"}, cat.IDs())
	assert.Equal(t, "Test Docs", cat.Title())

	all := cat.All()
	assert.Equal(t, 1, all[0].Endpoints())
	assert.Equal(t, 1, all[1].Endpoints())
	assert.Equal(t, "Beta Sharing", all[0].DisplayName())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
		code  docserrors.ErrorCode
	}{
		{
			name:  "missing manifest",
			files: fstest.MapFS{},
			code:  docserrors.ErrCodeNotFound,
		},
		{
			name: "wrong manifest kind",
			files: fstest.MapFS{
				"catalog.yaml": {Data: []byte("kind: Recipe\napiVersion: docs.futureguide.id/v1\n")},
			},
			code: docserrors.ErrCodeInvalidData,
		},
		{
			name: "missing service file",
			files: fstest.MapFS{
				"catalog.yaml":        {Data: []byte(testManifest)},
				"services/alpha.yaml": {Data: []byte(alphaService)},
			},
			code: docserrors.ErrCodeNotFound,
		},
		{
			name: "unknown kind",
			files: fstest.MapFS{
				"catalog.yaml":        {Data: []byte(testManifest)},
				"services/alpha.yaml": {Data: []byte(alphaService)},
				"services/beta.yaml":  {Data: []byte("id: beta\nkind: wiki\n")},
			},
			code: docserrors.ErrCodeInvalidData,
		},
		{
			name: "id mismatch",
			files: fstest.MapFS{
				"catalog.yaml":        {Data: []byte(testManifest)},
				"services/alpha.yaml": {Data: []byte(alphaService)},
				"services/beta.yaml":  {Data: []byte("id: gamma\nkind: sharing\n")},
			},
			code: docserrors.ErrCodeInvalidData,
		},
		{
			name: "unknown field",
			files: fstest.MapFS{
				"catalog.yaml":        {Data: []byte(testManifest)},
				"services/alpha.yaml": {Data: []byte(alphaService + "colour: red\n")},
				"services/beta.yaml":  {Data: []byte(betaService)},
			},
			code: docserrors.ErrCodeInvalidData,
		},
		{
			name: "bad method",
			files: fstest.MapFS{
				"catalog.yaml":        {Data: []byte(testManifest)},
				"services/alpha.yaml": {Data: []byte("id: alpha\nkind: standard\nendpoints:\n  - method: TRACE\n    path: /x\n")},
				"services/beta.yaml":  {Data: []byte(betaService)},
			},
			code: docserrors.ErrCodeInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.files)
			require.Error(t, err)
			assert.True(t, docserrors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLoadDir_NotADirectory(t *testing.T) {
	_, err := LoadDir("catalog.go")
	require.Error(t, err)
	assert.True(t, docserrors.IsCode(err, docserrors.ErrCodeInvalidRequest))

	_, err = LoadDir("does-not-exist")
	require.Error(t, err)
	assert.True(t, docserrors.IsCode(err, docserrors.ErrCodeNotFound))
}

func TestLoadDir_EmbeddedLayout(t *testing.T) {
	cat, err := LoadDir("data")
	require.NoError(t, err)
	assert.Equal(t, expectedOrder, cat.IDs())
}
