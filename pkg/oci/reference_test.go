package oci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docserrors "github.com/futureguide/api-docs/pkg/errors"
)

func TestParseOutputTarget(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantOCI    bool
		registry   string
		repository string
		tag        string
		local      string
		wantErr    bool
	}{
		{name: "local dir", target: "./site", local: "./site"},
		{name: "local with spaces", target: "  out ", local: "out"},
		{name: "tagged", target: "oci://ghcr.io/futureguide/api-docs:v1.2.0", wantOCI: true,
			registry: "ghcr.io", repository: "futureguide/api-docs", tag: "v1.2.0"},
		{name: "default tag", target: "oci://ghcr.io/futureguide/api-docs", wantOCI: true,
			registry: "ghcr.io", repository: "futureguide/api-docs", tag: DefaultTag},
		{name: "localhost port", target: "oci://localhost:5000/docs:dev", wantOCI: true,
			registry: "localhost:5000", repository: "docs", tag: "dev"},
		{name: "uppercase repository", target: "oci://ghcr.io/FutureGuide/Docs", wantErr: true},
		{name: "digest", target: "oci://ghcr.io/futureguide/api-docs@sha256:" +
			"0000000000000000000000000000000000000000000000000000000000000000", wantErr: true},
		{name: "empty", target: "oci://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseOutputTarget(tt.target)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, docserrors.IsCode(err, docserrors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOCI, ref.IsOCI)
			if !tt.wantOCI {
				assert.Equal(t, tt.local, ref.LocalPath)
				assert.Empty(t, ref.ImageReference())
				return
			}
			assert.Equal(t, tt.registry, ref.Registry)
			assert.Equal(t, tt.repository, ref.Repository)
			assert.Equal(t, tt.tag, ref.Tag)
		})
	}
}

func TestReferenceStrings(t *testing.T) {
	ref, err := ParseOutputTarget("oci://ghcr.io/futureguide/api-docs:v1")
	require.NoError(t, err)

	assert.Equal(t, "oci://ghcr.io/futureguide/api-docs:v1", ref.String())
	assert.Equal(t, "ghcr.io/futureguide/api-docs:v1", ref.ImageReference())

	next := ref.WithTag("v2")
	assert.Equal(t, "ghcr.io/futureguide/api-docs:v2", next.ImageReference())
	assert.Equal(t, "v1", ref.Tag, "WithTag must not modify the receiver")

	untagged := ref.WithTag("")
	assert.Equal(t, "ghcr.io/futureguide/api-docs", untagged.ImageReference())

	local := &Reference{LocalPath: "out"}
	assert.Equal(t, "out", local.String())
	assert.Same(t, local, local.WithTag("v1"))
}

func TestValidateRegistryReference(t *testing.T) {
	assert.NoError(t, ValidateRegistryReference("ghcr.io", "futureguide/api-docs"))
	assert.Error(t, ValidateRegistryReference("", "docs"))
	assert.Error(t, ValidateRegistryReference("ghcr.io", ""))
	assert.Error(t, ValidateRegistryReference("ghcr.io", "Bad Name"))
}

func TestIsOCITarget(t *testing.T) {
	assert.True(t, IsOCITarget("oci://ghcr.io/x"))
	assert.True(t, IsOCITarget("  oci://ghcr.io/x"))
	assert.False(t, IsOCITarget("cm://docs/site"))
	assert.False(t, IsOCITarget("./out"))
}
