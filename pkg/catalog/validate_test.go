package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	ok := &Standard{ID: "a", Endpoints: []Endpoint{{Method: MethodGet, Path: "/a"}}}

	tests := []struct {
		name    string
		entries []Entry
		wantErr bool
	}{
		{"empty catalog", nil, false},
		{"valid", []Entry{{ID: "a", Service: ok}}, false},
		{"missing id", []Entry{{Service: ok}}, true},
		{"duplicate id", []Entry{{ID: "a", Service: ok}, {ID: "a", Service: ok}}, true},
		{"nil record", []Entry{{ID: "a"}}, true},
		{"empty path", []Entry{{ID: "a", Service: &Standard{Endpoints: []Endpoint{{Method: MethodGet}}}}}, true},
		{"lowercase method", []Entry{{ID: "a", Service: &Standard{Endpoints: []Endpoint{{Method: "get", Path: "/a"}}}}}, true},
		{"kind mismatch", []Entry{{ID: "a", Service: &Standard{Kind: KindSharing}}}, true},
		{"semver version", []Entry{{ID: "a", Service: &Standard{Version: "v2.0.0"}}}, false},
		{"bad version", []Entry{{ID: "a", Service: &Standard{Version: "latest"}}}, true},
		{
			name: "sharing subsection without path",
			entries: []Entry{{ID: "s", Service: &SharingDoc{Sections: []Section{{
				Subsections: []Subsection{{Title: "x", Method: MethodPatch}},
			}}}}},
			wantErr: true,
		},
		{
			name: "sharing content subsection",
			entries: []Entry{{ID: "s", Service: &SharingDoc{Sections: []Section{{
				Subsections: []Subsection{{Title: "x", Content: []string{"y"}}},
			}}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cat, err := New("Mini",
		Entry{ID: "one", Service: &Standard{ID: "one", Name: "One"}},
		Entry{ID: "two", Service: &SharingDoc{ID: "two"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "Mini", cat.Title())
	assert.Equal(t, []string{"one", "two"}, cat.IDs())

	_, err = New("Dup", Entry{ID: "x", Service: &Standard{}}, Entry{ID: "x", Service: &Standard{}})
	assert.Error(t, err)
}

func TestMethod(t *testing.T) {
	for _, m := range []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete} {
		assert.True(t, m.IsValid(), m)
	}
	assert.False(t, Method("OPTIONS").IsValid())
	assert.Equal(t, "method-delete", MethodDelete.Class())
}
