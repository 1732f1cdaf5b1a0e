package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_PreservesKeyOrder(t *testing.T) {
	p, err := NewPayload("zeta: 1\nalpha: two\nmid:\n  b: true\n  a: null\n")
	require.NoError(t, err)

	got, err := p.Pretty()
	require.NoError(t, err)

	want := "{\n  \"zeta\": 1,\n  \"alpha\": \"two\",\n  \"mid\": {\n    \"b\": true,\n    \"a\": null\n  }\n}"
	assert.Equal(t, want, got)
}

func TestPayload_Scalars(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"float", "3.5", "3.5"},
		{"quoted number", "'3001'", `"3001"`},
		{"list", "[1, a, false]", "[1,\"a\",false]"},
		{"html is not escaped", "a: <b>&</b>", `{"a":"<b>&</b>"}`},
		{"timestamp stays text", "at: 2024-01-15", `{"at":"2024-01-15"}`},
		{"empty map", "{}", "{}"},
		{"unicode", "msg: Hasil analisis 🎯", `{"msg":"Hasil analisis 🎯"}`},
		{"infinity", "a: .inf", `{"a":".inf"}`},
		{"negative infinity", "a: -.Inf", `{"a":"-.Inf"}`},
		{"not a number", "a: .nan", `{"a":".nan"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPayload(tt.src)
			require.NoError(t, err)
			b, err := p.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestPayload_Zero(t *testing.T) {
	var p *Payload
	assert.True(t, p.IsZero())
	got, err := p.Pretty()
	require.NoError(t, err)
	assert.Equal(t, "null", got)
}

func TestPayload_EmbeddedInEndpoint(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)
	svc, _ := cat.Get("auth-service")
	ep := svc.(*Standard).Endpoints[0]

	body, err := ep.RequestBody.Pretty()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"username\": \"johndoe\",\n  \"email\": \"user@example.com\",\n  \"password\": \"MyPassword1\"\n}", body)

	// encoding/json honours the ordered marshaler for nested values
	b, err := json.Marshal(ep)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"requestBody":{"username":"johndoe","email":"user@example.com","password":"MyPassword1"}`)
}
