package render

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/futureguide/api-docs/pkg/catalog"
	"github.com/futureguide/api-docs/pkg/theme"
)

func writeDefault(t *testing.T, opts PageOptions) (string, *Document) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	doc := NewDocument(cat)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, doc, opts))
	return buf.String(), doc
}

func TestWriteHTML_Page(t *testing.T) {
	out, doc := writeDefault(t, PageOptions{Theme: theme.Dark, ThemeAction: "/theme"})

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `data-theme="dark"`)
	assert.Contains(t, out, `href="/static/app.css"`)
	assert.Contains(t, out, `<script src="/static/app.js"></script>`)
	assert.Contains(t, out, `action="/theme"`)
	assert.Contains(t, out, `title="Switch to light mode"`)
	assert.Contains(t, out, "<title>FutureGuide API Documentation</title>")
	assert.NotContains(t, out, "data-livereload")

	// navigation links appear in catalog order
	last := -1
	for _, n := range doc.Nav {
		idx := strings.Index(out, `class="nav-link" href="#`+n.Anchor+`"`)
		require.NotEqual(t, -1, idx, n.Anchor)
		assert.Greater(t, idx, last, n.Anchor)
		last = idx
	}
	assert.Equal(t, 9, strings.Count(out, `class="nav-link"`))

	assert.Equal(t, 98, strings.Count(out, `<div class="endpoint" id=`))
	assert.Equal(t, 3, strings.Count(out, `<button class="tab-button`))
	assert.Contains(t, out, "<strong>Endpoints:</strong> 12")
	assert.Contains(t, out, `<span class="method method-patch">PATCH</span>`)
	assert.Contains(t, out, "98 / 98")
	assert.NotContains(t, out, " hidden>")
}

func TestWriteHTML_Options(t *testing.T) {
	out, _ := writeDefault(t, PageOptions{
		StaticPrefix: "static/",
		Query:        "login",
		LiveReload:   "/livereload",
	})
	assert.Contains(t, out, `data-theme="light"`)
	assert.Contains(t, out, `href="static/app.css"`)
	assert.Contains(t, out, `value="login"`)
	assert.Contains(t, out, `data-livereload="/livereload"`)
	assert.Contains(t, out, `title="Switch to dark mode"`)
}

func TestWriteHTML_HiddenCards(t *testing.T) {
	doc := Build("T", []catalog.Entry{{ID: "svc", Service: &catalog.Standard{
		Name: "Svc",
		Endpoints: []catalog.Endpoint{
			{Method: catalog.MethodGet, Path: "/shown", Title: "Shown"},
			{Method: catalog.MethodGet, Path: "/gone", Title: "Gone"},
		},
	}}})
	doc.Cards()[1].Visible = false

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, doc, PageOptions{}))
	out := buf.String()

	assert.Contains(t, out, `<div class="endpoint" id="svc-endpoint-1" data-service="svc">`)
	assert.Contains(t, out, `<div class="endpoint" id="svc-endpoint-2" data-service="svc" hidden>`)
	assert.Contains(t, out, "1 / 2")
}

func TestWriteSection_AuthBadgeOnce(t *testing.T) {
	v, err := Render(catalog.Entry{ID: "svc", Service: &catalog.Standard{
		Name: "Svc",
		Endpoints: []catalog.Endpoint{
			{Method: catalog.MethodGet, Path: "/open", Title: "Open"},
			{Method: catalog.MethodGet, Path: "/closed", Title: "Closed", Authentication: ptr.To("Bearer Token Required")},
		},
	}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSection(&buf, v))
	out := buf.String()

	parts := strings.SplitN(out, `id="svc-endpoint-2"`, 2)
	require.Len(t, parts, 2)
	assert.NotContains(t, parts[0], "auth-badge")
	assert.Equal(t, 1, strings.Count(parts[1], `class="auth-badge"`))
	assert.Contains(t, parts[1], "🔐 Authentication Required")
	assert.Contains(t, parts[1], "<p>Bearer Token Required</p>")
}

func TestWriteSection_Escapes(t *testing.T) {
	body, err := catalog.NewPayload(`html: "<b>bold</b>"`)
	require.NoError(t, err)
	v, err := Render(catalog.Entry{ID: "x", Service: &catalog.Standard{
		Name:        "<script>alert(1)</script>",
		Description: "a & b",
		Endpoints:   []catalog.Endpoint{{Method: catalog.MethodPost, Path: "/x", RequestBody: body}},
	}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSection(&buf, v))
	out := buf.String()

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "a &amp; b")
	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;")
}

func TestWriteSection_Sharing(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	svc, ok := cat.Get("archive-service-sharing")
	require.True(t, ok)

	v, err := Render(catalog.Entry{ID: "archive-service-sharing", Service: svc})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSection(&buf, v))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, `<div class="endpoint" id=`))
	assert.Contains(t, out, "🎯 Public Result Sharing")
	assert.Contains(t, out, "<h4>Usage Examples</h4>")
	assert.Contains(t, out, `<span class="method method-patch">PATCH</span>`)
}

type unknownView struct{ StandardView }

func (u *unknownView) clone() View { return u }

func TestWriteHTML_SkipsFailingView(t *testing.T) {
	doc := Build("T", []catalog.Entry{{ID: "good", Service: &catalog.Standard{Name: "Good"}}})
	doc.Views = append([]View{&unknownView{StandardView{ID: "odd"}}}, doc.Views...)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, doc, PageOptions{}))
	out := buf.String()

	assert.Contains(t, out, `id="good"`)
	assert.NotContains(t, out, `id="odd"`)
}

func TestStatic(t *testing.T) {
	css, err := fs.ReadFile(Static(), "app.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), `[data-theme="dark"]`)

	js, err := fs.ReadFile(Static(), "app.js")
	require.NoError(t, err)
	assert.Contains(t, string(js), "COPY_RESET_MS = 2000")
	assert.Contains(t, string(js), "localStorage")
}
