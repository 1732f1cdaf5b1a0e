package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureguide/api-docs/pkg/catalog"
	docserrors "github.com/futureguide/api-docs/pkg/errors"
	"github.com/futureguide/api-docs/pkg/header"
	"github.com/futureguide/api-docs/pkg/serializer"
	"github.com/futureguide/api-docs/pkg/theme"
)

func newTestSite(t *testing.T, opts ...Option) *Site {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	s, err := New(cat, append([]Option{WithVersion("v1.2.3")}, opts...)...)
	require.NoError(t, err)
	return s
}

func testMux(s *Site) *http.ServeMux {
	mux := http.NewServeMux()
	for pattern, h := range s.Handlers() {
		mux.HandleFunc(pattern, h)
	}
	mux.Handle("GET "+StaticPath, StaticHandler())
	return mux
}

func get(t *testing.T, h http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestNew_RequiresCatalog(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, docserrors.IsCode(err, docserrors.ErrCodeInvalidRequest))
}

func TestReload(t *testing.T) {
	small, err := catalog.New("Small", catalog.Entry{ID: "one", Service: &catalog.Standard{
		ID:   "one",
		Kind: catalog.KindStandard,
		Name: "One",
		Endpoints: []catalog.Endpoint{
			{Method: catalog.MethodGet, Path: "/one", Title: "Get One"},
		},
	}})
	require.NoError(t, err)

	var fail bool
	s := newTestSite(t, WithLoader(func() (*catalog.Catalog, error) {
		if fail {
			return nil, errors.New("broken yaml")
		}
		return small, nil
	}))
	before := s.Document()

	require.NoError(t, s.Reload())
	assert.Same(t, small, s.Catalog())
	assert.NotSame(t, before, s.Document())
	assert.Equal(t, "Small", s.Document().Title)
	assert.Len(t, s.Document().Cards(), 1)

	fail = true
	require.Error(t, s.Reload())
	assert.Same(t, small, s.Catalog(), "failed reload keeps the previous catalog")
}

func TestReload_NoLoader(t *testing.T) {
	s := newTestSite(t)
	err := s.Reload()
	require.Error(t, err)
	assert.True(t, docserrors.IsCode(err, docserrors.ErrCodeUnavailable))
}

func TestHandlePage(t *testing.T) {
	s := newTestSite(t, WithLiveReload("/livereload"))
	mux := testMux(s)

	tests := []struct {
		name     string
		target   string
		cookie   *http.Cookie
		contains []string
	}{
		{
			name:     "defaults",
			target:   "/",
			contains: []string{`data-theme="light"`, "98 / 98", `action="/theme"`, `data-livereload="/livereload"`},
		},
		{
			name:     "query filters cards",
			target:   "/?q=login",
			contains: []string{"3 / 98", `value="login"`},
		},
		{
			name:     "dark cookie",
			target:   "/",
			cookie:   &http.Cookie{Name: theme.Key, Value: "dark"},
			contains: []string{`data-theme="dark"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tt.cookie != nil {
				cookies = append(cookies, tt.cookie)
			}
			w := get(t, mux, tt.target, cookies...)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(w.Header().Get("Cache-Control"), "private"))
			for _, want := range tt.contains {
				assert.Contains(t, w.Body.String(), want)
			}
		})
	}

	// filtering a request never touches the shared document
	assert.Equal(t, 98, s.Document().VisibleCards())
}

func TestHandlePage_QueryTooLong(t *testing.T) {
	w := get(t, testMux(newTestSite(t)), "/?q="+strings.Repeat("a", MaxQueryLength+1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleTheme(t *testing.T) {
	mux := testMux(newTestSite(t))

	r := httptest.NewRequest(http.MethodPost, ThemePath, nil)
	r.Header.Set("Referer", "http://example.com/?q=login")
	r.AddCookie(&http.Cookie{Name: theme.Key, Value: "dark"})
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?q=login", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "light", cookies[0].Value)
}

func TestBackTo(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"empty", "", "/"},
		{"same host", "http://example.com/", "/"},
		{"other host", "http://evil.test/phish", "/"},
		{"relative", "/?q=x", "/?q=x"},
		{"double slash path", "http://example.com//evil.test", "/"},
		{"backslash path", "http://example.com/\\evil.test", "/"},
		{"same host path", "http://example.com/docs?q=auth", "/docs?q=auth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "http://example.com/theme", nil)
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, backTo(r))
		})
	}
}

func TestHandleServices(t *testing.T) {
	w := get(t, testMux(newTestSite(t)), "/v1/services")
	require.Equal(t, http.StatusOK, w.Code)

	var got ServiceList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, header.KindServiceList, got.Kind)
	assert.Equal(t, "v1.2.3", got.Metadata["version"])
	require.Len(t, got.Services, 9)
	assert.Equal(t, "global-endpoints", got.Services[0].ID)
	assert.Equal(t, catalog.KindSharing, got.Services[5].Kind)
}

func TestHandleService(t *testing.T) {
	mux := testMux(newTestSite(t))

	t.Run("found", func(t *testing.T) {
		w := get(t, mux, "/v1/services/auth-service")
		require.Equal(t, http.StatusOK, w.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Service", got["kind"])
		assert.Equal(t, "auth-service", got["id"])
		assert.Len(t, got["endpoints"], 12)
	})

	t.Run("unknown", func(t *testing.T) {
		w := get(t, mux, "/v1/services/nope")
		require.Equal(t, http.StatusNotFound, w.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, string(docserrors.ErrCodeNotFound), got["code"])
	})
}

func TestHandleSection(t *testing.T) {
	mux := testMux(newTestSite(t))

	w := get(t, mux, "/v1/services/auth-service/html")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="auth-service"`)

	w = get(t, mux, "/v1/services/nope/html")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleSearch(t *testing.T) {
	w := get(t, testMux(newTestSite(t)), "/v1/search?q=LOGIN")
	require.Equal(t, http.StatusOK, w.Code)

	var got SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, header.KindSearchResult, got.Kind)
	assert.Equal(t, 98, got.Total)
	assert.Equal(t, 3, got.Matched)
	assert.Len(t, got.Matches, 3)
}

func TestStaticHandler(t *testing.T) {
	w := get(t, testMux(newTestSite(t)), "/static/app.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
}

func TestTabular(t *testing.T) {
	s := newTestSite(t)

	var _ serializer.Tabular = (*ServiceList)(nil)
	var _ serializer.Tabular = (*ServiceDetail)(nil)
	var _ serializer.Tabular = (*SearchResult)(nil)

	list := NewServiceList(s.Catalog(), "")
	assert.Len(t, list.Rows(), 9)
	for _, row := range list.Rows() {
		assert.Len(t, row, len(list.Columns()))
	}

	res := NewSearchResult(s.Document(), "login", "")
	require.Len(t, res.Rows(), 3)
	assert.Len(t, res.Rows()[0], len(res.Columns()))

	detail, err := NewServiceDetail(s.Catalog(), "archive-service-sharing", "")
	require.NoError(t, err)
	assert.NotEmpty(t, detail.Rows())
	for _, row := range detail.Rows() {
		assert.Len(t, row, len(detail.Columns()))
	}
}

func TestExport(t *testing.T) {
	s := newTestSite(t)

	t.Run("nested", func(t *testing.T) {
		b, err := Export(s.Document(), ExportOptions{Version: "v1.2.3"})
		require.NoError(t, err)
		assert.Equal(t, []string{IndexFile, "static/app.css", "static/app.js"}, b.Names())
		assert.Equal(t, header.KindSite, b.GetKind())
		page := string(b.Files()[IndexFile])
		assert.Contains(t, page, `href="static/app.css"`)
		assert.Contains(t, page, `action=""`)

		dir := t.TempDir()
		require.NoError(t, b.WriteDir(dir))
		_, err = os.Stat(filepath.Join(dir, "static", "app.js"))
		require.NoError(t, err)
	})

	t.Run("flat", func(t *testing.T) {
		b, err := Export(s.Document(), ExportOptions{Flat: true, Theme: theme.Dark})
		require.NoError(t, err)
		assert.Equal(t, []string{"app.css", "app.js", IndexFile}, b.Names())
		page := string(b.Files()[IndexFile])
		assert.Contains(t, page, `href="./app.css"`)
		assert.Contains(t, page, `data-theme="dark"`)
	})
}
