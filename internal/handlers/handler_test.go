package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/employee-directory/internal/adapters/httpapi"
	"github.com/csg33k/employee-directory/internal/adapters/mockdata"
	"github.com/csg33k/employee-directory/internal/adapters/pdf"
	"github.com/csg33k/employee-directory/internal/adapters/sqlite"
	"github.com/csg33k/employee-directory/internal/adapters/xlsx"
	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/employees"
	"github.com/csg33k/employee-directory/internal/handlers"
	"github.com/csg33k/employee-directory/internal/logging"
	"github.com/csg33k/employee-directory/internal/ports"
	"github.com/csg33k/employee-directory/internal/query"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	srv   http.Handler
	cache *query.Client
	clock *clock
	store *sqlite.Store
}

func newFixture(t *testing.T, api ports.APIClient, exporters ...ports.DirectoryExporter) *fixture {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clk := &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := query.New(query.Options{Now: clk.Now})
	t.Cleanup(func() { cache.Close() })

	page := employees.NewPage(employees.NewSource(api, zerolog.Nop()), cache)
	h := handlers.New(handlers.Config{AppName: "Employee Directory", Env: "development"}, page, store, zerolog.Nop(), exporters...)
	return &fixture{srv: h.Routes(), cache: cache, clock: clk, store: store}
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func rows(body string) int { return strings.Count(body, "<tr data-employee-id") }

func TestHome(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.get(t, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Welcome to Employee Directory")
	assert.NotEmpty(t, rec.Header().Get(logging.RequestIDHeader))
}

func TestDirectory_ColdCacheShowsLoader(t *testing.T) {
	f := newFixture(t, nil)
	body := f.get(t, "/employees").Body.String()
	assert.Contains(t, body, `hx-get="/employees/content"`)
	assert.Contains(t, body, "Loading employees")
	assert.Zero(t, rows(body))
}

func TestDirectory_ContentLoadsFallback(t *testing.T) {
	f := newFixture(t, nil)
	want := len(mockdata.Employees())

	rec := f.get(t, "/employees/content")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, want, rows(body))
	assert.Contains(t, body, "Sample data")

	t.Run("warm cache renders records directly", func(t *testing.T) {
		body := f.get(t, "/employees").Body.String()
		assert.Equal(t, want, rows(body))
		assert.NotContains(t, body, `hx-trigger="load"`)
	})

	t.Run("stale cache keeps records and pulls a refetch", func(t *testing.T) {
		f.clock.Advance(query.DefaultStaleTime + time.Second)
		body := f.get(t, "/employees").Body.String()
		assert.Equal(t, want, rows(body))
		assert.Contains(t, body, `hx-trigger="load"`)
		assert.Contains(t, body, "Refreshing...")
	})
}

func TestDirectory_ErrorStateOffersRetry(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.cache.Close())

	body := f.get(t, "/employees/content?refresh=1").Body.String()
	assert.Contains(t, body, "Unable to load employees")
	assert.Contains(t, body, query.ErrClosed.Error())

	rec := f.get(t, "/employees.json")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnauthorizedRedirectsToLogin(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"token expired"}`)
	}))
	t.Cleanup(api.Close)

	client := httpapi.New(httpapi.Options{BaseURL: api.URL, OnUnauthorized: handlers.RequireLogin})
	f := newFixture(t, client)

	req := httptest.NewRequest(http.MethodGet, "/employees/content?refresh=1", nil)
	req.Header.Set("HX-Request", "true")
	rec := f.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
	assert.Zero(t, rows(rec.Body.String()))

	rec = f.get(t, "/employees/content?refresh=1")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	t.Run("login route is not implemented", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, f.get(t, "/login").Code)
	})

	t.Run("outside a request the hook is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() { handlers.RequireLogin(context.Background()) })
	})
}

func TestNotFound(t *testing.T) {
	f := newFixture(t, nil)
	for _, path := range []string{"/nope", "/employees/42", "/employees/export.csv"} {
		rec := f.get(t, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Page Not Found", path)
	}
}

func postForm(target, referer string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	return req
}

func TestLanguage(t *testing.T) {
	f := newFixture(t, nil)

	t.Run("Accept-Language is honoured", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "sv-SE,sv;q=0.9,en;q=0.5")
		assert.Contains(t, f.do(t, req).Body.String(), `<html lang="sv"`)
	})

	t.Run("unsupported language is rejected", func(t *testing.T) {
		rec := f.do(t, postForm("/language", "", url.Values{"lang": {"fr"}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("switch is stored and wins over the header", func(t *testing.T) {
		rec := f.do(t, postForm("/language", "http://localhost:8080/employees?x=1", url.Values{"lang": {"sv"}}))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/employees?x=1", rec.Header().Get("Location"))

		stored, err := f.store.Get(context.Background(), sqlite.KeyLanguage)
		require.NoError(t, err)
		assert.Equal(t, "sv", stored)

		req := httptest.NewRequest(http.MethodGet, "/employees/content", nil)
		req.Header.Set("Accept-Language", "en-US")
		assert.Contains(t, f.do(t, req).Body.String(), "Exempeldata")
	})

	t.Run("automatic forgets the stored choice", func(t *testing.T) {
		rec := f.do(t, postForm("/language", "", url.Values{"lang": {""}}))
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		stored, err := f.store.Get(context.Background(), sqlite.KeyLanguage)
		require.NoError(t, err)
		assert.Empty(t, stored)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "en-US")
		assert.Contains(t, f.do(t, req).Body.String(), `<html lang="en"`)
	})

	t.Run("foreign referer goes home", func(t *testing.T) {
		rec := f.do(t, postForm("/language", "http://evil.example//phish", url.Values{"lang": {"en"}}))
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}

func TestTheme(t *testing.T) {
	f := newFixture(t, nil)
	assert.Contains(t, f.get(t, "/").Body.String(), `data-theme="light"`)

	assert.Equal(t, http.StatusBadRequest, f.do(t, postForm("/theme", "", url.Values{"theme": {"neon"}})).Code)

	rec := f.do(t, postForm("/theme", "", url.Values{"theme": {"dark"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, f.get(t, "/").Body.String(), `data-theme="dark"`)
}

func TestEmployeesJSON(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.get(t, "/employees.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got struct {
		Origin    domain.Origin     `json:"origin"`
		Count     int               `json:"count"`
		Employees []domain.Employee `json:"employees"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.OriginFallback, got.Origin)
	assert.Equal(t, len(mockdata.Employees()), got.Count)
	assert.Equal(t, mockdata.Employees(), got.Employees)
}

func TestExport(t *testing.T) {
	f := newFixture(t, nil, pdf.New("", "en-US"), xlsx.New())

	tests := []struct {
		path        string
		contentType string
		magic       string
	}{
		{"/employees/export.pdf", "application/pdf", "%PDF"},
		{"/employees/export.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := f.get(t, tc.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=\"employees_")
			assert.True(t, strings.HasPrefix(rec.Body.String(), tc.magic))
		})
	}
}

type panickingExporter struct{}

func (panickingExporter) Export(context.Context, domain.EmployeeList, io.Writer) error {
	panic("exporter exploded")
}
func (panickingExporter) ContentType() string { return "text/plain" }
func (panickingExporter) Extension() string   { return "txt" }

func TestErrorBoundary(t *testing.T) {
	f := newFixture(t, nil, panickingExporter{})
	rec := f.get(t, "/employees/export.txt")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Something went wrong")
	assert.Contains(t, body, "exporter exploded")
	assert.Contains(t, body, `href="/employees/export.txt"`)
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	require.NoError(t, f.store.Close())
	assert.Equal(t, http.StatusServiceUnavailable, f.get(t, "/healthz").Code)
}
