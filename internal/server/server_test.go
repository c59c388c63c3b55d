package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pagenav"
	"git.home.luguber.info/inful/docnav/internal/server/handlers"
	"git.home.luguber.info/inful/docnav/internal/site"
)

func testLoader(t *testing.T, body string) Loader {
	t.Helper()
	return func(context.Context) (*pagenav.Builder, error) {
		cfg, err := config.Parse([]byte("theme:\n  sidebar:\n    /guide/: [intro.md]\n  navbar: [/guide/intro.md]\n"))
		if err != nil {
			return nil, err
		}
		intro, err := docmodel.Parse("guide/intro.md", []byte(body), docmodel.Options{})
		if err != nil {
			return nil, err
		}
		home, err := docmodel.Parse("README.md", []byte("---\nhome: true\n---\n# Home\n"), docmodel.Options{})
		if err != nil {
			return nil, err
		}
		return pagenav.NewBuilder(cfg, site.New(home, intro)), nil
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNavEndpoint(t *testing.T) {
	s := New(testLoader(t, "# Intro\n## Setup\n"), Options{Logger: quietLogger()})
	require.NoError(t, s.Reload(context.Background()))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nav?route=/guide/intro.html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var nav pagenav.PageNav
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nav))
	assert.Equal(t, "/guide/intro.html", nav.Route)
	require.Len(t, nav.Sidebar, 1)
	require.Len(t, nav.Sidebar[0].Children, 1)
	assert.Equal(t, "/guide/intro.html#setup", nav.Sidebar[0].Children[0].Link)

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/nav?route=/guide/intro.html", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestNavEndpointErrors(t *testing.T) {
	s := New(testLoader(t, "# Intro\n"), Options{Logger: quietLogger()})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nav?route=/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, s.Reload(context.Background()))

	cases := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/api/nav", http.StatusBadRequest},
		{http.MethodGet, "/api/nav?route=/missing.html", http.StatusNotFound},
		{http.MethodPost, "/api/nav?route=/", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.status, rec.Code, tc.target)
		assert.Contains(t, rec.Body.String(), `"error"`)
	}
}

func TestRoutesAndHealth(t *testing.T) {
	s := New(testLoader(t, "# Intro\n"), Options{Logger: quietLogger()})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, s.Reload(context.Background()))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var health handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 2, health.Pages)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/routes?pretty=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var routes []handlers.RouteEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &routes))
	assert.Equal(t, []handlers.RouteEntry{
		{Route: "/", Title: "Home", Source: "README.md"},
		{Route: "/guide/intro.html", Title: "Intro", Source: "guide/intro.md"},
	}, routes)
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	fail := false
	good := testLoader(t, "# Intro\n")
	load := func(ctx context.Context) (*pagenav.Builder, error) {
		if fail {
			return nil, errors.New("broken content")
		}
		return good(ctx)
	}

	var logs bytes.Buffer
	reg := prom.NewRegistry()
	s := New(load, Options{
		Logger:   slog.New(slog.NewTextHandler(&logs, nil)),
		Recorder: metrics.NewPrometheusRecorder(reg),
		Registry: reg,
	})
	require.NoError(t, s.Reload(context.Background()))
	before := s.Current()

	fail = true
	require.Error(t, s.Reload(context.Background()))
	assert.Same(t, before, s.Current())
	assert.Contains(t, logs.String(), "Reload failed")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `docnav_reloads_total{result="failed"} 1`)
	assert.Contains(t, rec.Body.String(), "docnav_pages 2")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := New(testLoader(t, "# Intro\n"), Options{Logger: quietLogger()})
	require.NoError(t, s.Reload(context.Background()))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
