package handlers

import (
	"net/http"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pagenav"
	"git.home.luguber.info/inful/docnav/internal/version"
)

// Source hands out the current navigation builder. It returns nil until the
// first successful load.
type Source interface {
	Current() *pagenav.Builder
}

// NavHandlers serves page navigation and site listings.
type NavHandlers struct {
	source   Source
	adapter  *errors.HTTPErrorAdapter
	recorder metrics.Recorder
	started  time.Time
}

// NewNavHandlers creates the navigation handlers.
func NewNavHandlers(source Source, adapter *errors.HTTPErrorAdapter, recorder metrics.Recorder) *NavHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &NavHandlers{source: source, adapter: adapter, recorder: recorder, started: time.Now()}
}

func (h *NavHandlers) current(w http.ResponseWriter, r *http.Request) (*pagenav.Builder, bool) {
	b := h.source.Current()
	if b == nil {
		h.adapter.WriteErrorResponse(w, r, errors.RuntimeError("site not loaded yet").Build())
		return nil, false
	}
	return b, true
}

// HandleNav serves GET /api/nav?route=/guide/ with an ETag tied to the page,
// the site snapshot and the config.
func (h *NavHandlers) HandleNav(w http.ResponseWriter, r *http.Request) {
	if !requireGET(h.adapter, w, r) {
		return
	}
	route := r.URL.Query().Get("route")
	if route == "" {
		h.recorder.IncNavRequest(metrics.ResultFailed)
		h.adapter.WriteErrorResponse(w, r, errors.ValidationError("missing route query parameter").Build())
		return
	}
	b, ok := h.current(w, r)
	if !ok {
		h.recorder.IncNavRequest(metrics.ResultFailed)
		return
	}

	nav, err := b.Build(route)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryNotFound) {
			h.recorder.IncNavRequest(metrics.ResultNotFound)
		} else {
			h.recorder.IncNavRequest(metrics.ResultFailed)
		}
		h.adapter.WriteErrorResponse(w, r, err)
		return
	}
	h.recorder.IncNavRequest(metrics.ResultSuccess)

	etag := `"` + nav.Revision + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if err := writeJSON(w, r, http.StatusOK, nav); err != nil {
		h.adapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write nav response").Build())
	}
}

func matchesETag(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		c := strings.TrimSpace(candidate)
		if c == "*" || strings.TrimPrefix(c, "W/") == etag {
			return true
		}
	}
	return false
}

// RouteEntry is one page in the /api/routes listing.
type RouteEntry struct {
	Route  string `json:"route"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// HandleRoutes serves GET /api/routes.
func (h *NavHandlers) HandleRoutes(w http.ResponseWriter, r *http.Request) {
	if !requireGET(h.adapter, w, r) {
		return
	}
	b, ok := h.current(w, r)
	if !ok {
		return
	}
	pages := b.Site().Pages()
	out := make([]RouteEntry, 0, len(pages))
	for _, p := range pages {
		out = append(out, RouteEntry{Route: p.Route, Title: p.Title, Source: p.SourcePath})
	}
	if err := writeJSON(w, r, http.StatusOK, out); err != nil {
		h.adapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write routes response").Build())
	}
}

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime_seconds"`
	Pages     int       `json:"pages"`
	SiteHash  string    `json:"site_hash,omitempty"`
}

// HandleHealth serves GET /healthz. It reports "loading" with 503 until the
// first snapshot is available.
func (h *NavHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireGET(h.adapter, w, r) {
		return
	}
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.started).Seconds(),
	}
	status := http.StatusOK
	if b := h.source.Current(); b != nil {
		resp.Pages = b.Site().Len()
		resp.SiteHash = b.Site().Hash()
	} else {
		resp.Status = "loading"
		status = http.StatusServiceUnavailable
	}
	if err := writeJSON(w, r, status, resp); err != nil {
		h.adapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write health response").Build())
	}
}
