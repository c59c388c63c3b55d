package metrics

import "time"

// Kind names what was resolved.
type Kind string

const (
	KindSidebar Kind = "sidebar"
	KindNavbar  Kind = "navbar"
	KindPage    Kind = "page"
)

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultNotFound ResultLabel = "not_found"
	ResultFailed   ResultLabel = "failed"
)

// Recorder defines observability hooks for resolution, serving and reloads.
type Recorder interface {
	ObserveResolveDuration(kind Kind, d time.Duration)
	IncSidebarResolution(mode string)
	IncSidebarNoMatch()
	IncNavRequest(result ResultLabel)
	IncReload(result ResultLabel)
	SetPages(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolveDuration(Kind, time.Duration) {}
func (NoopRecorder) IncSidebarResolution(string)                {}
func (NoopRecorder) IncSidebarNoMatch()                         {}
func (NoopRecorder) IncNavRequest(ResultLabel)                  {}
func (NoopRecorder) IncReload(ResultLabel)                      {}
func (NoopRecorder) SetPages(int)                               {}
