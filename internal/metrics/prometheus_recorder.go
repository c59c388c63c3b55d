package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	resolveDuration *prom.HistogramVec
	sidebarModes    *prom.CounterVec
	sidebarNoMatch  prom.Counter
	navRequests     *prom.CounterVec
	reloads         *prom.CounterVec
	pages           prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		resolveDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of sidebar, navbar and page resolutions",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025},
		}, []string{"kind"}),
		sidebarModes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "sidebar_resolutions_total",
			Help:      "Sidebar resolutions by config mode",
		}, []string{"mode"}),
		sidebarNoMatch: prom.NewCounter(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "sidebar_no_match_total",
			Help:      "Multi-prefix sidebar resolutions where no prefix matched the route",
		}),
		navRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "nav_requests_total",
			Help:      "Navigation API requests by outcome",
		}, []string{"result"}),
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "reloads_total",
			Help:      "Site snapshot reloads by outcome",
		}, []string{"result"}),
		pages: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "pages",
			Help:      "Pages in the current site snapshot",
		}),
	}
	reg.MustRegister(pr.resolveDuration, pr.sidebarModes, pr.sidebarNoMatch, pr.navRequests, pr.reloads, pr.pages)
	return pr
}

func (p *PrometheusRecorder) ObserveResolveDuration(kind Kind, d time.Duration) {
	if p == nil {
		return
	}
	p.resolveDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSidebarResolution(mode string) {
	if p == nil {
		return
	}
	p.sidebarModes.WithLabelValues(mode).Inc()
}

func (p *PrometheusRecorder) IncSidebarNoMatch() {
	if p == nil {
		return
	}
	p.sidebarNoMatch.Inc()
}

func (p *PrometheusRecorder) IncNavRequest(result ResultLabel) {
	if p == nil {
		return
	}
	p.navRequests.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncReload(result ResultLabel) {
	if p == nil {
		return
	}
	p.reloads.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetPages(n int) {
	if p == nil {
		return
	}
	p.pages.Set(float64(n))
}
