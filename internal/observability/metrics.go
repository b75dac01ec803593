package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome label values
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeMalformed    = "malformed"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the display loop.
type Metrics struct {
	FetchRequests *prometheus.CounterVec // labels: outcome={success,network_error,malformed}
	FetchDuration prometheus.Histogram
	LastRefresh   prometheus.Gauge

	BandEntries prometheus.Gauge
	VHFEntries  prometheus.Gauge

	// Display metrics.
	PageRenders   *prometheus.CounterVec // labels: page
	ClockRepaints prometheus.Counter
	TouchEvents   prometheus.Counter
	CurrentPage   prometheus.Gauge
}

// NewMetrics creates and registers all display metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hamprop",
			Name:      "fetch_requests_total",
			Help:      "Feed refresh attempts by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hamprop",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a feed fetch and parse.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hamprop",
			Name:      "last_successful_refresh_timestamp_seconds",
			Help:      "Unix time of the last snapshot swap.",
		}),
		BandEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hamprop",
			Name:      "band_entries",
			Help:      "HF band conditions in the current snapshot.",
		}),
		VHFEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hamprop",
			Name:      "vhf_entries",
			Help:      "VHF phenomena in the current snapshot.",
		}),
		PageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hamprop",
			Name:      "page_renders_total",
			Help:      "Full page renders by page name.",
		}, []string{"page"}),
		ClockRepaints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hamprop",
			Name:      "clock_repaints_total",
			Help:      "Clock readout repaints on the summary page.",
		}),
		TouchEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hamprop",
			Name:      "touch_events_total",
			Help:      "Accepted touch presses after debouncing.",
		}),
		CurrentPage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hamprop",
			Name:      "current_page",
			Help:      "Index of the page on screen.",
		}),
	}

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.LastRefresh,
		m.BandEntries,
		m.VHFEntries,
		m.PageRenders,
		m.ClockRepaints,
		m.TouchEvents,
		m.CurrentPage,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hamprop", Name: "fetch_requests_total"}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hamprop", Name: "fetch_duration_seconds"}),
		LastRefresh:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hamprop", Name: "last_successful_refresh_timestamp_seconds"}),
		BandEntries:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hamprop", Name: "band_entries"}),
		VHFEntries:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hamprop", Name: "vhf_entries"}),
		PageRenders:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hamprop", Name: "page_renders_total"}, []string{"page"}),
		ClockRepaints: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hamprop", Name: "clock_repaints_total"}),
		TouchEvents:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hamprop", Name: "touch_events_total"}),
		CurrentPage:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hamprop", Name: "current_page"}),
	}
}
