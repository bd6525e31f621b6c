package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Window manager metrics
	WindowsOpen prometheus.Gauge
	WindowOps   *prometheus.CounterVec
	NoteSyncs   *prometheus.CounterVec

	// VFS metrics
	VFSNodes prometheus.Gauge
	VFSOps   *prometheus.CounterVec

	// Registry metrics
	RegistryApps prometheus.Gauge

	// Persistence metrics
	PersistWrites   *prometheus.CounterVec
	PersistFailures *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg. Pass prometheus.NewRegistry()
// in tests to keep registrations isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_windows_open",
				Help: "Number of open windows",
			},
		),
		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_window_ops_total",
				Help: "Window manager operations by kind",
			},
			[]string{"op"},
		),
		NoteSyncs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_note_sync_windows_total",
				Help: "Note windows added or removed by reconciliation",
			},
			[]string{"action"},
		),

		VFSNodes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_vfs_nodes",
				Help: "Number of nodes in the virtual file system",
			},
		),
		VFSOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_vfs_ops_total",
				Help: "VFS mutations by kind and outcome",
			},
			[]string{"op", "status"},
		),

		RegistryApps: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_registry_apps",
				Help: "Number of apps in the registry",
			},
		),

		PersistWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_persist_writes_total",
				Help: "Durable record writes",
			},
			[]string{"record"},
		),
		PersistFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_persist_failures_total",
				Help: "Durable record reads or writes that failed",
			},
			[]string{"record"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordWindowOp counts a window manager operation and refreshes the open gauge
func (m *Metrics) RecordWindowOp(op string, open int) {
	if m == nil {
		return
	}
	m.WindowOps.WithLabelValues(op).Inc()
	m.WindowsOpen.Set(float64(open))
}

// RecordNoteSync counts note windows added and removed by one reconciliation
func (m *Metrics) RecordNoteSync(added, removed int) {
	if m == nil {
		return
	}
	m.NoteSyncs.WithLabelValues("add").Add(float64(added))
	m.NoteSyncs.WithLabelValues("remove").Add(float64(removed))
}

// RecordVFSOp counts a VFS mutation and refreshes the node gauge
func (m *Metrics) RecordVFSOp(op string, err error, nodes int) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.VFSOps.WithLabelValues(op, status).Inc()
	m.VFSNodes.Set(float64(nodes))
}

// SetRegistryApps sets the number of apps in the registry
func (m *Metrics) SetRegistryApps(count int) {
	if m == nil {
		return
	}
	m.RegistryApps.Set(float64(count))
}

// RecordPersist counts a durable write, or a failure when err is non-nil
func (m *Metrics) RecordPersist(record string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.PersistFailures.WithLabelValues(record).Inc()
		return
	}
	m.PersistWrites.WithLabelValues(record).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}
