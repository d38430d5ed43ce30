package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the desktop backend.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// File system metrics
	FSOperations  *prometheus.CounterVec
	FSNodes       prometheus.Gauge
	PersistErrors prometheus.Counter

	// Window manager metrics
	WindowsOpen prometheus.Gauge
	Commands    *prometheus.CounterVec

	// Agent metrics
	AgentCalls    *prometheus.CounterVec
	AgentDuration prometheus.Histogram
	ToolCalls     *prometheus.CounterVec

	// Stream metrics
	StreamConnections prometheus.Gauge

	Uptime    prometheus.GaugeFunc
	startTime time.Time

	mu       sync.RWMutex
	snapshot Snapshot
}

// Snapshot holds current values for the JSON stats endpoint.
type Snapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	FSOperations  int64   `json:"fs_operations"`
	PersistErrors int64   `json:"persist_errors"`
	AgentCalls    int64   `json:"agent_calls"`
	AvgLatencyMS  float64 `json:"avg_latency_ms"`
	UptimeSeconds float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a collector set registered on a fresh registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry())
}

// NewMetricsWithRegistry registers all collectors on reg.
func NewMetricsWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{registry: reg, startTime: time.Now()}

	m.RequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ros_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	m.RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ros_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	m.FSOperations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ros_fs_operations_total",
			Help: "Virtual file system operations by kind and outcome",
		},
		[]string{"op", "status"},
	)
	m.FSNodes = factory.NewGauge(prometheus.GaugeOpts{
		Name: "ros_fs_nodes",
		Help: "Number of nodes in the virtual file system",
	})
	m.PersistErrors = factory.NewCounter(prometheus.CounterOpts{
		Name: "ros_fs_persist_errors_total",
		Help: "Failed writes of the file system snapshot to storage",
	})

	m.WindowsOpen = factory.NewGauge(prometheus.GaugeOpts{
		Name: "ros_windows_open",
		Help: "Number of open windows",
	})
	m.Commands = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ros_commands_total",
			Help: "Dispatched shell commands by kind and outcome",
		},
		[]string{"command", "status"},
	)

	m.AgentCalls = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ros_agent_calls_total",
			Help: "Model round trips by outcome",
		},
		[]string{"status"},
	)
	m.AgentDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "ros_agent_call_duration_seconds",
		Help:    "Model round trip duration in seconds",
		Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	})
	m.ToolCalls = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ros_tool_calls_total",
			Help: "Tool invocations made on behalf of the model",
		},
		[]string{"tool", "status"},
	)

	m.StreamConnections = factory.NewGauge(prometheus.GaugeOpts{
		Name: "ros_stream_connections",
		Help: "Number of active event stream connections",
	})

	m.Uptime = factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ros_uptime_seconds",
		Help: "Backend uptime in seconds",
	}, func() float64 {
		return time.Since(m.startTime).Seconds()
	})

	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordFSOperation records one file system operation.
func (m *Metrics) RecordFSOperation(op string, ok bool) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "rejected"
	}
	m.FSOperations.WithLabelValues(op, status).Inc()

	m.mu.Lock()
	m.snapshot.FSOperations++
	m.mu.Unlock()
}

// SetFSNodes sets the node count gauge.
func (m *Metrics) SetFSNodes(count int) {
	if m == nil {
		return
	}
	m.FSNodes.Set(float64(count))
}

// IncPersistErrors counts a failed snapshot write.
func (m *Metrics) IncPersistErrors() {
	if m == nil {
		return
	}
	m.PersistErrors.Inc()

	m.mu.Lock()
	m.snapshot.PersistErrors++
	m.mu.Unlock()
}

// SetWindowsOpen sets the open window gauge.
func (m *Metrics) SetWindowsOpen(count int) {
	if m == nil {
		return
	}
	m.WindowsOpen.Set(float64(count))
}

// RecordCommand records a dispatched shell command.
func (m *Metrics) RecordCommand(command string, err error) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(command, statusOf(err)).Inc()
}

// RecordAgentCall records one model round trip.
func (m *Metrics) RecordAgentCall(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.AgentCalls.WithLabelValues(statusOf(err)).Inc()
	m.AgentDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.AgentCalls++
	m.mu.Unlock()
}

// RecordToolCall records a tool invocation.
func (m *Metrics) RecordToolCall(tool, status string) {
	if m == nil {
		return
	}
	m.ToolCalls.WithLabelValues(tool, status).Inc()
}

// IncStreamConnections increments stream connections
func (m *Metrics) IncStreamConnections() {
	if m == nil {
		return
	}
	m.StreamConnections.Inc()
}

// DecStreamConnections decrements stream connections
func (m *Metrics) DecStreamConnections() {
	if m == nil {
		return
	}
	m.StreamConnections.Dec()
}

// Snapshot returns the current JSON-friendly values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgLatencyMS = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
