package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", "200", time.Millisecond)
		m.RecordFSOperation("writeFile", true)
		m.IncPersistErrors()
		m.SetWindowsOpen(3)
		m.RecordCommand("openApp", nil)
		m.RecordAgentCall(time.Second, nil)
		m.RecordToolCall("listFiles", "success")
		m.IncStreamConnections()
		m.DecStreamConnections()
		NewTimer(m).Stop(nil)
	})
	assert.Equal(t, Snapshot{}, m.Snapshot())
}

func TestInstancesAreIndependent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordFSOperation("makeDir", true)
	a.RecordFSOperation("delete", false)

	assert.Equal(t, 2.0, counterTotal(t, a, "ros_fs_operations_total"))
	assert.Equal(t, 0.0, counterTotal(t, b, "ros_fs_operations_total"))
}

func counterTotal(t *testing.T, m *Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordHTTPRequest("GET", "/api/fs", "200", 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/fs", "404", 30*time.Millisecond)
	m.IncPersistErrors()

	s := m.Snapshot()
	assert.EqualValues(t, 2, s.TotalRequests)
	assert.EqualValues(t, 1, s.TotalErrors)
	assert.EqualValues(t, 1, s.PersistErrors)
	assert.InDelta(t, 20.0, s.AvgLatencyMS, 0.5)
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(Middleware(m))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", Handler(m))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `ros_http_requests_total{method="GET",path="/ping",status="200"} 1`))
}
