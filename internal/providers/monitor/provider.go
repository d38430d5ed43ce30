package monitor

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// Provider implements the System Monitor app
type Provider struct {
	sampler *Sampler
	started time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// SystemStats is the host process's real resource usage
type SystemStats struct {
	Timestamp  int64       `json:"timestamp"`
	Memory     MemoryStats `json:"memory"`
	CPU        CPUStats    `json:"cpu"`
	Goroutines int         `json:"goroutines"`
	Uptime     float64     `json:"uptime_seconds"`
}

// MemoryStats represents memory usage
type MemoryStats struct {
	Allocated    uint64  `json:"allocated_bytes"`
	Total        uint64  `json:"total_bytes"`
	System       uint64  `json:"system_bytes"`
	NumGC        uint32  `json:"num_gc"`
	UsagePercent float64 `json:"usage_percent"`
}

// CPUStats represents CPU topology
type CPUStats struct {
	Cores   int `json:"cores"`
	Threads int `json:"threads"`
}

// NewProvider creates a monitor over sampler
func NewProvider(sampler *Sampler) *Provider {
	return &Provider{sampler: sampler, started: time.Now()}
}

// Start samples every interval in the background until Stop.
func (m *Provider) Start(interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		m.sampler.Run(ctx, interval)
	}(m.done)
}

// Stop ends background sampling and waits for it to finish.
func (m *Provider) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Definition returns service metadata
func (m *Provider) Definition() types.Service {
	return types.Service{
		ID:          "monitor",
		Name:        "System Monitor",
		Description: "CPU and memory charts with window statistics",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"samples",
			"statistics",
			"system_stats",
		},
		Tools: []types.Tool{
			{
				ID:          "monitor.samples",
				Name:        "Get Samples",
				Description: "The current chart window, oldest first",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "monitor.summary",
				Name:        "Get Summary",
				Description: "Mean, deviation, range and 95th percentile over the window",
				Parameters:  []types.Parameter{},
				Returns:     "Summary",
			},
			{
				ID:          "monitor.sample",
				Name:        "Sample Now",
				Description: "Take a reading immediately",
				Parameters:  []types.Parameter{},
				Returns:     "Sample",
			},
			{
				ID:          "monitor.system",
				Name:        "Get System Stats",
				Description: "Resource usage of the server process itself",
				Parameters:  []types.Parameter{},
				Returns:     "SystemStats",
			},
		},
	}
}

// Execute runs a monitoring operation
func (m *Provider) Execute(ctx context.Context, toolID string, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "monitor.samples":
		samples := m.sampler.Samples()
		return params.Success(map[string]any{"samples": samples, "count": len(samples)})
	case "monitor.summary":
		return params.Success(map[string]any{"summary": Summarize(m.sampler.Samples())})
	case "monitor.sample":
		return params.Success(map[string]any{"sample": m.sampler.Next()})
	case "monitor.system":
		return params.Success(map[string]any{"stats": m.systemStats()})
	default:
		return params.Failuref("unknown tool: %s", toolID)
	}
}

func (m *Provider) systemStats() SystemStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return SystemStats{
		Timestamp: time.Now().Unix(),
		Memory: MemoryStats{
			Allocated:    memStats.Alloc,
			Total:        memStats.TotalAlloc,
			System:       memStats.Sys,
			NumGC:        memStats.NumGC,
			UsagePercent: float64(memStats.Alloc) / float64(memStats.Sys) * 100,
		},
		CPU: CPUStats{
			Cores:   runtime.NumCPU(),
			Threads: runtime.GOMAXPROCS(0),
		},
		Goroutines: runtime.NumGoroutine(),
		Uptime:     time.Since(m.started).Seconds(),
	}
}
