package monitor

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultWindow is how many samples the chart keeps.
const DefaultWindow = 20

// Sample is one simulated resource reading, in percent.
type Sample struct {
	Time time.Time `json:"time"`
	CPU  float64   `json:"cpu"`
	Mem  float64   `json:"mem"`
}

// Sampler produces simulated CPU and memory readings into a sliding
// window.
type Sampler struct {
	mu      sync.RWMutex
	samples []Sample
	window  int

	rand func() float64
	now  func() time.Time
}

// NewSampler creates a sampler keeping window samples. It starts with two
// quiet readings so the chart has a line from the first frame.
func NewSampler(window int) *Sampler {
	if window <= 0 {
		window = DefaultWindow
	}
	s := &Sampler{window: window, rand: rand.Float64, now: time.Now}
	start := s.now()
	s.push(Sample{Time: start.Add(-5 * time.Second), CPU: 20, Mem: 40})
	s.push(Sample{Time: start, CPU: 25, Mem: 42})
	return s
}

// WithRand replaces the random source, for deterministic readings.
func (s *Sampler) WithRand(fn func() float64) *Sampler {
	s.rand = fn
	return s
}

// Next takes a reading: CPU idles between 30 and 69 with an occasional
// 30 point spike, memory between 40 and 59.
func (s *Sampler) Next() Sample {
	cpu := math.Floor(s.rand()*40) + 30
	if s.rand() > 0.8 {
		cpu += 30
	}
	mem := math.Floor(s.rand()*20) + 40

	sample := Sample{Time: s.now(), CPU: cpu, Mem: mem}
	s.push(sample)
	return sample
}

func (s *Sampler) push(sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sample)
	if len(s.samples) > s.window {
		s.samples = append([]Sample(nil), s.samples[len(s.samples)-s.window:]...)
	}
}

// Samples returns the window, oldest first.
func (s *Sampler) Samples() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Sample(nil), s.samples...)
}

// Run takes a reading every interval until ctx is done.
func (s *Sampler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Next()
		}
	}
}
