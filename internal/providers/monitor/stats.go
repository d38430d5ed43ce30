package monitor

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series summarizes one metric over the window.
type Series struct {
	Current float64 `json:"current"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stddev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	P95     float64 `json:"p95"`
}

// Summary covers both metrics.
type Summary struct {
	Samples int    `json:"samples"`
	CPU     Series `json:"cpu"`
	Mem     Series `json:"mem"`
}

// Summarize computes window statistics. An empty window gives zeros.
func Summarize(samples []Sample) Summary {
	cpu := make([]float64, len(samples))
	mem := make([]float64, len(samples))
	for i, s := range samples {
		cpu[i] = s.CPU
		mem[i] = s.Mem
	}
	return Summary{Samples: len(samples), CPU: summarize(cpu), Mem: summarize(mem)}
}

func summarize(values []float64) Series {
	if len(values) == 0 {
		return Series{}
	}

	series := Series{
		Current: values[len(values)-1],
		Mean:    stat.Mean(values, nil),
		Min:     floats.Min(values),
		Max:     floats.Max(values),
	}
	// Sample deviation needs two points.
	if len(values) > 1 {
		series.StdDev = stat.StdDev(values, nil)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	series.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return series
}
