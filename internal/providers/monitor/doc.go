// Package monitor implements the System Monitor app.
//
// CPU and memory are simulated: a Sampler takes a reading every interval
// and keeps the last 20 for the charts. Summaries are computed with gonum.
// monitor.system reports the real usage of the server process.
package monitor
