package sandbox

import (
	"time"
)

// Config defines sandbox configuration
type Config struct {
	Timeout      time.Duration // Execution timeout
	MaxCallStack int           // Maximum call stack depth
}

// Result holds execution result
type Result struct {
	Value    any           // Completion value of the script
	Console  []LogEntry    // console.* and alert output, in call order
	Duration time.Duration // Execution time
	Error    error         // Script error, if any
}

// LogEntry represents console output
type LogEntry struct {
	Level   string    `json:"level"` // log, info, warn, error, debug, alert
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// DefaultConfig returns the configuration Code Studio runs with.
func DefaultConfig() Config {
	return Config{
		Timeout:      5 * time.Second,
		MaxCallStack: 1024,
	}
}
