package config

import "math"

// Heap defaults.
const (
	DefaultHeapDirection = "min"
)

// Input defaults.
const (
	DefaultInputMaxBytes = "64MB"

	maxInputBytes = math.MaxInt64
)

// Output defaults.
const (
	DefaultOutputFormat = FormatTable
	DefaultOutputColor  = true
)

// Logging defaults.
const (
	DefaultLoggingLevel = "info"
	DefaultLoggingJSON  = false
)

// Telemetry defaults.
const (
	DefaultTelemetrySampleRatio = 0.0
)
