// Package config provides YAML-based configuration for heapkit.
//
// Values are resolved in order of precedence: environment variables
// (HEAPKIT_ prefix, dots replaced by underscores), the config file, then
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/heap"
	"github.com/Sumatoshi-tech/heapkit/pkg/observability"
	"github.com/Sumatoshi-tech/heapkit/pkg/report"
)

const (
	configName = ".heapkit"
	configType = "yaml"
	envPrefix  = "HEAPKIT"
)

// Sentinel validation errors.
var (
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrInvalidLevel       = errors.New("invalid log level")
	ErrInvalidMaxBytes    = errors.New("invalid input max bytes")
	ErrInvalidSampleRatio = errors.New("sample ratio must be in [0, 1]")
)

// Output formats, as understood by the report renderer.
const (
	FormatTable = report.FormatTable
	FormatPlain = report.FormatPlain
	FormatJSON  = report.FormatJSON
	FormatYAML  = report.FormatYAML
)

// Formats lists the accepted output formats.
var Formats = []string{FormatTable, FormatPlain, FormatJSON, FormatYAML}

// Config holds all heapkit configuration.
type Config struct {
	Heap      HeapConfig      `mapstructure:"heap"`
	Input     InputConfig     `mapstructure:"input"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// HeapConfig holds defaults for heap construction.
type HeapConfig struct {
	DefaultDirection string `mapstructure:"default_direction"`
}

// InputConfig bounds numeric input.
type InputConfig struct {
	// MaxBytes is a humanized size, e.g. "64MB".
	MaxBytes string `mapstructure:"max_bytes"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	Environment  string  `mapstructure:"environment"`
	MetricsAddr  string  `mapstructure:"metrics_addr"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from configPath, or from .heapkit.yaml in
// the working directory or home directory when configPath is empty.
// A missing file in search mode is not an error; an explicit path must exist.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType(configType)
		viperCfg.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("heap.default_direction", DefaultHeapDirection)

	viperCfg.SetDefault("input.max_bytes", DefaultInputMaxBytes)

	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.color", DefaultOutputColor)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.json", DefaultLoggingJSON)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.environment", "")
	viperCfg.SetDefault("telemetry.metrics_addr", "")
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultTelemetrySampleRatio)
}

// Validate checks every section and returns the first violation.
func (c *Config) Validate() error {
	if _, err := heap.ParseDirection(c.Heap.DefaultDirection); err != nil {
		return err
	}

	if _, err := c.Input.Limit(); err != nil {
		return err
	}

	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("%w: %q (want one of %s)", ErrInvalidFormat, c.Output.Format, strings.Join(Formats, ", "))
	}

	if _, err := observability.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, c.Telemetry.SampleRatio)
	}

	return nil
}

// Direction returns the configured default heap direction.
func (c *Config) Direction() heap.Direction {
	dir, err := heap.ParseDirection(c.Heap.DefaultDirection)
	if err != nil {
		return heap.Min
	}

	return dir
}

// Limit returns MaxBytes in bytes.
func (ic InputConfig) Limit() (int64, error) {
	n, err := humanize.ParseBytes(ic.MaxBytes)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMaxBytes, ic.MaxBytes, err)
	}

	if n == 0 || n > uint64(maxInputBytes) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxBytes, ic.MaxBytes)
	}

	return int64(n), nil
}

// Observability builds the observability config for the given mode and version.
func (c *Config) Observability(mode observability.AppMode, version string) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.Mode = mode
	obsCfg.ServiceVersion = version
	obsCfg.Environment = c.Telemetry.Environment
	obsCfg.OTLPEndpoint = c.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(c.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = c.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = c.Telemetry.SampleRatio
	obsCfg.Prometheus = c.Telemetry.MetricsAddr != ""
	obsCfg.LogJSON = c.Logging.JSON

	if level, err := observability.ParseLevel(c.Logging.Level); err == nil {
		obsCfg.LogLevel = level
	}

	return obsCfg
}
