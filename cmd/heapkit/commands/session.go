// Package commands implements CLI command handlers for heapkit.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Sumatoshi-tech/heapkit/pkg/config"
	"github.com/Sumatoshi-tech/heapkit/pkg/observability"
	"github.com/Sumatoshi-tech/heapkit/pkg/report"
	"github.com/Sumatoshi-tech/heapkit/pkg/streamio"
	"github.com/Sumatoshi-tech/heapkit/pkg/version"
)

// ErrConflictingVerbosity is returned when --verbose and --quiet are both set.
var ErrConflictingVerbosity = errors.New("--verbose and --quiet are mutually exclusive")

const (
	metricsPath           = "/metrics"
	metricsReadTimeout    = 5 * time.Second
	metricsShutdownPeriod = 2 * time.Second
)

// Globals holds the persistent flags shared by every subcommand.
type Globals struct {
	ConfigPath string
	Format     string
	NoColor    bool
	Verbose    bool
	Quiet      bool
}

// Bind registers the global flags on fs.
func (g *Globals) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&g.ConfigPath, "config", "c", "", "config file (default: .heapkit.yaml in . or $HOME)")
	fs.StringVarP(&g.Format, "format", "f", "", "output format: table, plain, json, yaml (overrides config)")
	fs.BoolVar(&g.NoColor, "no-color", false, "disable colored output")
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "verbose output")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "only log errors")
}

// session is the per-invocation state shared by the one-shot commands.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	inst      observability.Instrumenter
	out       io.Writer
	in        io.Reader
	limit     int64
	providers observability.Providers
	metrics   *http.Server
}

// open loads configuration, applies flag overrides and starts observability.
func (g *Globals) open(cmd *cobra.Command, mode observability.AppMode) (*session, error) {
	if g.Verbose && g.Quiet {
		return nil, ErrConflictingVerbosity
	}

	cfg, err := config.LoadConfig(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	if g.Format != "" {
		cfg.Output.Format = g.Format
	}

	if g.NoColor {
		cfg.Output.Color = false
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	limit, err := cfg.Input.Limit()
	if err != nil {
		return nil, err
	}

	obsCfg := cfg.Observability(mode, version.Version)
	obsCfg.LogOutput = cmd.ErrOrStderr()

	// Stdout carries the MCP transport; keep logs machine-readable.
	if mode == observability.ModeMCP {
		obsCfg.LogJSON = true
	}

	switch {
	case g.Verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case g.Quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	s := &session{
		cfg:       cfg,
		logger:    providers.Logger,
		inst:      observability.Instrumenter{Tracer: providers.Tracer, Metrics: red},
		out:       cmd.OutOrStdout(),
		in:        cmd.InOrStdin(),
		limit:     limit,
		providers: providers,
	}

	if err = s.serveMetrics(cmd.Context()); err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	return s, nil
}

// serveMetrics exposes the Prometheus handler when telemetry.metrics_addr is set.
func (s *session) serveMetrics(ctx context.Context) error {
	addr := s.cfg.Telemetry.MetricsAddr
	if addr == "" || s.providers.MetricsHandler == nil {
		return nil
	}

	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen metrics on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, s.providers.MetricsHandler)

	s.metrics = &http.Server{Handler: mux, ReadHeaderTimeout: metricsReadTimeout}

	go func() {
		serveErr := s.metrics.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Warn("metrics server stopped", "error", serveErr)
		}
	}()

	s.logger.Debug("serving metrics", "addr", listener.Addr().String(), "path", metricsPath)

	return nil
}

// close stops the metrics server and flushes telemetry.
func (s *session) close() {
	if s.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownPeriod)

		if err := s.metrics.Shutdown(ctx); err != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}

		cancel()
	}

	if err := s.providers.Shutdown(context.Background()); err != nil {
		s.logger.Warn("observability shutdown failed", "error", err)
	}
}

// readValues collects numbers from args, or from inputPath when no args are given.
func (s *session) readValues(args []string, inputPath string) ([]float64, error) {
	if len(args) > 0 {
		values, err := streamio.ParseArgs(args)
		if err != nil {
			return nil, err
		}

		s.logger.Debug("parsed arguments", "values", humanize.Comma(int64(len(values))))

		return values, nil
	}

	var values []float64

	err := s.scan(inputPath, func(v float64) error {
		values = append(values, v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}

// scan streams numbers from inputPath into fn.
func (s *session) scan(inputPath string, fn func(float64) error) error {
	rc, err := streamio.Open(inputPath, s.in)
	if err != nil {
		return err
	}

	defer rc.Close()

	count := 0

	err = streamio.Scan(rc, s.limit, func(v float64) error {
		count++

		return fn(v)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("read input",
		"path", inputPath,
		"values", humanize.Comma(int64(count)),
		"limit", humanize.Bytes(uint64(s.limit)),
	)

	return nil
}

// render writes rep in the configured output format.
func (s *session) render(rep report.Report) error {
	return report.Render(s.out, rep, report.Options{
		Format: s.cfg.Output.Format,
		Color:  s.cfg.Output.Color && !color.NoColor,
	})
}

// addInputFlag registers the shared --input flag.
func addInputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "input", "i", streamio.StdinPath,
		"read numbers from this file (\"-\" for stdin, .lz4 supported) when no arguments are given")
}
