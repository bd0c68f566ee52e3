package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapkit/pkg/mcp"
	"github.com/Sumatoshi-tech/heapkit/pkg/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(g *Globals) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes heapkit operations as tools that AI agents can
discover and invoke:
  - heap_sort: Heap sort a list of numbers
  - heap_topk: Select the k smallest or largest numbers
  - heap_median: Median and running median of a stream
  - heap_build: Heapify a list and return its layout`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				g.Verbose = true
			}

			s, err := g.open(cmd, observability.ModeMCP)
			if err != nil {
				return err
			}

			defer s.close()

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:  s.logger,
				Metrics: s.inst.Metrics,
				Tracer:  s.inst.Tracer,
			})

			s.logger.Info("mcp server starting", "tools", srv.ListToolNames())

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}
