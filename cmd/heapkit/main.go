// Package main provides the entry point for the heapkit CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapkit/cmd/heapkit/commands"
	"github.com/Sumatoshi-tech/heapkit/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	globals := &commands.Globals{}

	rootCmd := &cobra.Command{
		Use:   "heapkit",
		Short: "Heapkit - binary heap toolkit",
		Long: `Heapkit sorts, selects and summarizes numeric streams with binary heaps.

Numbers are read from arguments, a file, or stdin (whitespace or comma
separated; files ending in .lz4 are decompressed).

Commands:
  sort      Heap sort the input
  topk      Select the k smallest or largest values
  median    Compute the (running) median
  build     Heapify the input and show its layout
  mcp       Serve the operations as MCP tools`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	globals.Bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(commands.NewSortCommand(globals))
	rootCmd.AddCommand(commands.NewTopKCommand(globals))
	rootCmd.AddCommand(commands.NewMedianCommand(globals))
	rootCmd.AddCommand(commands.NewBuildCommand(globals))
	rootCmd.AddCommand(commands.NewMCPCommand(globals))
	rootCmd.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "heapkit %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
