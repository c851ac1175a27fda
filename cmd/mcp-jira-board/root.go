package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/builder"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/config"
)

// Version info set from build flags.
var (
	version = "dev"
	commit  = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mcp-jira-board",
	Short: "MCP server exposing Jira boards, sprints, and issues as tools",
	Long: `mcp-jira-board bridges MCP clients to a Jira Cloud site.

It speaks JSON-RPC 2.0 over three transports (stdio, SSE, and streamable
HTTP) and exposes the Jira agile surface as MCP tools and resources:
boards, backlog, sprints, epics, issues, filters, and estimation.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to a YAML config file (environment variables always win)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadBuilder loads and validates the configuration, then prepares the
// wiring. Transport commands refuse to start on an invalid configuration.
func loadBuilder() (*builder.ServerBuilder, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return builder.NewServerBuilder().
		WithVersion(version).
		FromConfig(cfg)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mcp-jira-board %s (%s)\n", version, commit)
	},
}
