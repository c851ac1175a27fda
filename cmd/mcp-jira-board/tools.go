package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/builder"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/config"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the registered tool catalog",
	Long: `Tools prints every registered tool with its description. The
catalog is static, so credentials are not validated here; an incomplete
configuration only fails the transport commands.`,
	RunE: runTools,
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	b, err := builder.NewServerBuilder().WithVersion(version).FromConfig(cfg)
	if err != nil {
		return err
	}
	svc, err := b.BuildService()
	if err != nil {
		return err
	}

	table := tablewriter.NewTable(cmd.OutOrStdout())
	table.Header("TOOL", "DESCRIPTION")
	for _, tool := range svc.ListTools() {
		if err := table.Append([]string{tool.Name, tool.Description}); err != nil {
			return err
		}
	}
	return table.Render()
}
