package main

import (
	"github.com/spf13/cobra"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve the protocol over stdin and stdout",
	Long: `Stdio serves JSON-RPC over the process pipes: one message per
line on stdin, one response per line on stdout. Logs go to stderr so
they never interleave with protocol frames. This is the transport MCP
desktop clients spawn.`,
	RunE: runStdioCmd,
}

func runStdioCmd(cmd *cobra.Command, args []string) error {
	b, err := loadBuilder()
	if err != nil {
		return err
	}
	return b.ServeStdio()
}
