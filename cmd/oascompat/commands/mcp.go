package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oascompat/internal/mcpserver"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the diff tool over the Model Context Protocol on stdio",
		Long: `Start an MCP (Model Context Protocol) server on stdin/stdout exposing a
"diff" tool. Defaults are read from OASCOMPAT_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
