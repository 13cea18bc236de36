package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/carpoolnu/sestmpl/internal/output"
	sestmplmcp "github.com/carpoolnu/sestmpl/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(a app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run sestmpl as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "sestmpl": {
        "command": "sestmpl",
        "args": ["serve"]
      }
    }
  }

Available tools: list_templates, sync_templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			client, err := a.newClient(cmd.Context(), logger)
			if err != nil {
				return output.NewSystemErrorWithCause("creating SES client: "+err.Error(), err)
			}
			server := sestmplmcp.NewServer(buildVersion(), c, client, logger)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
