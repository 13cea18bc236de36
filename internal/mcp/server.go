// Package mcp exposes the template catalog and synchronizer as Model Context
// Protocol tools, so an agent can inspect and provision SES templates.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/carpoolnu/sestmpl/internal/catalog"
	"github.com/carpoolnu/sestmpl/internal/store"
)

// NewServer creates an MCP server with the sestmpl tools registered.
func NewServer(version string, cat catalog.Catalog, client store.Client, logger zerolog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "sestmpl",
		Version: version,
	}, nil)
	registerTools(server, cat, client, logger)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func registerTools(server *mcp.Server, cat catalog.Catalog, client store.Client, logger zerolog.Logger) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the email templates in the catalog with their subjects and placeholder names.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:   true,
			IdempotentHint: true,
			OpenWorldHint:  boolPtr(false),
		},
	}, handleList(cat))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_templates",
		Description: "Create or update the catalog templates in AWS SES. Optionally limit to named templates or plan without calling SES.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint:  true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, handleSync(cat, client, logger))
}
