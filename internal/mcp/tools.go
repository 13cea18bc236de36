package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/carpoolnu/sestmpl/internal/catalog"
	"github.com/carpoolnu/sestmpl/internal/store"
	"github.com/carpoolnu/sestmpl/internal/upsert"
)

// --- List tool ---

// ListInput is the input for list_templates (no parameters).
type ListInput struct{}

// TemplateSummary describes one catalog template.
type TemplateSummary struct {
	Name         string   `json:"name"         jsonschema:"template name"`
	Subject      string   `json:"subject"      jsonschema:"subject line, placeholders unresolved"`
	Placeholders []string `json:"placeholders" jsonschema:"placeholder identifiers used by the template"`
}

// ListOutput is the output for list_templates.
type ListOutput struct {
	Templates []TemplateSummary `json:"templates" jsonschema:"catalog templates in order"`
}

func handleList(cat catalog.Catalog) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, ListOutput, error) {
		out := ListOutput{Templates: make([]TemplateSummary, 0, len(cat))}
		for _, t := range cat {
			out.Templates = append(out.Templates, TemplateSummary{
				Name:         t.Name,
				Subject:      t.Subject,
				Placeholders: t.Placeholders(),
			})
		}
		return nil, out, nil
	}
}

// --- Sync tool ---

// SyncInput is the input for sync_templates.
type SyncInput struct {
	Names  []string `json:"names,omitempty"   jsonschema:"limit the run to these template names (default all)"`
	DryRun bool     `json:"dry_run,omitempty" jsonschema:"report what would be synced without calling SES"`
}

// SyncResult is the outcome for one template.
type SyncResult struct {
	Name     string `json:"name"            jsonschema:"template name"`
	State    string `json:"state"           jsonschema:"created, updated, failed or planned"`
	Conflict bool   `json:"conflict"        jsonschema:"create found an existing template and fell back to update"`
	Error    string `json:"error,omitempty" jsonschema:"failure reason"`
}

// SyncOutput is the output for sync_templates.
type SyncOutput struct {
	Results []SyncResult `json:"results" jsonschema:"per-template outcomes in catalog order"`
	Created int          `json:"created" jsonschema:"templates created"`
	Updated int          `json:"updated" jsonschema:"templates updated"`
	Failed  int          `json:"failed"  jsonschema:"templates that failed"`
}

func handleSync(cat catalog.Catalog, client store.Client, logger zerolog.Logger) mcp.ToolHandlerFor[SyncInput, SyncOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SyncInput) (*mcp.CallToolResult, SyncOutput, error) {
		selected, err := cat.Select(input.Names...)
		if err != nil {
			return nil, SyncOutput{}, err
		}

		report := upsert.Synchronize(ctx, selected, client,
			upsert.WithLogger(logger),
			upsert.WithDryRun(input.DryRun),
		)

		out := SyncOutput{
			Results: make([]SyncResult, 0, len(report.Outcomes)),
			Created: report.Count(upsert.StateCreated),
			Updated: report.Count(upsert.StateUpdated),
			Failed:  report.Count(upsert.StateFailed),
		}
		for _, o := range report.Outcomes {
			out.Results = append(out.Results, SyncResult{
				Name:     o.Name,
				State:    string(o.State),
				Conflict: o.Conflict,
				Error:    o.Reason(),
			})
		}
		return nil, out, nil
	}
}
