package main

import (
	"github.com/spf13/cobra"

	"github.com/carpoolnu/sestmpl/internal/catalog"
	"github.com/carpoolnu/sestmpl/internal/output"
	"github.com/carpoolnu/sestmpl/internal/upsert"
)

// syncResult is one template's outcome in JSON output.
type syncResult struct {
	Name     string `json:"name"`
	State    string `json:"state"`
	Conflict bool   `json:"conflict"`
	Error    string `json:"error,omitempty"`
}

// newSyncCmd creates the sync command.
func newSyncCmd(a app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "sync [NAME...]",
		Short: "Create or update templates in SES",
		Long: `Create or update catalog templates in SES, one at a time, in catalog order.

A template that already exists is updated with the same fields. A failure on
one template is reported and the rest still run; the exit code stays 0.

Examples:
  sestmpl sync                            # Sync every built-in template
  sestmpl sync MessageNotificationTemplate
  sestmpl sync --catalog templates.yaml   # Sync templates from a file
  sestmpl sync --dry-run --json           # Plan only, as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, a, args, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be synced without calling SES")
	return cmd
}

// loadCatalog loads the --catalog file or the built-in catalog.
func loadCatalog(cmd *cobra.Command) (catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	c, err := catalog.Load(path)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	return c, nil
}

// runSync executes the sync. Per-template failures do not produce an error.
func runSync(cmd *cobra.Command, a app, names []string, dryRun bool) error {
	printer := newPrinter(cmd)

	logger, err := newLogger(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	c, err := loadCatalog(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	selected, err := c.Select(names...)
	if err != nil {
		userErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(userErr)
		return userErr
	}

	var client templateStore
	if !dryRun {
		client, err = a.newClient(cmd.Context(), logger)
		if err != nil {
			sysErr := output.NewSystemErrorWithCause("creating SES client: "+err.Error(), err)
			printer.Error(sysErr)
			return sysErr
		}
	}

	report := upsert.Synchronize(cmd.Context(), selected, client,
		upsert.WithObserver(&lineObserver{printer: printer}),
		upsert.WithLogger(logger),
		upsert.WithDryRun(dryRun),
	)

	if printer.IsJSON() {
		results := make([]syncResult, 0, len(report.Outcomes))
		for _, o := range report.Outcomes {
			results = append(results, syncResult{
				Name:     o.Name,
				State:    string(o.State),
				Conflict: o.Conflict,
				Error:    o.Reason(),
			})
		}
		return printer.Success(map[string]any{
			"results": results,
			"created": report.Count(upsert.StateCreated),
			"updated": report.Count(upsert.StateUpdated),
			"failed":  report.Count(upsert.StateFailed),
			"planned": report.Count(upsert.StatePlanned),
		})
	}
	return nil
}

// lineObserver prints one line per sync event.
type lineObserver struct {
	printer *output.Printer
}

func (l *lineObserver) Conflict(name string) {
	l.printer.Status(output.ToneInfo, "Template '%s' already exists. Updating...", name)
}

func (l *lineObserver) Done(o upsert.Outcome) {
	switch o.State {
	case upsert.StateCreated:
		l.printer.Status(output.ToneSuccess, "Template '%s' created successfully.", o.Name)
	case upsert.StateUpdated:
		l.printer.Status(output.ToneSuccess, "Template '%s' updated successfully.", o.Name)
	case upsert.StatePlanned:
		l.printer.Status(output.ToneInfo, "Template '%s' would be created or updated.", o.Name)
	case upsert.StateFailed:
		verb := "creating"
		if o.Op == "update" {
			verb = "updating"
		}
		l.printer.Status(output.ToneError, "Error %s template '%s': %s", verb, o.Name, o.Reason())
	}
}
