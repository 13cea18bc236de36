package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the template catalog",
		Long: `Validate the catalog without contacting SES.

Reports every problem at once: missing or duplicate names, empty subjects,
missing bodies and unbalanced {{ }} placeholder braces. Exits 1 if the
catalog is invalid.

Examples:
  sestmpl check
  sestmpl check --catalog templates.yaml`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	c, err := loadCatalog(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	path, _ := cmd.Flags().GetString("catalog")
	source := path
	if source == "" {
		source = "built-in"
	}

	return printer.Success(map[string]any{
		"message":   fmt.Sprintf("Catalog OK: %d templates (%s)", len(c), source),
		"valid":     true,
		"source":    source,
		"templates": c.Names(),
	})
}
