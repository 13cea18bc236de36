package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog templates",
		Long: `List the templates in the catalog with their subjects and placeholders.

Examples:
  sestmpl list
  sestmpl list --catalog templates.yaml --json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	c, err := loadCatalog(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		items := make([]map[string]any, 0, len(c))
		for _, t := range c {
			items = append(items, map[string]any{
				"name":         t.Name,
				"subject":      t.Subject,
				"placeholders": t.Placeholders(),
			})
		}
		return printer.WriteJSON(map[string]any{"templates": items})
	}

	rows := make([][]string, 0, len(c))
	for _, t := range c {
		rows = append(rows, []string{t.Name, t.Subject, strings.Join(t.Placeholders(), ", ")})
	}
	printer.Table([]string{"NAME", "SUBJECT", "PLACEHOLDERS"}, rows)
	return nil
}
