package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/carpoolnu/sestmpl/internal/catalog"
	"github.com/carpoolnu/sestmpl/internal/output"
	"github.com/carpoolnu/sestmpl/internal/store"
)

// newRenderCmd creates the render command.
func newRenderCmd(a app) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "render NAME",
		Short: "Render a provisioned template with sample data",
		Long: `Ask SES to render a stored template with template data, the same JSON
object the application passes to SendTemplatedEmail.

Without --data each placeholder is filled with its own name.

Examples:
  sestmpl render MessageNotificationTemplate
  sestmpl render DriverRequestTemplate --data '{"preferredName":"Ada","OtherUser":"Grace","message":"Hi!"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, args[0], data)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Template data as a JSON object")
	return cmd
}

func runRender(cmd *cobra.Command, a app, name, data string) error {
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
	tmpl, ok := c.Find(name)
	if !ok {
		userErr := output.NewUserError("unknown template: " + name)
		printer.Error(userErr)
		return userErr
	}

	if data == "" {
		data = sampleData(tmpl)
	} else if !isJSONObject(data) {
		userErr := output.NewUserError("--data must be a JSON object")
		printer.Error(userErr)
		return userErr
	}

	client, err := a.newClient(cmd.Context(), logger)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("creating SES client: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	rendered, err := client.RenderTemplate(cmd.Context(), name, data)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, store.ErrNotFound) {
			msg = "template " + name + " is not provisioned; run 'sestmpl sync " + name + "' first"
		}
		sysErr := output.NewSystemErrorWithCause(msg, err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"name":     name,
			"data":     json.RawMessage(data),
			"rendered": rendered,
		})
	}

	printer.Section("Rendered " + name)
	printer.KeyValue("Data", data)
	printer.Println()
	printer.Println(rendered)
	return nil
}

// sampleData maps each placeholder to its own name.
func sampleData(tmpl catalog.Template) string {
	values := make(map[string]string)
	for _, p := range tmpl.Placeholders() {
		values[p] = p
	}
	out, _ := json.Marshal(values)
	return string(out)
}

func isJSONObject(s string) bool {
	var obj map[string]any
	return json.Unmarshal([]byte(s), &obj) == nil
}
