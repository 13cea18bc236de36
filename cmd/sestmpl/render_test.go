package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/carpoolnu/sestmpl/internal/catalog"
	"github.com/carpoolnu/sestmpl/internal/output"
)

func TestRender_SampleData(t *testing.T) {
	remote := newMemoryRemote(catalog.Template{Name: "DriverAcceptanceTemplate"})
	remote.rendered = "Subject: Request Accepted"

	stdout, _, err := runCmd(t, testApp(remote), "render", "DriverAcceptanceTemplate")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var data map[string]string
	if err := json.Unmarshal([]byte(remote.lastData), &data); err != nil {
		t.Fatalf("sample data is not JSON: %v", err)
	}
	if data["preferredName"] != "preferredName" || data["OtherUser"] != "OtherUser" {
		t.Errorf("sample data = %v", data)
	}
	if _, ok := data["message"]; ok {
		t.Error("acceptance templates have no message placeholder")
	}
	if !strings.Contains(stdout, "Rendered DriverAcceptanceTemplate") || !strings.Contains(stdout, "Subject: Request Accepted") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRender_ExplicitDataJSON(t *testing.T) {
	remote := newMemoryRemote(catalog.Template{Name: "MessageNotificationTemplate"})
	remote.rendered = "Hello Ada"
	data := `{"preferredName":"Ada","OtherUser":"Grace","message":"Hi!"}`

	stdout, _, err := runCmd(t, testApp(remote), "render", "MessageNotificationTemplate", "--data", data, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if remote.lastData != data {
		t.Errorf("data sent = %q, want %q", remote.lastData, data)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nOutput: %s", err, stdout)
	}
	if result["rendered"] != "Hello Ada" {
		t.Errorf("rendered = %v", result["rendered"])
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown template",
			args:     []string{"render", "Nope"},
			wantCode: output.ExitUserError,
			wantErr:  "unknown template: Nope",
		},
		{
			name:     "data not an object",
			args:     []string{"render", "DriverRequestTemplate", "--data", "[1,2]"},
			wantCode: output.ExitUserError,
			wantErr:  "--data must be a JSON object",
		},
		{
			name:     "not provisioned",
			args:     []string{"render", "DriverRequestTemplate"},
			wantCode: output.ExitSystemError,
			wantErr:  "run 'sestmpl sync DriverRequestTemplate' first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := runCmd(t, testApp(newMemoryRemote()), tt.args...)
			if code := output.GetExitCode(err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantErr)
			}
		})
	}
}
