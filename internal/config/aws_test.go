package config

import (
	"context"
	"path/filepath"
	"testing"
)

func TestLoadAWS_ProjectNamesWin(t *testing.T) {
	t.Setenv("ACCESS_KEY_ID_AWS", "AKIDPROJECT")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDSTANDARD")
	t.Setenv("SECRET_ACCESS_KEY_AWS", "secret")
	t.Setenv("REGION_AWS", "us-east-2")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("SES_ENDPOINT", "http://localhost:4566")

	got := LoadAWS()
	want := AWS{
		AccessKeyID:     "AKIDPROJECT",
		SecretAccessKey: "secret",
		Region:          "us-east-2",
		Endpoint:        "http://localhost:4566",
	}
	if got != want {
		t.Errorf("LoadAWS() = %+v, want %+v", got, want)
	}
}

func TestLoadAWS_StandardFallback(t *testing.T) {
	t.Setenv("ACCESS_KEY_ID_AWS", "")
	t.Setenv("SECRET_ACCESS_KEY_AWS", "")
	t.Setenv("REGION_AWS", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDSTANDARD")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "standard-secret")
	t.Setenv("AWS_REGION", "eu-west-1")

	got := LoadAWS()
	if got.AccessKeyID != "AKIDSTANDARD" || got.SecretAccessKey != "standard-secret" || got.Region != "eu-west-1" {
		t.Errorf("LoadAWS() = %+v, want standard AWS_* values", got)
	}
}

func TestAWS_SDKConfig_Static(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")

	a := AWS{AccessKeyID: "AKID", SecretAccessKey: "secret", Region: "us-east-1"}
	cfg, err := a.SDKConfig(context.Background())
	if err != nil {
		t.Fatalf("SDKConfig() error = %v", err)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("Region = %q, want us-east-1", cfg.Region)
	}

	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "secret" {
		t.Errorf("credentials = %+v, want static pair", creds)
	}
}

func TestAWS_HasStaticCredentials(t *testing.T) {
	if (AWS{}).HasStaticCredentials() {
		t.Error("empty settings should not report static credentials")
	}
	if !(AWS{SecretAccessKey: "x"}).HasStaticCredentials() {
		t.Error("a secret alone should select the static provider")
	}
}
