package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAPIURL_Default(t *testing.T) {
	t.Setenv("PF_API_URL", "")
	if got := APIURL(); got != defaultAPIURL {
		t.Errorf("APIURL = %q, want %q", got, defaultAPIURL)
	}
}

func TestAPIURL_Env(t *testing.T) {
	t.Setenv("PF_API_URL", "http://factory:9000")
	if got := APIURL(); got != "http://factory:9000" {
		t.Errorf("APIURL = %q", got)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("PF_API_URL", "")
	t.Setenv("PF_OUTPUT", "")
	path := filepath.Join(t.TempDir(), "pfconsole.yaml")
	if err := os.WriteFile(path, []byte("api_url: http://from-file:8080\noutput: yaml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { v = newViper() })

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := APIURL(); got != "http://from-file:8080" {
		t.Errorf("APIURL = %q", got)
	}
	if got := Output(); got != "yaml" {
		t.Errorf("Output = %q", got)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Cleanup(func() { v = newViper() })
	if err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
