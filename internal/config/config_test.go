package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	conf := Default()
	if conf.Format != "sexpr" || conf.Entry != "statement" || !conf.Color {
		t.Fatalf("unexpected defaults %+v", conf)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "format: yaml\ncolor: false\nhistory: \"\"\n")
	conf, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Config{Format: "yaml", Entry: "statement", Color: false, History: ""}
	if diff := cmp.Diff(want, conf); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	conf, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load of optional missing file returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), conf); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}

	if _, err := Load(path, true); err == nil {
		t.Fatalf("expected error for required missing file")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"format: json\n", `unknown format "json"`},
		{"entry: program\n", `unknown entry "program"`},
		{"format: [sexpr\n", "yaml"},
	}
	for _, tt := range tests {
		path := writeConfig(t, tt.content)
		_, err := Load(path, true)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("Load(%q): expected error containing %q, got %v", tt.content, tt.want, err)
		}
		if !strings.HasPrefix(err.Error(), path) {
			t.Fatalf("expected error to name the file, got %v", err)
		}
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvVar, "/tmp/from-env.yaml")
	if got := Path("/tmp/explicit.yaml"); got != "/tmp/explicit.yaml" {
		t.Fatalf("Path(explicit) = %q", got)
	}
	if got := Path(""); got != "/tmp/from-env.yaml" {
		t.Fatalf("Path from env = %q", got)
	}

	t.Setenv(EnvVar, "")
	t.Setenv("HOME", "/home/tester")
	if got, want := Path(""), filepath.Join("/home/tester", FileName); got != want {
		t.Fatalf("Path default = %q, want %q", got, want)
	}
}
