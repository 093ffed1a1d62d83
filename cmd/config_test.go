package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/openfiles/internal/config"
)

func TestConfigInit_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openfiles", "config.toml")

	defer rootCmd.PersistentFlags().Set("config", "")

	rootCmd.SetArgs([]string{"--config", path, "config", "init", "--force=false"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != config.Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}

	// a second init without --force refuses to overwrite
	rootCmd.SetArgs([]string{"--config", path, "config", "init", "--force=false"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error when config exists")
	}
}

func TestConfigShow_ReflectsFlags(t *testing.T) {
	out, err := runRoot(t, "config", "show", "--app", "goland", "--sort", "desc")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "app: goland") || !strings.Contains(out, "sort: NAME_DESC") {
		t.Errorf("unexpected settings output:\n%s", out)
	}
}

func TestConfigInit_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("format = \"json\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	defer rootCmd.PersistentFlags().Set("config", "")
	defer configInitCmd.Flags().Set("force", "false")

	rootCmd.SetArgs([]string{"--config", path, "config", "init", "--force"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "yaml" {
		t.Errorf("format: got %q, want yaml after overwrite", cfg.Format)
	}
}

func TestConfigInit_RepairsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("format = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	defer rootCmd.PersistentFlags().Set("config", "")
	defer configInitCmd.Flags().Set("force", "false")

	rootCmd.SetArgs([]string{"--config", path, "--log-level", "error", "list"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected list to fail on the broken config")
	}

	rootCmd.SetArgs([]string{"--config", path, "--log-level", "error", "config", "init", "--force"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	if _, err := config.Load(path); err != nil {
		t.Errorf("config still broken after init: %v", err)
	}
}
