package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestFromEnvDefaults verifies the offline defaults without any overrides.
func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MODE", "")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Mode != ModeOffline || cfg.HTTPAddr != ":8080" || cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ImportDefaultType != "open" || cfg.ImportMaxItems != 500 {
		t.Fatalf("unexpected import defaults: %+v", cfg)
	}
}

// TestFromEnvYAMLThenEnv verifies env values win over the YAML file.
func TestFromEnvYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coach.yml")
	yml := []byte(`mode: online
http_addr: ":9000"
import_default_type: mc
import_auto_distractors: true
cors_origins_online: ["https://a.example", "https://b.example"]
`)
	if err := os.WriteFile(path, yml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("IMPORT_MAX_ITEMS", "20")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Mode != ModeOnline {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if cfg.HTTPAddr != ":7000" {
		t.Errorf("http addr = %q, want env override", cfg.HTTPAddr)
	}
	if cfg.ImportDefaultType != "mc" || !cfg.ImportAutoDistractors || cfg.ImportMaxItems != 20 {
		t.Errorf("import settings = %+v", cfg)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins(), want) {
		t.Errorf("cors = %v, want %v", cfg.CORSOrigins(), want)
	}
}

// TestFromEnvRejectsUnknownYAMLField verifies typos in the file are caught.
func TestFromEnvRejectsUnknownYAMLField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("htp_addr: \":1\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

// TestValidateDefaultType verifies only open and mc are accepted.
func TestValidateDefaultType(t *testing.T) {
	cfg := defaults()
	cfg.ImportDefaultType = "essay"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateRejectsNonPositiveDurations(t *testing.T) {
	cases := map[string]func(*Config){
		"lock ttl zero":         func(c *Config) { c.ImportLockTTLSec = 0 },
		"lock ttl negative":     func(c *Config) { c.ImportLockTTLSec = -5 },
		"chat timeout zero":     func(c *Config) { c.ChatImportTimeoutMS = 0 },
		"chat timeout negative": func(c *Config) { c.ChatImportTimeoutMS = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaults()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
	if err := defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}
