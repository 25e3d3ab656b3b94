package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode   `yaml:"mode"`
	HTTPAddr string `yaml:"http_addr"`

	DBDriver string `yaml:"db_driver"`
	DBDSN    string `yaml:"db_dsn"`

	BlobBasePath string `yaml:"blob_base_path"`

	AuthHMACSecret  string `yaml:"auth_hmac_secret"`
	EnableLocalAuth bool   `yaml:"enable_local_auth"`

	CORSOriginsOnline  []string `yaml:"cors_origins_online"`
	CORSOriginsOffline []string `yaml:"cors_origins_offline"`

	// Empty RedisAddr keeps the import guard in-process.
	RedisAddr        string `yaml:"redis_addr"`
	ImportLockTTLSec int    `yaml:"import_lock_ttl_sec"`

	ImportMaxItems        int    `yaml:"import_max_items"`
	ImportDefaultType     string `yaml:"import_default_type"` // open|mc
	ImportAutoDistractors bool   `yaml:"import_auto_distractors"`

	// Empty ChatImportURL parses chat blocks locally.
	ChatImportURL       string `yaml:"chat_import_url"`
	ChatImportToken     string `yaml:"chat_import_token"`
	ChatImportTimeoutMS int    `yaml:"chat_import_timeout_ms"`
}

func defaults() Config {
	return Config{
		Mode:                ModeOffline,
		HTTPAddr:            ":8080",
		DBDriver:            "sqlite",
		BlobBasePath:        "./data",
		AuthHMACSecret:      "supersecret-dev-key",
		EnableLocalAuth:     true,
		CORSOriginsOnline:   []string{"https://huiswerkcoach.nl"},
		CORSOriginsOffline:  []string{"http://localhost:3000", "http://localhost:5173"},
		ImportLockTTLSec:    30,
		ImportMaxItems:      500,
		ImportDefaultType:   "open",
		ChatImportTimeoutMS: 15000,
	}
}

// FromEnv builds the config from defaults, an optional YAML file named by
// CONFIG_FILE, and finally environment variables.
func FromEnv() (Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

func applyEnv(c *Config) {
	c.Mode = Mode(envOr("MODE", string(c.Mode)))
	c.HTTPAddr = envOr("HTTP_ADDR", c.HTTPAddr)
	c.DBDriver = envOr("DB_DRIVER", c.DBDriver)
	c.DBDSN = envOr("DB_DSN", c.DBDSN)
	c.BlobBasePath = envOr("BLOB_BASE_PATH", c.BlobBasePath)
	c.AuthHMACSecret = envOr("AUTH_HMAC_SECRET", c.AuthHMACSecret)
	c.EnableLocalAuth = envBool("ENABLE_LOCAL_AUTH", c.EnableLocalAuth)
	c.CORSOriginsOnline = csvOr("CORS_ORIGINS_ONLINE", c.CORSOriginsOnline)
	c.CORSOriginsOffline = csvOr("CORS_ORIGINS_OFFLINE", c.CORSOriginsOffline)
	c.RedisAddr = envOr("REDIS_ADDR", c.RedisAddr)
	c.ImportLockTTLSec = envInt("IMPORT_LOCK_TTL_SEC", c.ImportLockTTLSec)
	c.ImportMaxItems = envInt("IMPORT_MAX_ITEMS", c.ImportMaxItems)
	c.ImportDefaultType = envOr("IMPORT_DEFAULT_TYPE", c.ImportDefaultType)
	c.ImportAutoDistractors = envBool("IMPORT_AUTO_DISTRACTORS", c.ImportAutoDistractors)
	c.ChatImportURL = envOr("CHAT_IMPORT_URL", c.ChatImportURL)
	c.ChatImportToken = envOr("CHAT_IMPORT_TOKEN", c.ChatImportToken)
	c.ChatImportTimeoutMS = envInt("CHAT_IMPORT_TIMEOUT_MS", c.ChatImportTimeoutMS)
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeOffline, ModeOnline:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	switch c.ImportDefaultType {
	case "open", "mc":
	default:
		return fmt.Errorf("import_default_type must be open or mc, got %q", c.ImportDefaultType)
	}
	if c.ImportMaxItems <= 0 {
		return fmt.Errorf("import_max_items must be positive")
	}
	if c.ImportLockTTLSec <= 0 {
		return fmt.Errorf("import_lock_ttl_sec must be positive, got %d", c.ImportLockTTLSec)
	}
	if c.ChatImportTimeoutMS <= 0 {
		return fmt.Errorf("chat_import_timeout_ms must be positive, got %d", c.ChatImportTimeoutMS)
	}
	return nil
}

// CORSOrigins returns the origin list for the active mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}
func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
